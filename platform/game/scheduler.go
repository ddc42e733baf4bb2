package game

import "github.com/sirupsen/logrus"

// beginTurn hands the turn to the current player. Players who must miss a turn or
// are serving jail time use it up without rolling, and the turn moves on until
// someone can roll or the game ends.
func (c *Controller) beginTurn() {
	s := c.state
	for {
		s.TurnNumber++
		p := s.Players[s.CurrentPlayerIndex]
		c.emit(Event{Type: EventTurnStart, PlayerID: p.ID})

		switch {
		case p.MissNextTurn:
			p.MissNextTurn = false
			c.log.WithField("player", p.ID).Debug("turn skipped")
		case p.IsInJail:
			released := p.serveJailTurn()
			c.log.WithFields(logrus.Fields{"player": p.ID, "released": released}).Debug("jail turn served")
		default:
			s.phase = PhaseAwaitingRoll
			return
		}
		if !c.rotate() {
			return
		}
	}
}

// finishTurn runs once the current player's roll has fully resolved.
func (c *Controller) finishTurn() {
	s := c.state
	if !s.FinalRound {
		for _, p := range s.Players {
			if p.LapsCompleted >= s.TargetLaps {
				s.FinalRound = true
				c.log.WithFields(logrus.Fields{"player": p.ID, "laps": p.LapsCompleted}).Info("target laps reached, final round")
				break
			}
		}
	}
	if c.rotate() {
		c.beginTurn()
	}
}

// rotate passes the turn to the next seat. During the final round the game ends
// once the last seat has played, so every player gets the same number of turns;
// rotate then reports false.
func (c *Controller) rotate() bool {
	s := c.state
	if s.FinalRound && s.CurrentPlayerIndex == len(s.Players)-1 {
		c.endGame()
		return false
	}
	s.CurrentPlayerIndex = (s.CurrentPlayerIndex + 1) % len(s.Players)
	return true
}
