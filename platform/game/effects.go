package game

import (
	"fmt"

	"github.com/donlinch/archdon-sub001/app/models"
	"github.com/sirupsen/logrus"
)

// maxCardDepth bounds card chains: a card may move the player onto another
// fate or chance square once, and that second card's landing is visit-only.
const maxCardDepth = 1

// land applies the effect of the square p stands on. forward tells whether p
// arrived by a forward move; depth counts the cards already drawn this turn.
func (c *Controller) land(p *Player, forward bool, depth int) {
	sq := c.state.Board.SquareAt(p.Position)

	var summary string
	switch sq.Type {
	case models.SquareStart:
		if !forward {
			summary = "start: visiting"
			break
		}
		p.LapsCompleted++
		summary = fmt.Sprintf("start: lap %d, +%d", p.LapsCompleted, c.credit(p, c.rules.StartBonus))
	case models.SquareAction:
		switch {
		case sq.Units > 0:
			summary = fmt.Sprintf("%s: +%d", sq.Name, c.credit(p, sq.Units))
		case sq.Units < 0:
			summary = fmt.Sprintf("%s: -%d", sq.Name, c.debit(p, -sq.Units))
		default:
			summary = sq.Name + ": nothing happens"
		}
	case models.SquareFate, models.SquareChance:
		if depth > maxCardDepth {
			summary = string(sq.Type) + ": visiting"
			break
		}
		deckType, _ := models.DeckFor(sq.Type)
		c.emit(Event{Type: EventLand, PlayerID: p.ID, Square: sq.Index, Summary: string(sq.Type) + ": draw a card"})
		c.draw(p, deckType, depth)
		return
	case models.SquareJail:
		summary = "jail: just visiting"
	case models.SquareHospital:
		summary = fmt.Sprintf("hospital: -%d", c.debit(p, c.rules.HospitalPenalty))
	case models.SquareLottery:
		reward := c.rules.LotteryMin
		if span := c.rules.LotteryMax - c.rules.LotteryMin; span > 0 {
			reward += c.rng.Intn(span + 1)
		}
		summary = fmt.Sprintf("lottery: +%d", c.credit(p, reward))
	}
	c.emit(Event{Type: EventLand, PlayerID: p.ID, Square: sq.Index, Summary: summary})
}

// draw rotates the deck and parks the card until the table acknowledges it.
func (c *Controller) draw(p *Player, t models.DeckType, depth int) {
	card, err := c.state.Decks.Draw(t)
	if err != nil {
		// decks are checked at start, so this only happens on a broken controller
		c.log.WithError(err).WithField("deck", t).Error("draw failed")
		return
	}
	c.state.pending = &PendingCard{Deck: t, Card: card, depth: depth}
	c.state.phase = PhaseAwaitingCard
	c.emit(Event{Type: EventCardDrawn, PlayerID: p.ID, Deck: t, Card: &card})
}

// applyCard is the single interpreter for card effects.
func (c *Controller) applyCard(p *Player, e models.Effect, depth int) {
	switch e.Kind {
	case models.EffectAddUnits:
		c.credit(p, e.Units)
	case models.EffectSubtractUnits:
		c.debit(p, e.Units)
	case models.EffectMoveRelative:
		c.walk(p, e.Steps, true, depth+1)
	case models.EffectMoveAbsolute:
		c.moveTo(p, c.state.Board.Wrap(e.Index), e.CollectPassBonus, depth+1)
	case models.EffectSendToJail:
		jail := c.state.Board.JailIndex()
		c.emit(Event{Type: EventMoveStep, PlayerID: p.ID, From: p.Position, To: jail})
		p.SendToJail(jail, c.rules.JailTurnsToSkip)
	case models.EffectSkipNextTurn:
		p.MarkSkipNextTurn()
	case models.EffectMoveToNearest:
		if !c.moveToNearest(p, e.Target, depth+1) {
			c.log.WithFields(logrus.Fields{"player": p.ID, "target": e.Target}).Debug("no square of target type, card ignored")
		}
	default:
		c.log.WithField("kind", e.Kind).Warn("unknown card effect ignored")
	}
}

func (c *Controller) credit(p *Player, amount int) int {
	added := p.AddUnits(amount)
	if added > 0 {
		c.emit(Event{Type: EventUnitsChanged, PlayerID: p.ID, Delta: added, Total: p.Units})
	}
	return added
}

func (c *Controller) debit(p *Player, amount int) int {
	taken := p.SubtractUnits(amount)
	if taken > 0 {
		c.emit(Event{Type: EventUnitsChanged, PlayerID: p.ID, Delta: -taken, Total: p.Units})
	}
	return taken
}
