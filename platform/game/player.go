package game

// Player is the mutable per-seat state of a running game.
type Player struct {
	ID                 int    `json:"id"`
	Name               string `json:"name"`
	Units              int    `json:"units"`
	Position           int    `json:"position"`
	LapsCompleted      int    `json:"laps_completed"`
	IsInJail           bool   `json:"is_in_jail"`
	JailTurnsRemaining int    `json:"jail_turns_remaining"`
	MissNextTurn       bool   `json:"miss_next_turn"`
}

// AddUnits credits amount and returns what was added. Non-positive amounts are ignored.
func (p *Player) AddUnits(amount int) int {
	if amount <= 0 {
		return 0
	}
	p.Units += amount
	return amount
}

// SubtractUnits debits up to amount, never taking units below zero, and returns
// the amount actually removed.
func (p *Player) SubtractUnits(amount int) int {
	if amount <= 0 {
		return 0
	}
	taken := amount
	if taken > p.Units {
		taken = p.Units
	}
	p.Units -= taken
	return taken
}

func (p *Player) SendToJail(jailIndex, turns int) {
	if turns < 0 {
		turns = 0
	}
	p.Position = jailIndex
	p.IsInJail = true
	p.JailTurnsRemaining = turns
}

func (p *Player) MarkSkipNextTurn() {
	p.MissNextTurn = true
}

// serveJailTurn consumes one turn of a jail sentence and reports whether the
// player walked out. The turn is spent either way.
func (p *Player) serveJailTurn() bool {
	p.JailTurnsRemaining--
	if p.JailTurnsRemaining > 0 {
		return false
	}
	p.JailTurnsRemaining = 0
	p.IsInJail = false
	return true
}
