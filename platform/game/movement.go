package game

import (
	"iter"

	"github.com/donlinch/archdon-sub001/app/models"
)

// ComputeTarget returns the square reached from start after steps on a board of n
// squares. Negative steps walk backwards.
func ComputeTarget(start, steps, n int) int {
	return ((start+steps)%n + n) % n
}

// StepSequence yields every square visited one hop at a time, ending on the
// target. It is only for presentation; the engine moves straight to the target.
func StepSequence(start, steps, n int) iter.Seq[int] {
	return func(yield func(int) bool) {
		dir, count := 1, steps
		if steps < 0 {
			dir, count = -1, -steps
		}
		pos := start
		for i := 0; i < count; i++ {
			pos = ComputeTarget(pos, dir, n)
			if !yield(pos) {
				return
			}
		}
	}
}

// CrossesStart reports whether a forward walk of steps from start reaches the
// start square. Standing on the start square it takes a full lap to reach it again.
func CrossesStart(start, steps, startIndex, n int) bool {
	if steps <= 0 {
		return false
	}
	d := ComputeTarget(startIndex-start, 0, n)
	if d == 0 {
		d = n
	}
	return steps >= d
}

// walk moves p by steps, paying the pass bonus when the walk goes past the start
// square without stopping on it, then resolves the landing square.
func (c *Controller) walk(p *Player, steps int, collectPassBonus bool, depth int) {
	b := c.state.Board
	n := b.Len()
	from := p.Position
	target := ComputeTarget(from, steps, n)

	prev := from
	for hop := range StepSequence(from, steps, n) {
		c.emit(Event{Type: EventMoveStep, PlayerID: p.ID, From: prev, To: hop})
		prev = hop
	}
	p.Position = target

	if collectPassBonus && target != b.StartIndex() && CrossesStart(from, steps, b.StartIndex(), n) {
		p.LapsCompleted++
		c.credit(p, c.rules.PassGoBonus)
	}

	c.land(p, steps > 0, depth)
}

// moveTo walks forward to index. Without collectPassBonus a wrapping walk earns
// neither a lap nor the bonus.
func (c *Controller) moveTo(p *Player, index int, collectPassBonus bool, depth int) {
	c.walk(p, c.state.Board.DistanceForward(p.Position, index), collectPassBonus, depth)
}

func (c *Controller) moveToNearest(p *Player, t models.SquareType, depth int) bool {
	b := c.state.Board
	idx, ok := b.NearestSquareOfType(p.Position, t)
	if !ok {
		return false
	}
	steps := b.DistanceForward(p.Position, idx)
	if steps == 0 {
		steps = b.Len()
	}
	c.walk(p, steps, true, depth)
	return true
}
