package models

import "fmt"

type EffectKind string

const (
	EffectAddUnits      EffectKind = "add_units"
	EffectSubtractUnits EffectKind = "subtract_units"
	EffectMoveRelative  EffectKind = "move_relative"
	EffectMoveAbsolute  EffectKind = "move_absolute"
	EffectSendToJail    EffectKind = "send_to_jail"
	EffectSkipNextTurn  EffectKind = "skip_next_turn"
	EffectMoveToNearest EffectKind = "move_to_nearest"
)

// Effect is the closed set of card outcomes. Only the fields relevant to Kind are set,
// which keeps values comparable with == and stable across JSON round trips.
type Effect struct {
	Kind             EffectKind `json:"kind"`
	Units            int        `json:"units,omitempty"`
	Steps            int        `json:"steps,omitempty"`
	Index            int        `json:"index,omitempty"`
	CollectPassBonus bool       `json:"collect_pass_bonus,omitempty"`
	Target           SquareType `json:"target,omitempty"`
}

func AddUnits(n int) Effect      { return Effect{Kind: EffectAddUnits, Units: n} }
func SubtractUnits(n int) Effect { return Effect{Kind: EffectSubtractUnits, Units: n} }
func MoveRelative(steps int) Effect {
	return Effect{Kind: EffectMoveRelative, Steps: steps}
}
func MoveAbsolute(index int, collectPassBonus bool) Effect {
	return Effect{Kind: EffectMoveAbsolute, Index: index, CollectPassBonus: collectPassBonus}
}
func SendToJail() Effect   { return Effect{Kind: EffectSendToJail} }
func SkipNextTurn() Effect { return Effect{Kind: EffectSkipNextTurn} }
func MoveToNearest(t SquareType) Effect {
	return Effect{Kind: EffectMoveToNearest, Target: t}
}

func (e Effect) Validate() error {
	switch e.Kind {
	case EffectAddUnits, EffectSubtractUnits:
		if e.Units < 0 {
			return fmt.Errorf("%s: negative units %d", e.Kind, e.Units)
		}
	case EffectMoveRelative, EffectSendToJail, EffectSkipNextTurn:
	case EffectMoveAbsolute:
		if e.Index < 0 {
			return fmt.Errorf("%s: negative index %d", e.Kind, e.Index)
		}
	case EffectMoveToNearest:
		if !e.Target.Valid() {
			return fmt.Errorf("%s: unknown square type %q", e.Kind, e.Target)
		}
	default:
		return fmt.Errorf("unknown effect kind %q", e.Kind)
	}
	return nil
}

type Card struct {
	Description string `json:"description"`
	Effect      Effect `json:"effect"`
}

// CardSet is the on-disk layout of the fate and chance card lists.
type CardSet struct {
	Fate   []Card `json:"fate"`
	Chance []Card `json:"chance"`
}
