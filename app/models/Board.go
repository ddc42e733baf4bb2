package models

type SquareType string

const (
	SquareStart    SquareType = "start"
	SquareAction   SquareType = "action"
	SquareFate     SquareType = "fate"
	SquareChance   SquareType = "chance"
	SquareJail     SquareType = "jail"
	SquareHospital SquareType = "hospital"
	SquareLottery  SquareType = "lottery"
)

func (t SquareType) Valid() bool {
	switch t {
	case SquareStart, SquareAction, SquareFate, SquareChance, SquareJail, SquareHospital, SquareLottery:
		return true
	}
	return false
}

// Corner reports whether exactly one square of this type must exist on a board.
func (t SquareType) Corner() bool {
	return t == SquareStart || t == SquareJail || t == SquareHospital || t == SquareLottery
}

type Square struct {
	Index int        `json:"index"`
	Name  string     `json:"name"`
	Type  SquareType `json:"type"`
	Units int        `json:"units,omitempty"` // only read for action squares
}

type DeckType string

const (
	DeckFate   DeckType = "fate"
	DeckChance DeckType = "chance"
)

// DeckFor maps a square type to the deck it draws from.
func DeckFor(t SquareType) (DeckType, bool) {
	switch t {
	case SquareFate:
		return DeckFate, true
	case SquareChance:
		return DeckChance, true
	}
	return "", false
}
