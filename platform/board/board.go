package board

import (
	"errors"
	"fmt"

	"github.com/donlinch/archdon-sub001/app/models"
)

var ErrInvalidBoard = errors.New("invalid board")

// Board is an immutable cyclic sequence of squares.
type Board struct {
	squares []models.Square
	corners map[models.SquareType]int
}

// New validates squares and builds a board. Square indices must match their
// position in the slice.
func New(squares []models.Square) (*Board, error) {
	if len(squares) == 0 {
		return nil, fmt.Errorf("%w: no squares", ErrInvalidBoard)
	}
	b := &Board{
		squares: make([]models.Square, len(squares)),
		corners: make(map[models.SquareType]int, 4),
	}
	copy(b.squares, squares)

	for i, sq := range b.squares {
		// files may leave index out and rely on list order
		if sq.Index == 0 && i != 0 {
			b.squares[i].Index = i
			sq.Index = i
		}
		if sq.Index != i {
			return nil, fmt.Errorf("%w: square %q at position %d has index %d", ErrInvalidBoard, sq.Name, i, sq.Index)
		}
		if !sq.Type.Valid() {
			return nil, fmt.Errorf("%w: square %d has unknown type %q", ErrInvalidBoard, i, sq.Type)
		}
		if !sq.Type.Corner() {
			continue
		}
		if prev, ok := b.corners[sq.Type]; ok {
			return nil, fmt.Errorf("%w: %s square at both %d and %d", ErrInvalidBoard, sq.Type, prev, i)
		}
		b.corners[sq.Type] = i
	}
	for _, t := range []models.SquareType{models.SquareStart, models.SquareJail, models.SquareHospital, models.SquareLottery} {
		if _, ok := b.corners[t]; !ok {
			return nil, fmt.Errorf("%w: missing %s square", ErrInvalidBoard, t)
		}
	}
	return b, nil
}

func (b *Board) Len() int { return len(b.squares) }

// Wrap folds any integer onto a valid board index.
func (b *Board) Wrap(index int) int {
	n := len(b.squares)
	return (index%n + n) % n
}

func (b *Board) SquareAt(index int) models.Square {
	return b.squares[b.Wrap(index)]
}

// Squares returns a copy of the board layout.
func (b *Board) Squares() []models.Square {
	out := make([]models.Square, len(b.squares))
	copy(out, b.squares)
	return out
}

func (b *Board) StartIndex() int    { return b.corners[models.SquareStart] }
func (b *Board) JailIndex() int     { return b.corners[models.SquareJail] }
func (b *Board) HospitalIndex() int { return b.corners[models.SquareHospital] }
func (b *Board) LotteryIndex() int  { return b.corners[models.SquareLottery] }

// DistanceForward counts forward steps from one square to another, in [0, N).
func (b *Board) DistanceForward(from, to int) int {
	return b.Wrap(b.Wrap(to) - b.Wrap(from))
}

// NearestSquareOfType finds the closest square of type t strictly ahead of from.
// When nothing lies ahead before the end of the board it falls back to the first
// occurrence scanning from index 0. ok is false when the board has no such square.
func (b *Board) NearestSquareOfType(from int, t models.SquareType) (index int, ok bool) {
	from = b.Wrap(from)
	for i := from + 1; i < len(b.squares); i++ {
		if b.squares[i].Type == t {
			return i, true
		}
	}
	for i := 0; i < len(b.squares); i++ {
		if b.squares[i].Type == t {
			return i, true
		}
	}
	return 0, false
}
