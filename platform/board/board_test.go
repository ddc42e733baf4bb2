package board

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/donlinch/archdon-sub001/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// eight squares: S A F A J C H L
func smallBoard(t *testing.T) *Board {
	t.Helper()
	types := []models.SquareType{
		models.SquareStart, models.SquareAction, models.SquareFate, models.SquareAction,
		models.SquareJail, models.SquareChance, models.SquareHospital, models.SquareLottery,
	}
	squares := make([]models.Square, len(types))
	for i, typ := range types {
		squares[i] = models.Square{Index: i, Name: string(typ), Type: typ}
	}
	b, err := New(squares)
	require.NoError(t, err)
	return b
}

func TestNewRejectsBadLayouts(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, ErrInvalidBoard)

	_, err = New([]models.Square{{Index: 0, Type: models.SquareStart}})
	assert.ErrorIs(t, err, ErrInvalidBoard, "missing jail, hospital and lottery")

	_, err = New([]models.Square{
		{Index: 0, Type: models.SquareStart},
		{Index: 1, Type: models.SquareJail},
		{Index: 2, Type: models.SquareHospital},
		{Index: 3, Type: models.SquareLottery},
		{Index: 4, Type: models.SquareJail},
	})
	assert.ErrorIs(t, err, ErrInvalidBoard, "duplicate jail")

	_, err = New([]models.Square{
		{Index: 0, Type: models.SquareStart},
		{Index: 2, Type: models.SquareJail},
		{Index: 2, Type: models.SquareHospital},
		{Index: 3, Type: models.SquareLottery},
	})
	assert.ErrorIs(t, err, ErrInvalidBoard, "index mismatch")

	_, err = New([]models.Square{
		{Index: 0, Type: models.SquareStart},
		{Index: 1, Type: "railway"},
		{Index: 2, Type: models.SquareHospital},
		{Index: 3, Type: models.SquareLottery},
	})
	assert.ErrorIs(t, err, ErrInvalidBoard, "unknown type")
}

func TestNewAssignsMissingIndices(t *testing.T) {
	b, err := New([]models.Square{
		{Type: models.SquareStart},
		{Type: models.SquareJail},
		{Type: models.SquareHospital},
		{Type: models.SquareLottery},
	})
	require.NoError(t, err)
	for i, sq := range b.Squares() {
		assert.Equal(t, i, sq.Index)
	}
	assert.Equal(t, 1, b.JailIndex())
	assert.Equal(t, 3, b.LotteryIndex())
}

func TestCornerIndices(t *testing.T) {
	b := smallBoard(t)
	assert.Equal(t, 8, b.Len())
	assert.Equal(t, 0, b.StartIndex())
	assert.Equal(t, 4, b.JailIndex())
	assert.Equal(t, 6, b.HospitalIndex())
	assert.Equal(t, 7, b.LotteryIndex())
}

func TestSquareAtWraps(t *testing.T) {
	b := smallBoard(t)
	assert.Equal(t, models.SquareStart, b.SquareAt(8).Type)
	assert.Equal(t, models.SquareLottery, b.SquareAt(-1).Type)
	assert.Equal(t, models.SquareJail, b.SquareAt(20).Type)
}

func TestDistanceForward(t *testing.T) {
	b := smallBoard(t)
	cases := []struct{ from, to, want int }{
		{0, 0, 0},
		{0, 5, 5},
		{5, 0, 3},
		{7, 1, 2},
		{3, 2, 7},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, b.DistanceForward(c.from, c.to), "from %d to %d", c.from, c.to)
	}
}

func TestNearestSquareOfType(t *testing.T) {
	b := smallBoard(t)

	idx, ok := b.NearestSquareOfType(0, models.SquareJail)
	require.True(t, ok)
	assert.Equal(t, 4, idx)

	// nothing ahead of 5: fall back to the first from index 0
	idx, ok = b.NearestSquareOfType(5, models.SquareFate)
	require.True(t, ok)
	assert.Equal(t, 2, idx)

	// standing on the only square of a type never returns distance zero first
	idx, ok = b.NearestSquareOfType(4, models.SquareJail)
	require.True(t, ok)
	assert.Equal(t, 4, idx)

	idx, ok = b.NearestSquareOfType(1, models.SquareAction)
	require.True(t, ok)
	assert.Equal(t, 3, idx)

	b2, err := New([]models.Square{
		{Index: 0, Type: models.SquareStart},
		{Index: 1, Type: models.SquareJail},
		{Index: 2, Type: models.SquareHospital},
		{Index: 3, Type: models.SquareLottery},
	})
	require.NoError(t, err)
	_, ok = b2.NearestSquareOfType(0, models.SquareChance)
	assert.False(t, ok)
}

func TestSquaresReturnsCopy(t *testing.T) {
	b := smallBoard(t)
	sq := b.Squares()
	sq[0].Name = "changed"
	assert.Equal(t, "start", b.SquareAt(0).Name)
}

func TestDefaultLayoutIsValid(t *testing.T) {
	squares, err := LoadSquares("")
	require.NoError(t, err)
	b, err := New(squares)
	require.NoError(t, err)
	assert.Equal(t, 24, b.Len())
	assert.Equal(t, 0, b.StartIndex())

	cards, err := LoadCards("")
	require.NoError(t, err)
	assert.NotEmpty(t, cards.Fate)
	assert.NotEmpty(t, cards.Chance)
	for _, c := range append(cards.Fate, cards.Chance...) {
		if c.Effect.Kind == models.EffectMoveAbsolute {
			assert.Less(t, c.Effect.Index, b.Len(), c.Description)
		}
	}
}

func TestLoadCardsRejectsUnknownEffect(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cards.json")
	body := `{"fate":[{"description":"odd","effect":{"kind":"teleport"}}],"chance":[]}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	_, err := LoadCards(path)
	assert.Error(t, err)
}

func TestLoadSquaresMissingFile(t *testing.T) {
	_, err := LoadSquares(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
