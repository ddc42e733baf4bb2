package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddUnits(t *testing.T) {
	p := &Player{Units: 100}
	assert.Equal(t, 0, p.AddUnits(0))
	assert.Equal(t, 0, p.AddUnits(-5))
	assert.Equal(t, 100, p.Units)
	assert.Equal(t, 25, p.AddUnits(25))
	assert.Equal(t, 125, p.Units)
}

func TestSubtractUnits(t *testing.T) {
	cases := []struct {
		name      string
		units     int
		amount    int
		wantTaken int
		wantLeft  int
	}{
		{"within balance", 100, 40, 40, 60},
		{"exact balance", 100, 100, 100, 0},
		{"over balance clamps", 100, 250, 100, 0},
		{"zero is a no-op", 100, 0, 0, 100},
		{"negative is a no-op", 100, -10, 0, 100},
		{"already broke", 0, 10, 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := &Player{Units: tc.units}
			assert.Equal(t, tc.wantTaken, p.SubtractUnits(tc.amount))
			assert.Equal(t, tc.wantLeft, p.Units)
		})
	}
}

func TestSendToJail(t *testing.T) {
	p := &Player{Position: 3}
	p.SendToJail(6, 2)
	assert.Equal(t, 6, p.Position)
	assert.True(t, p.IsInJail)
	assert.Equal(t, 2, p.JailTurnsRemaining)

	p.SendToJail(6, -1)
	assert.Equal(t, 0, p.JailTurnsRemaining)
}

func TestServeJailTurn(t *testing.T) {
	p := &Player{}
	p.SendToJail(4, 2)

	assert.False(t, p.serveJailTurn())
	assert.True(t, p.IsInJail)
	assert.Equal(t, 1, p.JailTurnsRemaining)

	assert.True(t, p.serveJailTurn())
	assert.False(t, p.IsInJail)
	assert.Equal(t, 0, p.JailTurnsRemaining)
}

func TestMarkSkipNextTurn(t *testing.T) {
	p := &Player{}
	p.MarkSkipNextTurn()
	assert.True(t, p.MissNextTurn)
}
