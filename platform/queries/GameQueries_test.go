package queries

import (
	"testing"

	"github.com/donlinch/archdon-sub001/app/models"
	"github.com/stretchr/testify/assert"
)

func TestNextSeat(t *testing.T) {
	cases := []struct {
		name   string
		seated []models.Player
		user   string
		seat   int
		taken  bool
	}{
		{"empty room", nil, "u1", 0, false},
		{"after two", []models.Player{{User_id: "u1", Seat: 0}, {User_id: "u2", Seat: 1}}, "u3", 2, false},
		{"gap left by leaver", []models.Player{{User_id: "u2", Seat: 1}}, "u3", 2, false},
		{"unordered rows", []models.Player{{User_id: "u3", Seat: 4}, {User_id: "u1", Seat: 0}}, "u5", 5, false},
		{"second tab of seated user", []models.Player{{User_id: "u1", Seat: 0}, {User_id: "u2", Seat: 1}}, "u1", 0, true},
		{"rejoin of later seat", []models.Player{{User_id: "u1", Seat: 0}, {User_id: "u2", Seat: 3}}, "u2", 3, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			seat, taken := nextSeat(tc.seated, tc.user)
			assert.Equal(t, tc.seat, seat)
			assert.Equal(t, tc.taken, taken)
		})
	}
}
