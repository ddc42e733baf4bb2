package game

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeTarget(t *testing.T) {
	assert.Equal(t, 3, ComputeTarget(1, 2, 8))
	assert.Equal(t, 1, ComputeTarget(7, 2, 8))
	assert.Equal(t, 6, ComputeTarget(1, -3, 8))
	assert.Equal(t, 0, ComputeTarget(0, 16, 8))
	assert.Equal(t, 5, ComputeTarget(5, -24, 8))
}

func TestComputeTargetIsAssociative(t *testing.T) {
	sequences := [][]int{
		{1, 2, 3},
		{6, 6, 6, 6, 6},
		{-3, 5, -7, 2},
		{12, -1, -30},
		{0},
	}
	for n := 1; n <= 13; n++ {
		for start := 0; start < n; start++ {
			for _, seq := range sequences {
				pos, total := start, 0
				for _, s := range seq {
					pos = ComputeTarget(pos, s, n)
					total += s
				}
				assert.Equal(t, ComputeTarget(start, total, n), pos, "n=%d start=%d seq=%v", n, start, seq)
			}
		}
	}
}

func TestStepSequence(t *testing.T) {
	assert.Equal(t, []int{6, 7, 0, 1}, slices.Collect(StepSequence(5, 4, 8)))
	assert.Equal(t, []int{0, 7}, slices.Collect(StepSequence(1, -2, 8)))
	assert.Empty(t, slices.Collect(StepSequence(3, 0, 8)))

	full := slices.Collect(StepSequence(2, 8, 8))
	assert.Len(t, full, 8)
	assert.Equal(t, 2, full[len(full)-1])
}

func TestStepSequenceIsRestartable(t *testing.T) {
	seq := StepSequence(0, 3, 5)
	assert.Equal(t, slices.Collect(seq), slices.Collect(seq))

	var first []int
	for hop := range seq {
		first = append(first, hop)
		break
	}
	assert.Equal(t, []int{1}, first)
}

func TestCrossesStart(t *testing.T) {
	cases := []struct {
		start, steps, startIndex int
		want                     bool
	}{
		{5, 3, 0, true},  // lands on start
		{5, 4, 0, true},  // goes past
		{5, 2, 0, false}, // stops short
		{0, 7, 0, false},
		{0, 8, 0, true}, // full lap from start
		{3, 8, 0, true}, // full lap elsewhere
		{3, -4, 0, false},
		{1, 2, 2, true}, // start square not at index 0
		{3, 7, 2, true},
		{3, 2, 2, false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, CrossesStart(c.start, c.steps, c.startIndex, 8), "%+v", c)
	}
}
