package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreToTier(t *testing.T) {
	tests := []struct {
		name  string
		score float64
		want  string
	}{
		{"top of scale", 10.0, "S"},
		{"S lower edge", 9.0, "S"},
		{"just under S", 8.999, "A"},
		{"A lower edge", 8.0, "A"},
		{"B lower edge", 7.0, "B"},
		{"C lower edge", 6.0, "C"},
		{"D lower edge", 5.0, "D"},
		{"just under D", 4.999, "F"},
		{"zero", 0.0, "F"},
		{"spec scenario", 9.5, "S"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ScoreToTier(tt.score))
		})
	}
}

func TestScoreToRating(t *testing.T) {
	tests := []struct {
		name  string
		score float64
		want  string
	}{
		{"zero", 0.0, "bad"},
		{"just under bad max", 10.0/3 - 1e-9, "bad"},
		{"exact bad max", 10.0 / 3, "okay"},
		{"middle", 5.0, "okay"},
		{"just under okay max", 20.0/3 - 1e-9, "okay"},
		{"exact okay max", 20.0 / 3, "good"},
		{"top", 10.0, "good"},
		{"spec scenario high", 9.5, "good"},
		{"spec scenario low", 2.0, "bad"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ScoreToRating(tt.score))
		})
	}
}

// Both derivations must be total and monotonic non-decreasing over the score
// axis, with no gaps at band boundaries.
func TestScoreDerivationMonotonic(t *testing.T) {
	tierOrder := map[string]int{"F": 0, "D": 1, "C": 2, "B": 3, "A": 4, "S": 5}
	ratingOrder := map[string]int{"bad": 0, "okay": 1, "good": 2}

	prevTier, prevRating := -1, -1
	for s := -1.0; s <= 11.0; s += 0.001 {
		tier, okTier := tierOrder[ScoreToTier(s)]
		rating, okRating := ratingOrder[ScoreToRating(s)]
		assert.True(t, okTier, "unknown tier at score %f", s)
		assert.True(t, okRating, "unknown rating at score %f", s)
		assert.GreaterOrEqual(t, tier, prevTier, "tier decreased at score %f", s)
		assert.GreaterOrEqual(t, rating, prevRating, "rating decreased at score %f", s)
		prevTier, prevRating = tier, rating
	}
}
