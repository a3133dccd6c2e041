package grading

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/grade-genius-api/internal/models"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name     string
		score    models.Score
		max      float64
		expected float64
	}{
		{name: "full", score: models.Present(50), max: 50, expected: 100},
		{name: "partial", score: models.Present(15), max: 20, expected: 75},
		{name: "zero score", score: models.Present(0), max: 100, expected: 0},
		{name: "absent score", score: models.Absent(), max: 100, expected: 0},
		{name: "zero max", score: models.Present(10), max: 0, expected: 0},
		{name: "negative max", score: models.Present(10), max: -5, expected: 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.expected, Normalize(tc.score, tc.max), 1e-9)
		})
	}
}
