package grading

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/grade-genius-api/internal/models"
)

func TestAdjustedExam(t *testing.T) {
	assert.InDelta(t, 45.0, AdjustedExam(scored(100)), 1e-9)
	assert.InDelta(t, 22.5, AdjustedExam(scored(0)), 1e-9)
	assert.InDelta(t, 33.75, AdjustedExam(models.ComponentScore{Score: models.Present(25), Max: 50}), 1e-9)
	assert.Zero(t, AdjustedExam(blank()))
	assert.Zero(t, AdjustedExam(models.ComponentScore{Score: models.Present(80)}))
}

func TestAdjustedQuiz(t *testing.T) {
	assert.InDelta(t, 52.5, AdjustedQuiz([]models.ComponentScore{scored(100), scored(100)}), 1e-9)
	assert.InDelta(t, 17.5, AdjustedQuiz([]models.ComponentScore{scored(0), scored(0)}), 1e-9)
	// (80% + 40%) / 2 = 60% -> (30 + 50) * 0.35
	assert.InDelta(t, 28.0, AdjustedQuiz([]models.ComponentScore{scored(80), {Score: models.Present(20), Max: 50}}), 1e-9)

	t.Run("partial data is excluded", func(t *testing.T) {
		assert.Zero(t, AdjustedQuiz([]models.ComponentScore{scored(90), blank()}))
		assert.Zero(t, AdjustedQuiz([]models.ComponentScore{scored(90), {Score: models.Present(9)}}))
		assert.Zero(t, AdjustedQuiz(nil))
	})

	t.Run("monotonic in average", func(t *testing.T) {
		prev := AdjustedQuiz([]models.ComponentScore{scored(0), scored(0)})
		for v := 10.0; v <= 100; v += 10 {
			next := AdjustedQuiz([]models.ComponentScore{scored(v), scored(v)})
			assert.Greater(t, next, prev)
			prev = next
		}
	})
}

func TestUncurvedContributions(t *testing.T) {
	assert.InDelta(t, 10.0, AttendanceContribution(models.Present(10)), 1e-9)
	assert.InDelta(t, 5.0, ProblemSetContribution(models.Present(5)), 1e-9)
	assert.Zero(t, AttendanceContribution(models.Absent()))
}

func TestInvertCurve(t *testing.T) {
	for _, pct := range []float64{0, 18.5, 60, 100} {
		contribution := Curve(pct) * ExamWeight
		assert.InDelta(t, pct, InvertCurve(contribution, ExamWeight), 1e-9)
	}
	assert.Zero(t, InvertCurve(10, 0))
}
