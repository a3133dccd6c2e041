package grading

import "github.com/noah-isme/grade-genius-api/internal/models"

// Normalize converts a score out of maxScore into a 0-100 percentage.
// It returns 0 when the score is absent or maxScore is not positive.
func Normalize(score models.Score, maxScore float64) float64 {
	value, ok := score.Value()
	if !ok || maxScore <= 0 {
		return 0
	}
	return value / maxScore * 100
}
