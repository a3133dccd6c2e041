package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr(v float64) *float64 { return &v }

func TestPeriodRequestToInputs(t *testing.T) {
	req := PeriodRequest{
		QuizScores:    [2]*float64{ptr(8), nil},
		QuizMaxScores: [2]*float64{ptr(10), nil},
		ExamScore:     ptr(0),
		Attendance:    ptr(9),
	}
	in := req.ToInputs()

	score, ok := in.Quizzes[0].Score.Value()
	assert.True(t, ok)
	assert.Equal(t, 8.0, score)
	assert.Equal(t, 10.0, in.Quizzes[0].Max)
	assert.False(t, in.Quizzes[1].Score.IsPresent())
	assert.Equal(t, DefaultMaxScore, in.Quizzes[1].Max)
	assert.True(t, in.Exam.Score.IsPresent())
	assert.Equal(t, DefaultMaxScore, in.Exam.Max)
	assert.False(t, in.ProblemSet.IsPresent())
}

func TestPeriodRequestOverMax(t *testing.T) {
	req := PeriodRequest{
		QuizScores:    [2]*float64{ptr(11), ptr(100)},
		QuizMaxScores: [2]*float64{ptr(10), nil},
		ExamScore:     ptr(101),
	}
	assert.Equal(t, []string{"finals quiz 3", "finals major exam"}, req.OverMax("finals", 3))
	assert.Empty(t, PeriodRequest{}.OverMax("midterm", 1))
}
