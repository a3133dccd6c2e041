package grading

import "github.com/noah-isme/grade-genius-api/internal/models"

func scored(v float64) models.ComponentScore {
	return models.ComponentScore{Score: models.Present(v), Max: 100}
}

func blank() models.ComponentScore {
	return models.ComponentScore{Max: 100}
}

func periodOf(q1, q2, exam models.ComponentScore, attendance, problemSet models.Score) models.PeriodInputs {
	return models.PeriodInputs{
		Quizzes:    [models.QuizSlots]models.ComponentScore{q1, q2},
		Exam:       exam,
		Attendance: attendance,
		ProblemSet: problemSet,
	}
}

func fullMarks() models.PeriodInputs {
	return periodOf(scored(100), scored(100), scored(100), models.Present(10), models.Present(10))
}
