package grading

import "github.com/noah-isme/grade-genius-api/internal/models"

// PeriodGrade sums the weighted contributions of one period. Missing components contribute
// 0 and the sum is not renormalised or capped: full credit yields 117.5.
func PeriodGrade(in models.PeriodInputs) float64 {
	return AdjustedQuiz(in.Quizzes[:]) +
		AdjustedExam(in.Exam) +
		AttendanceContribution(in.Attendance) +
		ProblemSetContribution(in.ProblemSet)
}
