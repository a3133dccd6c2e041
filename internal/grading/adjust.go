package grading

import "github.com/noah-isme/grade-genius-api/internal/models"

// Curve applies the leniency curve to a percentage.
func Curve(percentage float64) float64 {
	return percentage*CurveSlope + CurveFloor
}

// InvertCurve returns the raw percentage that yields contribution c at weight w.
// A non-positive weight yields 0.
func InvertCurve(contribution, weight float64) float64 {
	if weight <= 0 {
		return 0
	}
	return (contribution/weight - CurveFloor) / CurveSlope
}

// AdjustedQuiz averages the quiz percentages, curves the average and applies the quiz weight.
// Partial quiz data is excluded entirely: any absent score, any non-positive max, empty
// input or mismatched lengths yield 0.
func AdjustedQuiz(quizzes []models.ComponentScore) float64 {
	if len(quizzes) == 0 {
		return 0
	}
	sum := 0.0
	for _, quiz := range quizzes {
		if !quiz.Score.IsPresent() || quiz.Max <= 0 {
			return 0
		}
		sum += Normalize(quiz.Score, quiz.Max)
	}
	average := sum / float64(len(quizzes))
	return Curve(average) * QuizWeight
}

// AdjustedExam curves the exam percentage and applies the exam weight.
func AdjustedExam(exam models.ComponentScore) float64 {
	if !exam.Score.IsPresent() || exam.Max <= 0 {
		return 0
	}
	return Curve(Normalize(exam.Score, exam.Max)) * ExamWeight
}

// AttendanceContribution weights attendance out of 10. It is not curved.
func AttendanceContribution(attendance models.Score) float64 {
	return Normalize(attendance, AttendanceMax) * AttendanceWeight
}

// ProblemSetContribution weights the problem set out of 10. It is not curved.
func ProblemSetContribution(problemSet models.Score) float64 {
	return Normalize(problemSet, ProblemSetMax) * ProblemSetWeight
}
