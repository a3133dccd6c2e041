package dto

import (
	"fmt"

	"github.com/noah-isme/grade-genius-api/internal/models"
)

// DefaultMaxScore pre-fills quiz and exam max scores left blank on the form.
const DefaultMaxScore = 100.0

// PeriodRequest is one grading period as entered on the form. Blank fields are null.
type PeriodRequest struct {
	QuizScores    [models.QuizSlots]*float64 `json:"quiz_scores" validate:"dive,omitempty,gte=0"`
	QuizMaxScores [models.QuizSlots]*float64 `json:"quiz_max_scores" validate:"dive,omitempty,gt=0"`
	ExamScore     *float64                   `json:"exam_score" validate:"omitempty,gte=0"`
	ExamMaxScore  *float64                   `json:"exam_max_score" validate:"omitempty,gt=0"`
	Attendance    *float64                   `json:"attendance" validate:"omitempty,gte=0,lte=10"`
	ProblemSet    *float64                   `json:"problem_set" validate:"omitempty,gte=0,lte=10"`
}

// CalculateRequest captures POST /grades/calculate and /grades/target payloads.
type CalculateRequest struct {
	Midterm PeriodRequest `json:"midterm"`
	Finals  PeriodRequest `json:"finals"`
	Target  *float64      `json:"target,omitempty" validate:"omitempty,gte=0,lte=100"`
}

// ExportFormat selects the rendered export.
type ExportFormat string

const (
	ExportFormatText ExportFormat = "text"
	ExportFormatCSV  ExportFormat = "csv"
	ExportFormatPDF  ExportFormat = "pdf"
)

// ExportQuery captures POST /grades/export query parameters.
type ExportQuery struct {
	Format ExportFormat `form:"format" validate:"omitempty,oneof=text csv pdf"`
}

// ToInputs converts the payload into engine inputs. Blank max scores default to 100.
func (p PeriodRequest) ToInputs() models.PeriodInputs {
	var in models.PeriodInputs
	for i := range in.Quizzes {
		in.Quizzes[i] = models.ComponentScore{
			Score: models.ScoreFromPtr(p.QuizScores[i]),
			Max:   maxOrDefault(p.QuizMaxScores[i]),
		}
	}
	in.Exam = models.ComponentScore{Score: models.ScoreFromPtr(p.ExamScore), Max: maxOrDefault(p.ExamMaxScore)}
	in.Attendance = models.ScoreFromPtr(p.Attendance)
	in.ProblemSet = models.ScoreFromPtr(p.ProblemSet)
	return in
}

// OverMax lists the components whose score exceeds their max, named with the given quiz offset.
func (p PeriodRequest) OverMax(period string, firstQuiz int) []string {
	var fields []string
	for i, score := range p.QuizScores {
		if score != nil && *score > maxOrDefault(p.QuizMaxScores[i]) {
			fields = append(fields, fmt.Sprintf("%s quiz %d", period, firstQuiz+i))
		}
	}
	if p.ExamScore != nil && *p.ExamScore > maxOrDefault(p.ExamMaxScore) {
		fields = append(fields, fmt.Sprintf("%s major exam", period))
	}
	return fields
}

func maxOrDefault(v *float64) float64 {
	if v == nil {
		return DefaultMaxScore
	}
	return *v
}
