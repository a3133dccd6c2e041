package models

// PeriodKind identifies one of the two grading periods.
type PeriodKind string

const (
	// PeriodMidterm is the first grading period.
	PeriodMidterm PeriodKind = "MIDTERM"
	// PeriodFinals is the second grading period.
	PeriodFinals PeriodKind = "FINALS"
)

// QuizSlots is the fixed number of quizzes per period.
const QuizSlots = 2

// ComponentScore is one gradable item such as a quiz or the major exam.
type ComponentScore struct {
	Score Score   `json:"score"`
	Max   float64 `json:"max"`
}

// PeriodInputs holds the raw entry for one grading period.
type PeriodInputs struct {
	Quizzes    [QuizSlots]ComponentScore `json:"quizzes"`
	Exam       ComponentScore            `json:"exam"`
	Attendance Score                     `json:"attendance"`
	ProblemSet Score                     `json:"problem_set"`
}

// Complete reports whether both quizzes and the exam have scores.
func (p PeriodInputs) Complete() bool {
	for _, quiz := range p.Quizzes {
		if !quiz.Score.IsPresent() {
			return false
		}
	}
	return p.Exam.Score.IsPresent()
}

// GradeBand classifies a final grade for display.
type GradeBand string

const (
	GradeBandFailed           GradeBand = "failed"
	GradeBandNeedsImprovement GradeBand = "needs_improvement"
	GradeBandGood             GradeBand = "good"
	GradeBandExcellent        GradeBand = "excellent"
)

// GPEStep is one row of the grade point equivalent table.
type GPEStep struct {
	MinGrade int    `json:"min_grade"`
	GPE      string `json:"gpe"`
}

// GPELookup describes how a single final grade maps onto the scale.
type GPELookup struct {
	Grade     float64   `json:"grade"`
	Rounded   int       `json:"rounded"`
	Formatted string    `json:"formatted"`
	GPE       string    `json:"gpe"`
	Band      GradeBand `json:"band"`
}

// TargetScenario is one named way of filling the missing slots.
type TargetScenario struct {
	Description string            `json:"description"`
	Scores      map[string]string `json:"scores"`
	Possible    bool              `json:"possible"`
}

// TargetScoreReport is the advisory output of target score solving.
type TargetScoreReport struct {
	NeededScores map[string]string `json:"needed_scores"`
	IsPossible   bool              `json:"is_possible"`
	Message      string            `json:"message"`
	Scenarios    []TargetScenario  `json:"scenarios"`
	Period       PeriodKind        `json:"period,omitempty"`
	Target       float64           `json:"target"`
}

// GradeResult is the full outcome of one recalculation.
type GradeResult struct {
	ID         string            `json:"id"`
	Midterm    float64           `json:"midterm"`
	Finals     float64           `json:"finals"`
	FinalGrade float64           `json:"final_grade"`
	Rounded    int               `json:"rounded"`
	Formatted  string            `json:"formatted"`
	GPE        string            `json:"gpe"`
	Band       GradeBand         `json:"band"`
	Target     TargetScoreReport `json:"target"`
}
