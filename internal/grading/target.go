package grading

import (
	"fmt"
	"math"
	"strconv"

	"github.com/noah-isme/grade-genius-api/internal/models"
)

// Report messages. Callers display them verbatim.
const (
	MsgFinalsInfeasible  = "Even with perfect finals scores, you can't reach the target grade."
	MsgMidtermInfeasible = "Even with perfect midterm scores, you'd need excellent finals to reach the target."
	MsgOnTrack           = "You're already on track to reach the target grade!"
	MsgAllFilled         = "All fields are filled."
	MsgReachedTarget     = "All fields are filled and you've reached the target grade!"
	MsgNoMissingFields   = "No missing fields detected."
	MsgNeededScores      = "Here are the scores you need to reach the target grade."
	MsgMayExceedMax      = "Some required scores may exceed maximum possible scores."

	ScenarioEven         = "Even distribution across all missing components"
	ScenarioFocusExam    = "Focus on Major Exam"
	ScenarioFocusQuizzes = "Focus on Quizzes"

	ExamLabel = "Major Exam"
)

const (
	// focusQuizShare and focusExamShare fix the non-focused slots in the focus scenarios.
	focusQuizShare = 0.6
	focusExamShare = 0.7

	// ceilEpsilon absorbs float noise so 19.0000000001 reports as 19.
	ceilEpsilon = 1e-9

	maxPercentage = 100.0
)

type slot struct {
	label  string
	weight float64
	max    float64
}

// Solve reports what the incomplete period needs so the final grade reaches target.
// Only one incomplete period is solved; when both are complete the current final grade is
// reported, and when neither is complete the neutral report is returned.
func Solve(midterm, finals models.PeriodInputs, target float64) models.TargetScoreReport {
	midtermComplete := midterm.Complete()
	finalsComplete := finals.Complete()

	switch {
	case midtermComplete && finalsComplete:
		final := FinalGrade(PeriodGrade(midterm), PeriodGrade(finals))
		report := emptyReport("", target)
		report.IsPossible = final >= target
		if report.IsPossible {
			report.Message = MsgReachedTarget
		} else {
			report.Message = fmt.Sprintf("All fields are filled but you've only reached %.2f%%.", final)
		}
		return report
	case !midtermComplete && finalsComplete:
		return SolvePeriod(models.PeriodMidterm, midterm, PeriodGrade(finals), target)
	case midtermComplete && !finalsComplete:
		return SolvePeriod(models.PeriodFinals, finals, PeriodGrade(midterm), target)
	default:
		report := emptyReport("", target)
		report.IsPossible = true
		report.Message = MsgNoMissingFields
		return report
	}
}

// RequiredContribution is the period grade the given period must reach. Finals are solved
// against the actual midterm grade; midterm is solved against AssumedFinalsGrade and
// ignores otherGrade.
func RequiredContribution(kind models.PeriodKind, otherGrade, target float64) float64 {
	if kind == models.PeriodFinals {
		return (target - otherGrade*MidtermWeight) / FinalsWeight
	}
	return (target - AssumedFinalsGrade*FinalsWeight) / MidtermWeight
}

// CurrentContribution is the period grade earned by the slots already filled in.
// Quizzes count per slot so a lone quiz carries half the quiz weight. Absent attendance and
// problem set are treated as full marks.
func CurrentContribution(in models.PeriodInputs) float64 {
	total := 0.0
	for _, quiz := range in.Quizzes {
		total += quizSlotContribution(quiz)
	}
	total += AdjustedExam(in.Exam)
	total += AttendanceContribution(models.Present(in.Attendance.Or(AttendanceMax)))
	total += ProblemSetContribution(models.Present(in.ProblemSet.Or(ProblemSetMax)))
	return total
}

// SolvePeriod inverts the period formula for the missing slots of one period.
func SolvePeriod(kind models.PeriodKind, in models.PeriodInputs, otherGrade, target float64) models.TargetScoreReport {
	report := emptyReport(kind, target)

	required := RequiredContribution(kind, otherGrade, target)
	if required > maxPercentage {
		report.IsPossible = false
		if kind == models.PeriodFinals {
			report.Message = MsgFinalsInfeasible
		} else {
			report.Message = MsgMidtermInfeasible
		}
		return report
	}

	additional := math.Max(0, required-CurrentContribution(in))
	quizzes, exam := missingSlots(kind, in)

	totalWeight := 0.0
	for _, s := range quizzes {
		totalWeight += s.weight
	}
	if exam != nil {
		totalWeight += exam.weight
	}

	report.IsPossible = true
	if totalWeight <= 0 {
		report.Message = MsgAllFilled
		return report
	}
	if additional <= 0 {
		report.Message = MsgOnTrack
		return report
	}

	primary := evenScenario(quizzes, exam, additional, totalWeight)
	report.Scenarios = append(report.Scenarios, primary)
	if exam != nil && len(quizzes) > 0 {
		report.Scenarios = append(report.Scenarios,
			focusExamScenario(quizzes, *exam, additional),
			focusQuizzesScenario(quizzes, *exam, additional),
		)
	}

	chosen := recommend(report.Scenarios)
	report.NeededScores = chosen.Scores
	report.IsPossible = chosen.Possible
	if report.IsPossible {
		report.Message = MsgNeededScores
	} else {
		report.Message = MsgMayExceedMax
	}
	return report
}

// recommend returns the first scenario unless it is infeasible and a later one is feasible.
func recommend(scenarios []models.TargetScenario) models.TargetScenario {
	if scenarios[0].Possible {
		return scenarios[0]
	}
	for _, alt := range scenarios[1:] {
		if alt.Possible {
			return alt
		}
	}
	return scenarios[0]
}

// evenScenario splits the shortfall in proportion to each missing slot's weight.
func evenScenario(quizzes []slot, exam *slot, additional, totalWeight float64) models.TargetScenario {
	scenario := newScenario(ScenarioEven)
	all := quizzes
	if exam != nil {
		all = append(append([]slot(nil), quizzes...), *exam)
	}
	for _, s := range all {
		share := additional * s.weight / totalWeight
		record(&scenario, s, rawScoreFor(share, s))
	}
	return scenario
}

// focusExamScenario fixes missing quizzes at a moderate score and solves the exam.
func focusExamScenario(quizzes []slot, exam slot, additional float64) models.TargetScenario {
	scenario := newScenario(ScenarioFocusExam)
	remaining := additional
	for _, s := range quizzes {
		fixed := fixedScore(s.max, focusQuizShare)
		scenario.Scores[s.label] = outOf(fixed, s.max)
		remaining -= Curve(fixed/s.max*100) * s.weight
	}
	record(&scenario, exam, rawScoreFor(remaining, exam))
	return scenario
}

// focusQuizzesScenario fixes the exam at a moderate score and splits the rest across quizzes.
func focusQuizzesScenario(quizzes []slot, exam slot, additional float64) models.TargetScenario {
	scenario := newScenario(ScenarioFocusQuizzes)
	fixed := fixedScore(exam.max, focusExamShare)
	scenario.Scores[exam.label] = outOf(fixed, exam.max)
	remaining := additional - Curve(fixed/exam.max*100)*exam.weight
	perQuiz := remaining / float64(len(quizzes))
	for _, s := range quizzes {
		record(&scenario, s, rawScoreFor(perQuiz, s))
	}
	return scenario
}

func newScenario(description string) models.TargetScenario {
	return models.TargetScenario{Description: description, Scores: map[string]string{}, Possible: true}
}

func emptyReport(kind models.PeriodKind, target float64) models.TargetScoreReport {
	return models.TargetScoreReport{
		NeededScores: map[string]string{},
		Scenarios:    []models.TargetScenario{},
		Period:       kind,
		Target:       target,
	}
}

func missingSlots(kind models.PeriodKind, in models.PeriodInputs) ([]slot, *slot) {
	var quizzes []slot
	for i, quiz := range in.Quizzes {
		if quiz.Score.IsPresent() {
			continue
		}
		quizzes = append(quizzes, slot{
			label:  QuizLabel(kind, i),
			weight: QuizWeight / models.QuizSlots,
			max:    slotMax(quiz.Max),
		})
	}
	var exam *slot
	if !in.Exam.Score.IsPresent() {
		exam = &slot{label: ExamLabel, weight: ExamWeight, max: slotMax(in.Exam.Max)}
	}
	return quizzes, exam
}

// QuizLabel names a quiz slot. Finals quizzes continue the midterm numbering.
func QuizLabel(kind models.PeriodKind, index int) string {
	offset := 1
	if kind == models.PeriodFinals {
		offset = models.QuizSlots + 1
	}
	return fmt.Sprintf("Quiz %d", index+offset)
}

func quizSlotContribution(quiz models.ComponentScore) float64 {
	if !quiz.Score.IsPresent() || quiz.Max <= 0 {
		return 0
	}
	return Curve(Normalize(quiz.Score, quiz.Max)) * QuizWeight / models.QuizSlots
}

func slotMax(maxScore float64) float64 {
	if maxScore <= 0 {
		return DefaultSlotMax
	}
	return maxScore
}

// rawScoreFor inverts the curve for a weighted contribution and scales it to the slot max.
// The result is unclamped.
func rawScoreFor(contribution float64, s slot) float64 {
	return InvertCurve(contribution, s.weight) / 100 * s.max
}

// record stores the reporting string for one slot and folds its feasibility in.
func record(scenario *models.TargetScenario, s slot, raw float64) {
	label, possible := describe(raw, s.max)
	scenario.Scores[s.label] = label
	scenario.Possible = scenario.Possible && possible
}

// describe renders a needed raw score. A requirement at or above the slot max marks the
// scenario infeasible. Others are rounded up so the student is never told less than they need.
func describe(raw, maxScore float64) (string, bool) {
	if raw >= maxScore-ceilEpsilon {
		return fmt.Sprintf("Max score needed (%s), may not be enough", formatNumber(maxScore)), false
	}
	if raw <= 0 {
		return "Any score works", true
	}
	return outOf(math.Min(ceilScore(raw), maxScore), maxScore), true
}

func fixedScore(maxScore, share float64) float64 {
	return math.Min(maxScore, ceilScore(maxScore*share))
}

func ceilScore(v float64) float64 {
	return math.Ceil(v - ceilEpsilon)
}

func outOf(score, maxScore float64) string {
	return fmt.Sprintf("%s out of %s", formatNumber(score), formatNumber(maxScore))
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
