package grading

import (
	"fmt"
	"math"

	"github.com/noah-isme/grade-genius-api/internal/models"
)

var gpeScale = []models.GPEStep{
	{MinGrade: 99, GPE: "1.00"},
	{MinGrade: 96, GPE: "1.25"},
	{MinGrade: 93, GPE: "1.50"},
	{MinGrade: 90, GPE: "1.75"},
	{MinGrade: 87, GPE: "2.00"},
	{MinGrade: 84, GPE: "2.25"},
	{MinGrade: 81, GPE: "2.50"},
	{MinGrade: 78, GPE: "2.75"},
	{MinGrade: 75, GPE: "3.00"},
}

// FailingGPE is reported for any rounded grade below the lowest step.
const FailingGPE = "5.00"

// FinalGrade combines the two period grades.
func FinalGrade(midterm, finals float64) float64 {
	return midterm*MidtermWeight + finals*FinalsWeight
}

// RoundGrade rounds half up to the nearest integer. Grades beyond the int range saturate.
func RoundGrade(grade float64) int {
	rounded := roundHalfUp(grade)
	switch {
	case rounded >= math.MaxInt:
		return math.MaxInt
	case rounded <= math.MinInt:
		return math.MinInt
	}
	return int(rounded)
}

// roundHalfUp is the rounding every band lookup goes through. It stays in float64 so
// comparisons hold for any magnitude.
func roundHalfUp(grade float64) float64 {
	return math.Floor(grade + 0.5)
}

// GPE maps a final grade to its grade point equivalent, scanning the scale top-down.
func GPE(finalGrade float64) string {
	rounded := roundHalfUp(finalGrade)
	for _, step := range gpeScale {
		if rounded >= float64(step.MinGrade) {
			return step.GPE
		}
	}
	return FailingGPE
}

// Scale returns a copy of the GPE table, highest step first.
func Scale() []models.GPEStep {
	steps := make([]models.GPEStep, len(gpeScale))
	copy(steps, gpeScale)
	return steps
}

// Band classifies the rounded grade.
func Band(finalGrade float64) models.GradeBand {
	rounded := roundHalfUp(finalGrade)
	switch {
	case rounded < 75:
		return models.GradeBandFailed
	case rounded < 80:
		return models.GradeBandNeedsImprovement
	case rounded < 90:
		return models.GradeBandGood
	default:
		return models.GradeBandExcellent
	}
}

// FormatFinalGrade renders "83 (83.40)".
func FormatFinalGrade(finalGrade float64) string {
	return fmt.Sprintf("%d (%.2f)", RoundGrade(finalGrade), finalGrade)
}

// Lookup bundles the display values for a single grade.
func Lookup(finalGrade float64) models.GPELookup {
	return models.GPELookup{
		Grade:     finalGrade,
		Rounded:   RoundGrade(finalGrade),
		Formatted: FormatFinalGrade(finalGrade),
		GPE:       GPE(finalGrade),
		Band:      Band(finalGrade),
	}
}
