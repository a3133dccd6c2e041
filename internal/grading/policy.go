// Package grading computes period grades, the combined final grade, its grade point
// equivalent, and back-solves the scores a student still needs to reach a target grade.
//
// Every function is pure: inputs are value types, nothing is cached, and no function
// returns an error. Missing or malformed data degrades to a zero contribution.
package grading

// Course policy constants. They are fixed by the grading scheme and are not derived.
const (
	// CurveSlope and CurveFloor define the leniency curve (x*0.5)+50.
	CurveSlope = 0.5
	CurveFloor = 50.0

	QuizWeight       = 0.35
	ExamWeight       = 0.45
	AttendanceWeight = 0.10
	ProblemSetWeight = 0.10

	// AttendanceMax and ProblemSetMax are the raw scales of the uncurved components.
	AttendanceMax = 10.0
	ProblemSetMax = 10.0

	MidtermWeight = 0.30
	FinalsWeight  = 0.70

	// DefaultTarget is the passing final grade.
	DefaultTarget = 75.0

	// AssumedFinalsGrade is the finals grade the midterm solve is measured against.
	AssumedFinalsGrade = 100.0

	// DefaultSlotMax is used by the solver when a missing slot carries no max score.
	DefaultSlotMax = 100.0
)
