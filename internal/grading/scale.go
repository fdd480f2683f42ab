package grading

import "github.com/yigit/gpacalc/internal/pkg/validation"

// NotApplicable is the grade reported for an absent or out-of-range score.
const NotApplicable = "N/A"

// MaxGradePoint is the highest grade-point value on the scale.
const MaxGradePoint = 4.0

// GradePoint is one band of the grading scale.
type GradePoint struct {
	Grade         string  `json:"grade"`
	Points        float64 `json:"points"`
	MinPercentage float64 `json:"minPercentage"`
}

// Scale is an ordered grading table, highest threshold first.
// The last entry must have a zero threshold so every in-range score resolves.
type Scale []GradePoint

// DefaultScale is the university's percentage-to-grade table.
var DefaultScale = Scale{
	{Grade: "A+", Points: 4.0, MinPercentage: 97},
	{Grade: "A", Points: 4.0, MinPercentage: 93},
	{Grade: "A-", Points: 3.7, MinPercentage: 89},
	{Grade: "B+", Points: 3.3, MinPercentage: 84},
	{Grade: "B", Points: 3.0, MinPercentage: 80},
	{Grade: "B-", Points: 2.7, MinPercentage: 76},
	{Grade: "C+", Points: 2.3, MinPercentage: 73},
	{Grade: "C", Points: 2.0, MinPercentage: 70},
	{Grade: "C-", Points: 1.7, MinPercentage: 67},
	{Grade: "D+", Points: 1.3, MinPercentage: 64},
	{Grade: "D", Points: 1.0, MinPercentage: 60},
	{Grade: "F", Points: 0.0, MinPercentage: 0},
}

// Resolve maps a percentage score to its letter grade and grade points.
func (s Scale) Resolve(score *float64) (grade string, points float64) {
	if score == nil || !validation.ScoreInRange(*score) {
		return NotApplicable, 0
	}
	for _, gp := range s {
		if *score >= gp.MinPercentage {
			return gp.Grade, gp.Points
		}
	}
	// unreachable while the table ends in a zero threshold
	return "F", 0
}

// Resolve looks a score up on DefaultScale.
func Resolve(score *float64) (grade string, points float64) {
	return DefaultScale.Resolve(score)
}
