package grading

import (
	"github.com/shopspring/decimal"

	"github.com/yigit/gpacalc/internal/domain"
)

// CalculationResult is the credit-weighted summary of a course list.
// It is derived on every read and never stored.
type CalculationResult struct {
	GPA          float64 `json:"gpa" example:"3.65"`
	TotalCredits float64 `json:"totalCredits" example:"6"`
	TotalPoints  float64 `json:"totalPoints" example:"21.9"`
	MaxPoints    float64 `json:"maxPoints" example:"24"`
}

const (
	gpaPlaces    = 3
	pointsPlaces = 2
)

var maxGradePoint = decimal.NewFromFloat(MaxGradePoint)

// Aggregate computes the GPA of courses on this scale. Courses without a
// score or with non-positive credits are left out of every sum. Rounding
// happens once, on the totals.
func (s Scale) Aggregate(courses []domain.Course) CalculationResult {
	totalPoints := decimal.Zero
	totalCredits := decimal.Zero

	for _, c := range courses {
		if !c.Counted() {
			continue
		}
		_, points := s.Resolve(c.Score)
		credits := decimal.NewFromFloat(c.Credits)
		totalPoints = totalPoints.Add(decimal.NewFromFloat(points).Mul(credits))
		totalCredits = totalCredits.Add(credits)
	}

	if !totalCredits.IsPositive() {
		return CalculationResult{}
	}

	gpa := totalPoints.Div(totalCredits)
	maxPoints := totalCredits.Mul(maxGradePoint)

	return CalculationResult{
		GPA:          gpa.Round(gpaPlaces).InexactFloat64(),
		TotalCredits: totalCredits.InexactFloat64(),
		TotalPoints:  totalPoints.Round(pointsPlaces).InexactFloat64(),
		MaxPoints:    maxPoints.Round(pointsPlaces).InexactFloat64(),
	}
}

// Aggregate computes the GPA of courses on DefaultScale.
func Aggregate(courses []domain.Course) CalculationResult {
	return DefaultScale.Aggregate(courses)
}
