package services

import (
	"github.com/yigit/gpacalc/internal/domain"
	"github.com/yigit/gpacalc/internal/grading"
)

// GradingService exposes the grading scale and GPA aggregation without session state
type GradingService interface {
	Scale() grading.Scale
	Resolve(score *float64) (grade string, points float64)
	Calculate(courses []domain.Course) (grading.CalculationResult, []grading.ChartPoint)
}

type gradingServiceImpl struct {
	scale grading.Scale
}

// NewGradingService creates a grading service over scale
func NewGradingService(scale grading.Scale) GradingService {
	return &gradingServiceImpl{scale: scale}
}

// Scale returns a copy of the grading table
func (s *gradingServiceImpl) Scale() grading.Scale {
	return append(grading.Scale(nil), s.scale...)
}

func (s *gradingServiceImpl) Resolve(score *float64) (string, float64) {
	return s.scale.Resolve(score)
}

func (s *gradingServiceImpl) Calculate(courses []domain.Course) (grading.CalculationResult, []grading.ChartPoint) {
	return s.scale.Aggregate(courses), s.scale.Chart(courses)
}
