package dto

import (
	"github.com/yigit/gpacalc/internal/domain"
	"github.com/yigit/gpacalc/internal/grading"
)

// GradeScaleResponse lists the grading scale from the highest band down
type GradeScaleResponse struct {
	Grades        []grading.GradePoint `json:"grades"`
	MaxGradePoint float64              `json:"maxGradePoint" example:"4"`
}

// ResolveResponse is the grade for a single percentage
type ResolveResponse struct {
	Score  *float64 `json:"score" example:"91.5"`
	Grade  string   `json:"grade" example:"A-"`
	Points float64  `json:"points" example:"3.7"`
	Fill   string   `json:"fill" example:"#34D399"`
}

// CourseInput is a course submitted for a stateless calculation
type CourseInput struct {
	ID      int64    `json:"id" example:"1"`
	Name    string   `json:"name" example:"Calculus I"`
	Credits float64  `json:"credits" binding:"gte=0,lte=100" example:"3"`
	Score   *float64 `json:"score" binding:"omitempty,gte=0,lte=100" example:"88"`
}

// CalculateRequest carries a course list for POST /grading/calculate
type CalculateRequest struct {
	Courses []CourseInput `json:"courses" binding:"required,dive"`
}

// ToCourses converts the request into domain courses
func (r CalculateRequest) ToCourses() []domain.Course {
	courses := make([]domain.Course, len(r.Courses))
	for i, in := range r.Courses {
		courses[i] = domain.Course{ID: in.ID, Name: in.Name, Credits: in.Credits, Score: in.Score}
	}
	return courses
}

// CalculateResponse is the aggregate and chart series of a posted course list
type CalculateResponse struct {
	Result grading.CalculationResult `json:"result"`
	Chart  []grading.ChartPoint      `json:"chart"`
}
