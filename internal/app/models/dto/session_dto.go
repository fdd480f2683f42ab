package dto

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/yigit/gpacalc/internal/app/models"
	"github.com/yigit/gpacalc/internal/domain"
	"github.com/yigit/gpacalc/internal/grading"
	"github.com/yigit/gpacalc/internal/pkg/validation"
)

// ErrInvalidValue is returned when an edit value has the wrong JSON type for its field
var ErrInvalidValue = errors.New("invalid value for field")

// SessionResponse is the full state of a calculator session
type SessionResponse struct {
	ID         string                    `json:"id" example:"6f1c2f8e-3b9a-4c53-9a57-0b8e4f7d2a11"`
	ActiveView domain.View               `json:"activeView" example:"term1" enums:"term1,term2,combined"`
	Term1      []domain.Course           `json:"term1"`
	Term2      []domain.Course           `json:"term2"`
	Result     grading.CalculationResult `json:"result"`
	CreatedAt  time.Time                 `json:"createdAt"`
	UpdatedAt  time.Time                 `json:"updatedAt"`
	ExpiresAt  time.Time                 `json:"expiresAt"`
}

// NewSessionResponse renders a session together with the result of its active view
func NewSessionResponse(s *models.Session, result grading.CalculationResult) *SessionResponse {
	return &SessionResponse{
		ID:         s.ID,
		ActiveView: s.ActiveView,
		Term1:      nonNil(s.Term1),
		Term2:      nonNil(s.Term2),
		Result:     result,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
		ExpiresAt:  s.ExpiresAt,
	}
}

func nonNil(courses []domain.Course) []domain.Course {
	if courses == nil {
		return []domain.Course{}
	}
	return courses
}

// CreateSessionResponse is returned when a new session starts
type CreateSessionResponse struct {
	Token     string           `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	TokenType string           `json:"tokenType" example:"Bearer"`
	Session   *SessionResponse `json:"session"`
}

// SetViewRequest switches the active view
type SetViewRequest struct {
	View string `json:"view" binding:"required" example:"combined" enums:"term1,term2,combined"`
}

// ResultResponse is the GPA of one view
type ResultResponse struct {
	View   domain.View               `json:"view" example:"term1"`
	Result grading.CalculationResult `json:"result"`
}

// ChartResponse is the chart series of one view
type ChartResponse struct {
	View   domain.View          `json:"view" example:"combined"`
	Points []grading.ChartPoint `json:"points"`
}

// UpdateCourseRequest changes one field of a course.
// Value is a string for "name"; a number, numeric string, "" or null for
// "credits" and "score", where "" and null clear the value.
type UpdateCourseRequest struct {
	Field string          `json:"field" binding:"required,oneof=name credits score" example:"score"`
	Value json.RawMessage `json:"value" swaggertype:"string" example:"87.5"`
}

// ToEdit decodes the request into a domain edit
func (r UpdateCourseRequest) ToEdit() (domain.Edit, error) {
	edit := domain.Edit{Field: domain.Field(r.Field)}
	raw := bytes.TrimSpace(r.Value)
	isNull := len(raw) == 0 || bytes.Equal(raw, []byte("null"))

	if edit.Field == domain.FieldName {
		if isNull {
			return edit, nil
		}
		if err := json.Unmarshal(raw, &edit.Name); err != nil {
			return edit, ErrInvalidValue
		}
		return edit, nil
	}

	if isNull {
		return edit, nil
	}

	var number float64
	if err := json.Unmarshal(raw, &number); err == nil {
		edit.Number = &number
		return edit, nil
	}

	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		return edit, ErrInvalidValue
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return edit, nil
	}
	number, err := strconv.ParseFloat(text, 64)
	if err != nil || !validation.Finite(number) {
		return edit, ErrInvalidValue
	}
	edit.Number = &number
	return edit, nil
}

// CourseMutationResponse reports the outcome of a course add, edit or removal
type CourseMutationResponse struct {
	Term    domain.View      `json:"term" example:"term1"`
	Applied bool             `json:"applied" example:"true"`
	Course  *domain.Course   `json:"course,omitempty"`
	Session *SessionResponse `json:"session"`
}
