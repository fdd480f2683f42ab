package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/yigit/gpacalc/internal/app/models"
	"github.com/yigit/gpacalc/internal/domain"
)

const sessionsTable = "calculator_sessions"

var sessionColumns = []string{
	"id", "active_view", "term1_courses", "term2_courses", "last_course_id", "created_at", "updated_at", "expires_at",
}

// SessionRepository stores calculator sessions.
// GetByID never returns a session whose ExpiresAt has passed.
type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	GetByID(ctx context.Context, id string) (*models.Session, error)
	Update(ctx context.Context, session *models.Session) error
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// encodeCourses serialises a course list for a JSON column.
func encodeCourses(courses []domain.Course) (string, error) {
	if courses == nil {
		courses = []domain.Course{}
	}
	b, err := json.Marshal(courses)
	if err != nil {
		return "", fmt.Errorf("failed to encode courses: %w", err)
	}
	return string(b), nil
}

// decodeCourses parses a JSON column back into a course list.
func decodeCourses(raw []byte) ([]domain.Course, error) {
	courses := []domain.Course{}
	if len(raw) == 0 {
		return courses, nil
	}
	if err := json.Unmarshal(raw, &courses); err != nil {
		return nil, fmt.Errorf("failed to decode courses: %w", err)
	}
	return courses, nil
}
