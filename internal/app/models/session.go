package models

import (
	"time"

	"github.com/yigit/gpacalc/internal/domain"
)

// Session holds one student's two term course lists and the active view.
// Sessions are ephemeral: they are purged once ExpiresAt passes.
// LastCourseID is the highest course id ever handed out in the session.
type Session struct {
	ID           string          `json:"id" db:"id"`
	ActiveView   domain.View     `json:"activeView" db:"active_view"`
	Term1        []domain.Course `json:"term1" db:"term1_courses"`
	Term2        []domain.Course `json:"term2" db:"term2_courses"`
	LastCourseID int64           `json:"lastCourseId" db:"last_course_id"`
	CreatedAt    time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time       `json:"updatedAt" db:"updated_at"`
	ExpiresAt    time.Time       `json:"expiresAt" db:"expires_at"`
}

// Courses returns the course list of an editable term.
func (s *Session) Courses(term domain.View) []domain.Course {
	switch term {
	case domain.ViewTerm1:
		return s.Term1
	case domain.ViewTerm2:
		return s.Term2
	}
	return nil
}

// SetCourses replaces the course list of an editable term.
func (s *Session) SetCourses(term domain.View, courses []domain.Course) {
	switch term {
	case domain.ViewTerm1:
		s.Term1 = courses
	case domain.ViewTerm2:
		s.Term2 = courses
	}
}

// Selected returns the courses feeding the given view.
func (s *Session) Selected(view domain.View) []domain.Course {
	return view.Select(s.Term1, s.Term2)
}

// Expired reports whether the session has outlived its TTL at now.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// Clone returns a deep copy so stored sessions are never shared with callers.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	c := *s
	c.Term1 = domain.CloneCourses(s.Term1)
	c.Term2 = domain.CloneCourses(s.Term2)
	return &c
}
