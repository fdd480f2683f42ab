package domain

import (
	"errors"
	"strings"
)

// ErrInvalidView is returned when a view or term name is not recognised.
var ErrInvalidView = errors.New("invalid view")

// View selects which course list(s) feed the GPA calculation
type View string

const (
	ViewTerm1    View = "term1"
	ViewTerm2    View = "term2"
	ViewCombined View = "combined"
)

// InitialView is the view a new session starts in.
const InitialView = ViewTerm1

// Views lists every selectable view in display order.
var Views = []View{ViewTerm1, ViewTerm2, ViewCombined}

// ParseView parses a view name, case-insensitively.
func ParseView(s string) (View, error) {
	switch View(strings.ToLower(strings.TrimSpace(s))) {
	case ViewTerm1:
		return ViewTerm1, nil
	case ViewTerm2:
		return ViewTerm2, nil
	case ViewCombined:
		return ViewCombined, nil
	}
	return "", ErrInvalidView
}

// ParseTerm parses the name of a single editable term. "combined" is not a term.
func ParseTerm(s string) (View, error) {
	v, err := ParseView(s)
	if err != nil {
		return "", err
	}
	if !v.Editable() {
		return "", ErrInvalidView
	}
	return v, nil
}

// Editable reports whether the view addresses a single mutable course list.
func (v View) Editable() bool {
	return v == ViewTerm1 || v == ViewTerm2
}

// Select returns the course list(s) the view feeds into aggregation.
// The combined view concatenates term 1 courses followed by term 2 courses.
func (v View) Select(term1, term2 []Course) []Course {
	switch v {
	case ViewTerm1:
		return term1
	case ViewTerm2:
		return term2
	case ViewCombined:
		out := make([]Course, 0, len(term1)+len(term2))
		out = append(out, term1...)
		return append(out, term2...)
	}
	return nil
}
