package validation

import (
	"math"
	"regexp"
	"unicode/utf8"
)

// Validation rule limits
var (
	// Score bounds, inclusive
	MinScore = 0.0
	MaxScore = 100.0

	// Credits may be zero (the course is then left out of the GPA) but never negative
	MinCredits = 0.0
	MaxCredits = 100.0

	// SessionIDPattern matches the canonical UUID text form
	SessionIDPattern = `^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	SessionID *regexp.Regexp
}{
	SessionID: regexp.MustCompile(SessionIDPattern),
}

// Finite reports whether v is neither NaN nor an infinity.
func Finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// ScoreInRange reports whether a percentage score is finite and lies within [MinScore, MaxScore].
func ScoreInRange(score float64) bool {
	return Finite(score) && score >= MinScore && score <= MaxScore
}

// CreditsValid reports whether a credit-hour count is finite and within [MinCredits, MaxCredits].
func CreditsValid(credits float64) bool {
	return Finite(credits) && credits >= MinCredits && credits <= MaxCredits
}

// StringValidation checks a single string value against length and pattern rules
type StringValidation struct {
	Value    string
	MinLen   int
	MaxLen   int
	Required bool
	Pattern  *regexp.Regexp
}

// NewStringValidation creates a new string validation
func NewStringValidation(value string) *StringValidation {
	return &StringValidation{
		Value:    value,
		Required: true,
	}
}

// WithMinLength sets minimum length
func (v *StringValidation) WithMinLength(min int) *StringValidation {
	v.MinLen = min
	return v
}

// WithMaxLength sets maximum length
func (v *StringValidation) WithMaxLength(max int) *StringValidation {
	v.MaxLen = max
	return v
}

// WithPattern sets regex pattern
func (v *StringValidation) WithPattern(pattern *regexp.Regexp) *StringValidation {
	v.Pattern = pattern
	return v
}

// WithRequired sets if field is required
func (v *StringValidation) WithRequired(required bool) *StringValidation {
	v.Required = required
	return v
}

// Validate performs validation
func (v *StringValidation) Validate() bool {
	if v.Value == "" {
		return !v.Required
	}

	n := utf8.RuneCountInString(v.Value)
	if v.MinLen > 0 && n < v.MinLen {
		return false
	}
	if v.MaxLen > 0 && n > v.MaxLen {
		return false
	}

	if v.Pattern != nil && !v.Pattern.MatchString(v.Value) {
		return false
	}

	return true
}

// SessionIDValid reports whether id looks like a session identifier.
func SessionIDValid(id string) bool {
	return NewStringValidation(id).
		WithPattern(CompiledPatterns.SessionID).
		Validate()
}
