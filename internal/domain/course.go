package domain

import (
	"errors"

	"github.com/yigit/gpacalc/internal/pkg/validation"
)

// Defaults for a newly added course
const (
	DefaultCourseName    = "مادة جديدة"
	DefaultCourseCredits = 3.0
)

var (
	// ErrCourseNotFound is returned when no course in the list has the requested id.
	ErrCourseNotFound = errors.New("course not found")
	// ErrEditRejected is returned when an edit would put a course out of its valid range.
	ErrEditRejected = errors.New("edit rejected")
	// ErrUnknownField is returned for an edit naming a field that cannot be edited.
	ErrUnknownField = errors.New("unknown course field")
)

// Course is a single entry of a term's course list.
// Score is nil while the student has not entered a percentage.
type Course struct {
	ID      int64    `json:"id" yaml:"id"`
	Name    string   `json:"name" yaml:"name"`
	Credits float64  `json:"credits" yaml:"credits"`
	Score   *float64 `json:"score" yaml:"score"`
}

// Counted reports whether the course takes part in GPA aggregation.
func (c Course) Counted() bool {
	return c.Score != nil && c.Credits > 0
}

// Field names an editable course attribute
type Field string

const (
	FieldName    Field = "name"
	FieldCredits Field = "credits"
	FieldScore   Field = "score"
)

// Edit is a single-field change to a course.
// Name is used for FieldName; Number for FieldCredits and FieldScore,
// where a nil Number clears the value.
type Edit struct {
	Field  Field
	Name   string
	Number *float64
}

// Score returns a pointer to a copy of v, for building courses with a score.
func Score(v float64) *float64 {
	return &v
}

// CloneCourses returns a deep copy of list.
func CloneCourses(list []Course) []Course {
	if list == nil {
		return nil
	}
	out := make([]Course, len(list))
	for i, c := range list {
		out[i] = c
		if c.Score != nil {
			out[i].Score = Score(*c.Score)
		}
	}
	return out
}

// NextCourseID returns an id above last and above every course id of the
// given lists. Passing the last id handed out keeps ids of removed courses
// from coming back.
func NextCourseID(last int64, lists ...[]Course) int64 {
	max := last
	for _, list := range lists {
		for _, c := range list {
			if c.ID > max {
				max = c.ID
			}
		}
	}
	return max + 1
}

// AddCourse returns a copy of list with a default course appended under id.
func AddCourse(list []Course, id int64) []Course {
	out := make([]Course, 0, len(list)+1)
	out = append(out, CloneCourses(list)...)
	return append(out, Course{
		ID:      id,
		Name:    DefaultCourseName,
		Credits: DefaultCourseCredits,
	})
}

// UpdateCourse returns a copy of list with the edit applied to the course
// with the given id. Out-of-range scores and credits are rejected with
// ErrEditRejected, and the original list is returned untouched.
func UpdateCourse(list []Course, id int64, edit Edit) ([]Course, error) {
	idx := indexOf(list, id)
	if idx < 0 {
		return list, ErrCourseNotFound
	}

	updated := list[idx]
	switch edit.Field {
	case FieldName:
		updated.Name = edit.Name
	case FieldCredits:
		if edit.Number == nil {
			updated.Credits = 0
			break
		}
		if !validation.CreditsValid(*edit.Number) {
			return list, ErrEditRejected
		}
		updated.Credits = *edit.Number
	case FieldScore:
		if edit.Number == nil {
			updated.Score = nil
			break
		}
		if !validation.ScoreInRange(*edit.Number) {
			return list, ErrEditRejected
		}
		updated.Score = Score(*edit.Number)
	default:
		return list, ErrUnknownField
	}

	out := CloneCourses(list)
	out[idx] = updated
	return out, nil
}

// RemoveCourse returns a copy of list without the course with the given id.
func RemoveCourse(list []Course, id int64) ([]Course, error) {
	idx := indexOf(list, id)
	if idx < 0 {
		return list, ErrCourseNotFound
	}
	out := make([]Course, 0, len(list)-1)
	out = append(out, CloneCourses(list[:idx])...)
	return append(out, CloneCourses(list[idx+1:])...), nil
}

func indexOf(list []Course, id int64) int {
	for i := range list {
		if list[i].ID == id {
			return i
		}
	}
	return -1
}
