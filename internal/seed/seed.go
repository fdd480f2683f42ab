package seed

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/yigit/gpacalc/internal/domain"
	"github.com/yigit/gpacalc/internal/pkg/validation"
)

// Catalog holds the course lists every new session starts from.
type Catalog struct {
	Term1 []domain.Course `yaml:"term1"`
	Term2 []domain.Course `yaml:"term2"`
}

// DefaultCatalog returns the built-in first-year engineering course lists.
func DefaultCatalog() *Catalog {
	return &Catalog{
		Term1: []domain.Course{
			{ID: 1, Name: "رياضة (1)", Credits: 3},
			{ID: 2, Name: "فيزياء (1)", Credits: 3},
			{ID: 3, Name: "ميكانيكا (1)", Credits: 3},
			{ID: 4, Name: "كيمياء هندسية", Credits: 3},
			{ID: 5, Name: "رسم هندسي وإسقاط فراغي", Credits: 3},
			{ID: 6, Name: "لغة انجليزية فنية", Credits: 2},
		},
		Term2: []domain.Course{
			{ID: 101, Name: "رياضة 2", Credits: 3},
			{ID: 102, Name: "فيزياء 2", Credits: 3},
			{ID: 103, Name: "ميكانيكا 2", Credits: 3},
			{ID: 104, Name: "كيمياء هندسية", Credits: 3},
			{ID: 105, Name: "حاسبات وبرمجة", Credits: 3},
			{ID: 106, Name: "تاريخ هندسي", Credits: 2},
			{ID: 107, Name: "حقوق انسان", Credits: 2},
		},
	}
}

// LoadCatalog reads a YAML catalog from path. An empty path yields the default catalog.
func LoadCatalog(path string, lgr zerolog.Logger) (*Catalog, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	catalog := &Catalog{}
	if err := yaml.Unmarshal(raw, catalog); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	if err := catalog.validate(); err != nil {
		return nil, fmt.Errorf("invalid seed file %s: %w", path, err)
	}

	lgr.Info().
		Str("path", path).
		Int("term1Courses", len(catalog.Term1)).
		Int("term2Courses", len(catalog.Term2)).
		Msg("Loaded course seed file")
	return catalog, nil
}

// validate checks ids are unique across both terms and every course is in range.
func (c *Catalog) validate() error {
	seen := make(map[int64]bool)
	for _, list := range [][]domain.Course{c.Term1, c.Term2} {
		for _, course := range list {
			if course.ID <= 0 {
				return fmt.Errorf("course %q has non-positive id %d", course.Name, course.ID)
			}
			if seen[course.ID] {
				return fmt.Errorf("duplicate course id %d", course.ID)
			}
			seen[course.ID] = true
			if !validation.CreditsValid(course.Credits) {
				return fmt.Errorf("course %d has credits outside %g-%g", course.ID, validation.MinCredits, validation.MaxCredits)
			}
			if course.Score != nil && !validation.ScoreInRange(*course.Score) {
				return fmt.Errorf("course %d has a score outside %g-%g", course.ID, validation.MinScore, validation.MaxScore)
			}
		}
	}
	return nil
}

// Lists returns fresh copies of both term lists for a new session.
func (c *Catalog) Lists() (term1, term2 []domain.Course) {
	term1 = domain.CloneCourses(c.Term1)
	term2 = domain.CloneCourses(c.Term2)
	if term1 == nil {
		term1 = []domain.Course{}
	}
	if term2 == nil {
		term2 = []domain.Course{}
	}
	return term1, term2
}
