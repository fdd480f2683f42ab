package seed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/gpacalc/internal/domain"
)

func TestDefaultCatalog(t *testing.T) {
	c := DefaultCatalog()
	require.Len(t, c.Term1, 6)
	require.Len(t, c.Term2, 7)
	require.NoError(t, c.validate())

	for _, course := range append(c.Term1, c.Term2...) {
		assert.Nil(t, course.Score)
	}
	assert.Equal(t, int64(108), domain.NextCourseID(0, c.Term1, c.Term2))
}

func TestCatalog_ListsAreCopies(t *testing.T) {
	c := DefaultCatalog()
	term1, _ := c.Lists()
	term1[0].Name = "changed"
	assert.Equal(t, "رياضة (1)", c.Term1[0].Name)
}

func TestLoadCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
term1:
  - {id: 1, name: Calculus, credits: 4}
  - {id: 2, name: Physics, credits: 3, score: 88}
term2: []
`), 0o600))

	c, err := LoadCatalog(path, zerolog.Nop())
	require.NoError(t, err)
	require.Len(t, c.Term1, 2)
	assert.Equal(t, "Calculus", c.Term1[0].Name)
	require.NotNil(t, c.Term1[1].Score)
	assert.Equal(t, 88.0, *c.Term1[1].Score)

	_, term2 := c.Lists()
	assert.NotNil(t, term2)
	assert.Empty(t, term2)
}

func TestLoadCatalog_EmptyPathUsesDefault(t *testing.T) {
	c, err := LoadCatalog("", zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, DefaultCatalog(), c)
}

func TestLoadCatalog_Invalid(t *testing.T) {
	cases := map[string]string{
		"duplicate id": "term1:\n  - {id: 1, name: a, credits: 3}\nterm2:\n  - {id: 1, name: b, credits: 3}\n",
		"negative":     "term1:\n  - {id: 1, name: a, credits: -1}\n",
		"bad score":    "term1:\n  - {id: 1, name: a, credits: 3, score: 120}\n",
		"nan score":    "term1:\n  - {id: 1, name: a, credits: 3, score: .nan}\n",
		"inf credits":  "term1:\n  - {id: 1, name: a, credits: .inf}\n",
		"huge credits": "term1:\n  - {id: 1, name: a, credits: 1e308}\n",
		"zero id":      "term1:\n  - {id: 0, name: a, credits: 3}\n",
		"broken":       "term1: [",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "seed.yaml")
			require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
			_, err := LoadCatalog(path, zerolog.Nop())
			assert.Error(t, err)
		})
	}

	_, err := LoadCatalog(filepath.Join(t.TempDir(), "missing.yaml"), zerolog.Nop())
	assert.Error(t, err)
}
