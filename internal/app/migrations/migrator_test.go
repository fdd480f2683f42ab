package migrations

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMigrationVersion(t *testing.T) {
	assert.Equal(t, "001", migrationVersion(filepath.Join("migrations", "001_create_calculator_sessions.sql")))
	assert.Equal(t, "002", migrationVersion("002_add_index.sql"))
	assert.Equal(t, "init.sql", migrationVersion("init.sql"))
}
