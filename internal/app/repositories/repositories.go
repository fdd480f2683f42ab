package repositories

import (
	"database/sql"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yigit/gpacalc/internal/app/models"
)

// Repositories holds all the repository instances
type Repositories struct {
	SessionRepository SessionRepository
}

// NewMemoryRepositories backs every repository with process memory
func NewMemoryRepositories() *Repositories {
	return &Repositories{
		SessionRepository: NewMemorySessionRepository(),
	}
}

// NewPostgresRepositories backs every repository with a PostgreSQL pool
func NewPostgresRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		SessionRepository: NewPostgresSessionRepository(db),
	}
}

// NewSQLiteRepositories backs every repository with an SQLite database
func NewSQLiteRepositories(db *sql.DB) *Repositories {
	return &Repositories{
		SessionRepository: NewSQLiteSessionRepository(db),
	}
}

// Backend reports which store a SessionRepository is using.
func Backend(repo SessionRepository) models.SessionStore {
	switch repo.(type) {
	case *PostgresSessionRepository:
		return models.SessionStorePostgres
	case *SQLiteSessionRepository:
		return models.SessionStoreSQLite
	default:
		return models.SessionStoreMemory
	}
}
