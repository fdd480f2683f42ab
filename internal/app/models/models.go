package models

// SessionStore names a backend for calculator sessions
type SessionStore string

const (
	SessionStoreMemory   SessionStore = "memory"
	SessionStorePostgres SessionStore = "postgres"
	SessionStoreSQLite   SessionStore = "sqlite"
)
