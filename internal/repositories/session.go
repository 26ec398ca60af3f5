package repositories

import (
	"database/sql"
	"fmt"
	"time"
)

// SessionRepository implements the auth.Store interface over a sessions table.
type SessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a new [SessionRepository] with the given database connection
func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Get retrieves the value stored under key. An absent key yields the empty
// string without an error.
func (r *SessionRepository) Get(key string) (string, error) {
	var value string

	err := r.db.QueryRow("SELECT value FROM sessions WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to query session key %s: %w", key, err)
	}

	return value, nil
}

// Set stores value under key, overwriting any previous value.
func (r *SessionRepository) Set(key, value string) error {
	query := `
		INSERT INTO sessions (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`

	if _, err := r.db.Exec(query, key, value, time.Now()); err != nil {
		return fmt.Errorf("failed to store session key %s: %w", key, err)
	}

	return nil
}

// Clear removes all session state.
func (r *SessionRepository) Clear() error {
	if _, err := r.db.Exec("DELETE FROM sessions"); err != nil {
		return fmt.Errorf("failed to clear sessions: %w", err)
	}
	return nil
}
