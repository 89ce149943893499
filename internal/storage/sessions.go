package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Session groups the scrambles generated in one interactive session.
type Session struct {
	SessionID string
	StartedAt time.Time
	EndedAt   *time.Time
	Mode      string
}

// SessionRepository provides CRUD operations for sessions.
type SessionRepository struct {
	db *DB
}

// NewSessionRepository creates a new session repository.
func NewSessionRepository(db *DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create starts a new session and returns its ID.
func (r *SessionRepository) Create(mode string) (string, error) {
	id := uuid.New().String()
	startedAt := time.Now().UTC()

	_, err := r.db.Exec(`
		INSERT INTO sessions (session_id, started_at, mode)
		VALUES (?, ?, ?)
	`, id, startedAt.Format(timeLayout), mode)
	if err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}

	return id, nil
}

// End marks a session as finished.
func (r *SessionRepository) End(sessionID string) error {
	_, err := r.db.Exec(`
		UPDATE sessions SET ended_at = ? WHERE session_id = ?
	`, time.Now().UTC().Format(timeLayout), sessionID)
	if err != nil {
		return fmt.Errorf("failed to end session: %w", err)
	}
	return nil
}

// Get retrieves a session by ID. It returns nil if no such session exists.
func (r *SessionRepository) Get(sessionID string) (*Session, error) {
	var s Session
	var startedAtStr string
	var endedAtStr sql.NullString

	err := r.db.QueryRow(`
		SELECT session_id, started_at, ended_at, mode
		FROM sessions
		WHERE session_id = ?
	`, sessionID).Scan(&s.SessionID, &startedAtStr, &endedAtStr, &s.Mode)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	s.StartedAt, _ = time.Parse(timeLayout, startedAtStr)
	if endedAtStr.Valid {
		t, _ := time.Parse(timeLayout, endedAtStr.String)
		s.EndedAt = &t
	}

	return &s, nil
}
