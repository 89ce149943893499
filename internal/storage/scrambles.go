package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/SeamusWaldron/scrambler"
)

// ScrambleRecord represents a generated scramble in the database.
type ScrambleRecord struct {
	ScrambleID   string
	CreatedAt    time.Time
	Mode         string
	Length       int
	Seed         *int64
	ScrambleText string
	Moveset      []string
	Modifiers    []scrambler.Modifier
	Notes        *string
	SessionID    *string
}

// Config rebuilds the configuration the scramble was generated from.
func (r ScrambleRecord) Config() (scrambler.Config, error) {
	return scrambler.NewConfig(r.Length, r.Moveset, r.Modifiers)
}

// Scramble parses the stored text back into moves.
func (r ScrambleRecord) Scramble() (scrambler.Scramble, error) {
	cfg, err := r.Config()
	if err != nil {
		return nil, err
	}
	return scrambler.Parse(r.ScrambleText, cfg)
}

// NewScramble describes a scramble to be stored.
type NewScramble struct {
	Mode      string
	Config    scrambler.Config
	Scramble  scrambler.Scramble
	Seed      *int64
	Notes     string
	SessionID string
}

// ScrambleRepository provides CRUD operations for scrambles.
type ScrambleRepository struct {
	db *DB
}

// NewScrambleRepository creates a new scramble repository.
func NewScrambleRepository(db *DB) *ScrambleRepository {
	return &ScrambleRepository{db: db}
}

const insertScramble = `
	INSERT INTO scrambles (scramble_id, created_at, mode, length, seed, scramble_text, moveset, modifiers, notes, session_id)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const selectScramble = `
	SELECT scramble_id, created_at, mode, length, seed, scramble_text, moveset, modifiers, notes, session_id
	FROM scrambles
`

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func insert(e execer, s NewScramble, createdAt time.Time) (string, error) {
	moveset, err := json.Marshal(s.Config.Moveset())
	if err != nil {
		return "", fmt.Errorf("failed to marshal moveset: %w", err)
	}
	modifiers, err := json.Marshal(s.Config.Modifiers())
	if err != nil {
		return "", fmt.Errorf("failed to marshal modifiers: %w", err)
	}

	id := uuid.New().String()
	_, err = e.Exec(insertScramble,
		id, createdAt.Format(timeLayout), s.Mode, s.Config.Length(), s.Seed,
		s.Scramble.String(), string(moveset), string(modifiers),
		nullString(s.Notes), nullString(s.SessionID))
	if err != nil {
		return "", fmt.Errorf("failed to create scramble: %w", err)
	}

	return id, nil
}

// Create stores a scramble and returns its ID.
func (r *ScrambleRepository) Create(s NewScramble) (string, error) {
	return insert(r.db, s, time.Now().UTC())
}

// CreateBatch stores several scrambles in a single transaction and returns
// their IDs in order.
func (r *ScrambleRepository) CreateBatch(batch []NewScramble) ([]string, error) {
	ids := make([]string, 0, len(batch))
	err := r.db.Transaction(func(tx *sql.Tx) error {
		now := time.Now().UTC()
		for i, s := range batch {
			// Keep insertion order stable under ORDER BY created_at.
			id, err := insert(tx, s, now.Add(time.Duration(i)*time.Microsecond))
			if err != nil {
				return fmt.Errorf("scramble %d: %w", i, err)
			}
			ids = append(ids, id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// Get retrieves a scramble by ID. It returns nil if no such scramble exists.
func (r *ScrambleRepository) Get(scrambleID string) (*ScrambleRecord, error) {
	row := r.db.QueryRow(selectScramble+" WHERE scramble_id = ?", scrambleID)

	rec, err := scanScramble(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get scramble: %w", err)
	}

	return rec, nil
}

// GetLast retrieves the most recent scramble, or nil if there are none.
func (r *ScrambleRepository) GetLast() (*ScrambleRecord, error) {
	row := r.db.QueryRow(selectScramble + " ORDER BY created_at DESC, rowid DESC LIMIT 1")

	rec, err := scanScramble(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get last scramble: %w", err)
	}

	return rec, nil
}

// List retrieves recent scrambles, newest first.
func (r *ScrambleRepository) List(limit int) ([]ScrambleRecord, error) {
	return r.query(selectScramble+" ORDER BY created_at DESC, rowid DESC LIMIT ?", limit)
}

// ListByMode retrieves recent scrambles for one mode, newest first.
func (r *ScrambleRepository) ListByMode(mode string, limit int) ([]ScrambleRecord, error) {
	return r.query(selectScramble+" WHERE mode = ? ORDER BY created_at DESC, rowid DESC LIMIT ?", mode, limit)
}

// ListBySession retrieves the scrambles of a session in generation order.
func (r *ScrambleRepository) ListBySession(sessionID string) ([]ScrambleRecord, error) {
	return r.query(selectScramble+" WHERE session_id = ? ORDER BY created_at, rowid", sessionID)
}

// FindByPrefix retrieves scrambles whose ID starts with prefix.
func (r *ScrambleRepository) FindByPrefix(prefix string) ([]ScrambleRecord, error) {
	if prefix == "" {
		return nil, nil
	}
	return r.query(selectScramble+" WHERE substr(scramble_id, 1, ?) = ? ORDER BY created_at DESC, rowid DESC", len(prefix), prefix)
}

// Delete deletes a scramble.
func (r *ScrambleRepository) Delete(scrambleID string) error {
	_, err := r.db.Exec("DELETE FROM scrambles WHERE scramble_id = ?", scrambleID)
	if err != nil {
		return fmt.Errorf("failed to delete scramble: %w", err)
	}
	return nil
}

// Count returns the number of stored scrambles.
func (r *ScrambleRepository) Count() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM scrambles").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count scrambles: %w", err)
	}
	return count, nil
}

func (r *ScrambleRepository) query(q string, args ...any) ([]ScrambleRecord, error) {
	rows, err := r.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list scrambles: %w", err)
	}
	defer rows.Close()

	var records []ScrambleRecord
	for rows.Next() {
		rec, err := scanScramble(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan scramble: %w", err)
		}
		records = append(records, *rec)
	}

	return records, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanScramble(s scanner) (*ScrambleRecord, error) {
	var rec ScrambleRecord
	var createdAtStr, movesetJSON, modifiersJSON string

	err := s.Scan(
		&rec.ScrambleID, &createdAtStr, &rec.Mode, &rec.Length, &rec.Seed,
		&rec.ScrambleText, &movesetJSON, &modifiersJSON, &rec.Notes, &rec.SessionID,
	)
	if err != nil {
		return nil, err
	}

	rec.CreatedAt, _ = time.Parse(timeLayout, createdAtStr)
	if err := json.Unmarshal([]byte(movesetJSON), &rec.Moveset); err != nil {
		return nil, fmt.Errorf("failed to decode moveset: %w", err)
	}
	if err := json.Unmarshal([]byte(modifiersJSON), &rec.Modifiers); err != nil {
		return nil, fmt.Errorf("failed to decode modifiers: %w", err)
	}

	return &rec, nil
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
