// Package history persists past interactions to a local SQLite database.
//
// Persistence is a best-effort collaborator: the caller treats failures as
// warnings and never lets them change the invocation's outcome.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS interactions (
	id          TEXT PRIMARY KEY,
	provider    TEXT NOT NULL,
	prompt      TEXT NOT NULL,
	input_bytes INTEGER NOT NULL,
	reply       TEXT NOT NULL,
	created_at  TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_interactions_created_at ON interactions(created_at);
`

// Entry is one recorded provider interaction.
type Entry struct {
	ID         string
	Provider   string
	Prompt     string
	InputBytes int
	Reply      string
	CreatedAt  time.Time
}

// Store wraps the SQLite database holding past interactions.
type Store struct {
	db *sql.DB
}

// Open creates the database (and its directory) if needed and ensures the
// schema exists.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure history schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Record inserts one interaction. A zero CreatedAt is filled with now and an
// empty ID gets a fresh UUID.
func (s *Store) Record(ctx context.Context, e Entry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO interactions (id, provider, prompt, input_bytes, reply, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.Provider, e.Prompt, e.InputBytes, e.Reply, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("record interaction: %w", err)
	}
	return nil
}

// Recent returns up to limit interactions, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, provider, prompt, input_bytes, reply, created_at
		 FROM interactions ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query interactions: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Provider, &e.Prompt, &e.InputBytes, &e.Reply, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan interaction: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate interactions: %w", err)
	}
	return entries, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
