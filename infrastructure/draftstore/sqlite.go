// Package draftstore persists not-yet-submitted recipe drafts in a local
// SQLite database, one row per author holding the whole draft list. The list
// is always read and rewritten as a unit, matching how the workflow mutates
// it.
package draftstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"cookbook/domain/recipe"
	pkgerrors "cookbook/pkg/errors"
)

// Store is a SQLite-backed draft store keyed by author alias.
type Store struct {
	db *sql.DB
}

// New opens (or creates) the database at path, ensures the data directory
// exists, and runs schema migrations.
func New(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, pkgerrors.NewDraftPersistenceError("open", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, pkgerrors.NewDraftPersistenceError("open", err)
	}
	// WAL keeps reads cheap while the CLI writes; the busy timeout makes
	// writers wait instead of failing with SQLITE_BUSY.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		db.Close()
		return nil, pkgerrors.NewDraftPersistenceError("open", err)
	}
	db.SetMaxOpenConns(2)
	db.SetMaxIdleConns(2)

	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS drafts (
    author TEXT PRIMARY KEY,
    payload TEXT NOT NULL,
    updated_at TEXT NOT NULL
);
`)
	if err != nil {
		return pkgerrors.NewDraftPersistenceError("migrate", err)
	}
	return nil
}

// Get returns the author's stored drafts in stored order. An author with no
// row has an empty list.
func (s *Store) Get(ctx context.Context, author string) ([]recipe.Draft, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM drafts WHERE author = ?`, author,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return []recipe.Draft{}, nil
	}
	if err != nil {
		return nil, pkgerrors.NewDraftPersistenceError("read", err)
	}

	var drafts []recipe.Draft
	if err := json.Unmarshal([]byte(payload), &drafts); err != nil {
		return nil, pkgerrors.NewDraftPersistenceError("decode", err)
	}
	if drafts == nil {
		drafts = []recipe.Draft{}
	}
	return drafts, nil
}

// Set replaces the author's stored draft list as a whole.
func (s *Store) Set(ctx context.Context, author string, drafts []recipe.Draft) error {
	if drafts == nil {
		drafts = []recipe.Draft{}
	}
	payload, err := json.Marshal(drafts)
	if err != nil {
		return pkgerrors.NewDraftPersistenceError("encode", err)
	}

	_, err = s.db.ExecContext(ctx, `
INSERT INTO drafts (author, payload, updated_at) VALUES (?, ?, ?)
ON CONFLICT(author) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at
`, author, string(payload), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return pkgerrors.NewDraftPersistenceError("write", err)
	}
	return nil
}
