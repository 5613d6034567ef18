package snapshot

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/St3r30X/any-bot/grid"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS snapshot (
	id         INTEGER PRIMARY KEY CHECK (id = 1),
	body       TEXT NOT NULL,
	updated_at INTEGER NOT NULL
);`

// SQLite stores the snapshot as a single-row table. It exists for
// deployments that already ship a database file and prefer one artifact
// over loose JSON on disk.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) a SQLite-backed store at path with the
// production pragmas applied. The caller must import a driver registering
// the "sqlite" name, e.g. modernc.org/sqlite.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("snapshot: open %s: %w", path, err)
	}

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 10000",
		"PRAGMA synchronous = NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("snapshot: %s: %w", pragma, err)
		}
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("snapshot: create schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

// NewSQLite wraps an existing database handle. The schema is created if
// missing.
func NewSQLite(db *sql.DB) (*SQLite, error) {
	if _, err := db.Exec(sqliteSchema); err != nil {
		return nil, fmt.Errorf("snapshot: create schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) Load(ctx context.Context) (grid.Grid, error) {
	var body string
	err := s.db.QueryRowContext(ctx, "SELECT body FROM snapshot WHERE id = 1").Scan(&body)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("snapshot: load: %w", err)
	}

	var g grid.Grid
	if err := json.Unmarshal([]byte(body), &g); err != nil {
		return nil, fmt.Errorf("snapshot: decode: %w", err)
	}
	return g, nil
}

func (s *SQLite) Replace(ctx context.Context, g grid.Grid) error {
	body, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("snapshot: encode: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO snapshot (id, body, updated_at) VALUES (1, ?, ?)
		ON CONFLICT (id) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at`,
		string(body), time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("snapshot: replace: %w", err)
	}
	return nil
}

// Close releases the underlying database handle.
func (s *SQLite) Close() error { return s.db.Close() }
