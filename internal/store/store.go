// Package store persists operator data in SQLite: user songs, manual
// verse edits, display settings, verse history and presentation/background
// metadata. Image bytes themselves live in the content-addressed blob
// store; only digests are recorded here.
//
// Two drivers are supported: the default pure Go modernc.org/sqlite, and
// mattn/go-sqlite3 when built with -tags cgo_sqlite.
package store

import (
	"database/sql"
	"fmt"
)

// Store wraps the SQLite database handle.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS songs (
	id     TEXT PRIMARY KEY,
	number INTEGER NOT NULL DEFAULT 0,
	title  TEXT NOT NULL,
	text   TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS edits (
	key  TEXT PRIMARY KEY,
	text TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS settings (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS history (
	position    INTEGER PRIMARY KEY,
	reference   TEXT NOT NULL,
	translation TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS presentations (
	id         TEXT PRIMARY KEY,
	title      TEXT NOT NULL,
	created_at TEXT NOT NULL,
	deleted    INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS presentation_slides (
	presentation_id TEXT NOT NULL REFERENCES presentations(id) ON DELETE CASCADE,
	position        INTEGER NOT NULL,
	digest          TEXT NOT NULL,
	PRIMARY KEY (presentation_id, position)
);

CREATE TABLE IF NOT EXISTS backgrounds (
	id         TEXT PRIMARY KEY,
	title      TEXT NOT NULL,
	digest     TEXT NOT NULL,
	created_at TEXT NOT NULL,
	deleted    INTEGER NOT NULL DEFAULT 0
);
`

// Open opens (or creates) the database at path and applies the schema.
// Use ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", path, err)
	}

	// The drivers differ in concurrency behavior; a single connection
	// sidesteps SQLITE_BUSY for this write-light workload.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
