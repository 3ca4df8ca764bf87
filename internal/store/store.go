// Package store persists classified videos, favorites and search history in
// SQLite. Batch writes are transactional; reads degrade gracefully by
// skipping rows that no longer decode.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// maxConns bounds the connection pool.
const maxConns = 5

// schema creates all tables and secondary indexes. Idempotent.
const schema = `
CREATE TABLE IF NOT EXISTS cached_videos (
	id         TEXT PRIMARY KEY,
	query      TEXT NOT NULL,
	platform   TEXT NOT NULL,
	video_data TEXT NOT NULL,
	cached_at  TEXT NOT NULL,
	expires_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS favorites (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	video_id   TEXT NOT NULL UNIQUE,
	user_notes TEXT,
	created_at TEXT NOT NULL,
	video_data TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS search_history (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	query         TEXT NOT NULL,
	platform      TEXT NOT NULL,
	filter_mode   TEXT NOT NULL,
	results_count INTEGER NOT NULL,
	created_at    TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_cached_videos_query ON cached_videos(query, platform);
CREATE INDEX IF NOT EXISTS idx_cached_videos_expires ON cached_videos(expires_at);
CREATE INDEX IF NOT EXISTS idx_search_history_date ON search_history(created_at);
CREATE INDEX IF NOT EXISTS idx_favorites_created ON favorites(created_at);
`

// Store wraps the SQLite database.
type Store struct {
	db  *sql.DB
	ttl time.Duration // cache row lifetime written into expires_at
}

// Open creates the database file (and its directory) if needed, applies the
// schema, and returns a store whose cache rows expire after ttl.
// Expiry is a field consulted by readers; nothing sweeps rows.
func Open(path string, ttl time.Duration) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("store: mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open db: %w", err)
	}
	db.SetMaxOpenConns(maxConns)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: init schema: %w", err)
	}
	return &Store{db: db, ttl: ttl}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
