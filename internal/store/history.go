package store

import (
	"context"
	"fmt"
)

// SearchHistoryEntry is one append-only audit row. Entries are never
// updated or deleted individually.
type SearchHistoryEntry struct {
	ID           int64  `json:"id"`
	Query        string `json:"query"`
	Platform     string `json:"platform"`
	FilterMode   string `json:"filter_mode"`
	ResultsCount int    `json:"results_count"`
	CreatedAt    string `json:"created_at"`
}

// History returns the most recent history entries, newest first.
func (s *Store) History(ctx context.Context, limit int) ([]SearchHistoryEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, query, platform, filter_mode, results_count, created_at
		 FROM search_history ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("store: load search history: %w", err)
	}
	defer rows.Close()

	entries := []SearchHistoryEntry{}
	for rows.Next() {
		var e SearchHistoryEntry
		if err := rows.Scan(&e.ID, &e.Query, &e.Platform, &e.FilterMode, &e.ResultsCount, &e.CreatedAt); err != nil {
			continue
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
