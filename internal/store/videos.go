package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/yjcyxky/kid-videos-app/internal/engine"
)

// BatchUpsert replaces-or-inserts each video's cache row and appends exactly
// one search-history row summarizing the batch, all inside one transaction.
// Either every row lands or none do. Returns the number of videos written.
func (s *Store) BatchUpsert(ctx context.Context, videos []engine.Video, query, platform, filterMode string) (int, error) {
	now := time.Now().UTC()
	cachedAt := now.Format(time.RFC3339)
	expiresAt := now.Add(s.ttl).Format(time.RFC3339)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("store: begin batch upsert: %w", err)
	}
	defer tx.Rollback()

	for i := range videos {
		data, err := json.Marshal(&videos[i])
		if err != nil {
			return 0, fmt.Errorf("store: serialize video %s: %w", videos[i].ID, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO cached_videos (id, query, platform, video_data, cached_at, expires_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			videos[i].ID, query, platform, string(data), cachedAt, expiresAt,
		); err != nil {
			return 0, fmt.Errorf("store: upsert video %s: %w", videos[i].ID, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO search_history (query, platform, filter_mode, results_count, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		query, platform, filterMode, len(videos), cachedAt,
	); err != nil {
		return 0, fmt.Errorf("store: append search history: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("store: commit batch upsert: %w", err)
	}
	return len(videos), nil
}

// CachedVideos returns every cached record, newest first. Rows that fail to
// decode are skipped, not fatal.
func (s *Store) CachedVideos(ctx context.Context) ([]engine.Video, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT video_data FROM cached_videos ORDER BY cached_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("store: load cached videos: %w", err)
	}
	defer rows.Close()

	videos := []engine.Video{}
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			continue
		}
		var v engine.Video
		if err := json.Unmarshal([]byte(data), &v); err != nil {
			slog.Debug("store: skipping undecodable cache row", slog.Any("error", err))
			continue
		}
		videos = append(videos, v)
	}
	return videos, rows.Err()
}

// cachedVideoData returns the serialized blob for one id, or sql.ErrNoRows.
func (s *Store) cachedVideoData(ctx context.Context, id string) (string, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT video_data FROM cached_videos WHERE id = ?`, id).Scan(&data)
	return data, err
}

// DeleteVideo removes one cache row.
func (s *Store) DeleteVideo(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM cached_videos WHERE id = ?`, id); err != nil {
		return fmt.Errorf("store: delete video %s: %w", id, err)
	}
	return nil
}

// ClearCache removes all cache rows and returns how many were removed.
func (s *Store) ClearCache(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM cached_videos`)
	if err != nil {
		return 0, fmt.Errorf("store: clear cache: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
