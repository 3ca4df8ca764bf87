package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/yjcyxky/kid-videos-app/internal/engine"
)

// FavoriteVideo is one favorites row with its decoded snapshot. The
// snapshot is copied at favorite-time and independent of later cache
// mutations of the same video id.
type FavoriteVideo struct {
	ID        int64         `json:"id"`
	VideoID   string        `json:"video_id"`
	UserNotes string        `json:"user_notes,omitempty"`
	CreatedAt string        `json:"created_at"`
	Video     *engine.Video `json:"video,omitempty"`
}

// AddFavorite snapshots the cached record for videoID (or a minimal
// placeholder when the cache has no entry) and replaces-or-inserts the
// favorite row. video_id is unique, so re-favoriting replaces the prior row.
func (s *Store) AddFavorite(ctx context.Context, videoID, notes string) error {
	data, err := s.cachedVideoData(ctx, videoID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		placeholder := engine.Video{
			ID:       videoID,
			Title:    "Unknown Video",
			CachedAt: engine.Now(),
		}
		b, merr := json.Marshal(&placeholder)
		if merr != nil {
			return fmt.Errorf("store: serialize placeholder: %w", merr)
		}
		data = string(b)
	case err != nil:
		return fmt.Errorf("store: fetch video data for favorite: %w", err)
	}

	createdAt := time.Now().UTC().Format(time.RFC3339)
	if _, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO favorites (video_id, user_notes, created_at, video_data)
		 VALUES (?, ?, ?, ?)`,
		videoID, notes, createdAt, data,
	); err != nil {
		return fmt.Errorf("store: add favorite %s: %w", videoID, err)
	}
	return nil
}

// Favorites lists all favorites, newest first. Snapshots that fail to
// decode leave Video nil rather than dropping the row.
func (s *Store) Favorites(ctx context.Context) ([]FavoriteVideo, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, video_id, user_notes, created_at, video_data
		 FROM favorites ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("store: load favorites: %w", err)
	}
	defer rows.Close()

	favorites := []FavoriteVideo{}
	for rows.Next() {
		var f FavoriteVideo
		var notes sql.NullString
		var data string
		if err := rows.Scan(&f.ID, &f.VideoID, &notes, &f.CreatedAt, &data); err != nil {
			continue
		}
		f.UserNotes = notes.String
		var v engine.Video
		if err := json.Unmarshal([]byte(data), &v); err == nil {
			f.Video = &v
		}
		favorites = append(favorites, f)
	}
	return favorites, rows.Err()
}

// RemoveFavorite deletes one favorites row by surrogate id.
func (s *Store) RemoveFavorite(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM favorites WHERE id = ?`, id); err != nil {
		return fmt.Errorf("store: remove favorite %d: %w", id, err)
	}
	return nil
}
