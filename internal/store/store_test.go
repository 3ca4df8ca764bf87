package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yjcyxky/kid-videos-app/internal/engine"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "videos.db"), 24*time.Hour)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func video(id, title string) engine.Video {
	d := 300
	score := 0.85
	return engine.Video{
		ID:       id,
		Title:    title,
		Duration: &d,
		AIScore:  &score,
		CachedAt: engine.Now(),
	}
}

func TestBatchUpsertAndRead(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	n, err := s.BatchUpsert(ctx, []engine.Video{video("a", "A"), video("b", "B")}, "dinosaurs", "youtube", "balanced")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	videos, err := s.CachedVideos(ctx)
	require.NoError(t, err)
	require.Len(t, videos, 2)

	byID := map[string]engine.Video{}
	for _, v := range videos {
		byID[v.ID] = v
	}
	assert.Equal(t, "A", byID["a"].Title)
	require.NotNil(t, byID["a"].AIScore)
	assert.Equal(t, 0.85, *byID["a"].AIScore)

	history, err := s.History(ctx, 10)
	require.NoError(t, err)
	require.Len(t, history, 1, "one batch should append exactly one history row")
	assert.Equal(t, "dinosaurs", history[0].Query)
	assert.Equal(t, "balanced", history[0].FilterMode)
	assert.Equal(t, 2, history[0].ResultsCount)
}

func TestBatchUpsertEmptyStillRecordsHistory(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	n, err := s.BatchUpsert(ctx, nil, "nothing found", "youtube", "strict")
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	history, err := s.History(ctx, 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, 0, history[0].ResultsCount)
}

func TestBatchUpsertLastWriteWins(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.BatchUpsert(ctx, []engine.Video{video("a", "Old Title")}, "q1", "youtube", "balanced")
	require.NoError(t, err)
	_, err = s.BatchUpsert(ctx, []engine.Video{video("a", "New Title")}, "q2", "youtube", "balanced")
	require.NoError(t, err)

	videos, err := s.CachedVideos(ctx)
	require.NoError(t, err)
	require.Len(t, videos, 1, "same id must replace, not duplicate")
	assert.Equal(t, "New Title", videos[0].Title)
}

func TestBatchUpsertAtomic(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// Force the final statement of the transaction to fail.
	_, err := s.db.Exec(`DROP TABLE search_history`)
	require.NoError(t, err)

	_, err = s.BatchUpsert(ctx, []engine.Video{video("a", "A")}, "q", "youtube", "balanced")
	require.Error(t, err)

	videos, err := s.CachedVideos(ctx)
	require.NoError(t, err)
	assert.Empty(t, videos, "failed batch must roll back its cache rows")
}

func TestCachedVideosSkipsUndecodableRows(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.BatchUpsert(ctx, []engine.Video{video("good", "Good")}, "q", "youtube", "balanced")
	require.NoError(t, err)
	_, err = s.db.Exec(
		`INSERT INTO cached_videos (id, query, platform, video_data, cached_at, expires_at)
		 VALUES ('bad', 'q', 'youtube', 'not json', '2024-01-01T00:00:00Z', '2024-01-02T00:00:00Z')`)
	require.NoError(t, err)

	videos, err := s.CachedVideos(ctx)
	require.NoError(t, err)
	require.Len(t, videos, 1)
	assert.Equal(t, "good", videos[0].ID)
}

func TestDeleteVideoAndClearCache(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.BatchUpsert(ctx, []engine.Video{video("a", "A"), video("b", "B"), video("c", "C")}, "q", "youtube", "balanced")
	require.NoError(t, err)

	require.NoError(t, s.DeleteVideo(ctx, "b"))
	videos, err := s.CachedVideos(ctx)
	require.NoError(t, err)
	assert.Len(t, videos, 2)

	removed, err := s.ClearCache(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, removed)

	videos, err = s.CachedVideos(ctx)
	require.NoError(t, err)
	assert.Empty(t, videos)
}

func TestAddFavoriteSnapshotsCachedRecord(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.BatchUpsert(ctx, []engine.Video{video("a", "Counting Song")}, "q", "youtube", "balanced")
	require.NoError(t, err)
	require.NoError(t, s.AddFavorite(ctx, "a", "kid loved it"))

	// Later cache mutations must not touch the snapshot.
	_, err = s.BatchUpsert(ctx, []engine.Video{video("a", "Renamed")}, "q", "youtube", "balanced")
	require.NoError(t, err)

	favs, err := s.Favorites(ctx)
	require.NoError(t, err)
	require.Len(t, favs, 1)
	assert.Equal(t, "a", favs[0].VideoID)
	assert.Equal(t, "kid loved it", favs[0].UserNotes)
	require.NotNil(t, favs[0].Video)
	assert.Equal(t, "Counting Song", favs[0].Video.Title)
}

func TestAddFavoriteUnknownVideoPlaceholder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.AddFavorite(ctx, "never-cached", ""))

	favs, err := s.Favorites(ctx)
	require.NoError(t, err)
	require.Len(t, favs, 1)
	require.NotNil(t, favs[0].Video)
	assert.Equal(t, "never-cached", favs[0].Video.ID)
	assert.Equal(t, "Unknown Video", favs[0].Video.Title)
}

func TestAddFavoriteTwiceReplaces(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.AddFavorite(ctx, "a", "first"))
	require.NoError(t, s.AddFavorite(ctx, "a", "second"))

	favs, err := s.Favorites(ctx)
	require.NoError(t, err)
	require.Len(t, favs, 1)
	assert.Equal(t, "second", favs[0].UserNotes)
}

func TestRemoveFavorite(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.AddFavorite(ctx, "a", ""))
	favs, err := s.Favorites(ctx)
	require.NoError(t, err)
	require.Len(t, favs, 1)

	require.NoError(t, s.RemoveFavorite(ctx, favs[0].ID))
	favs, err = s.Favorites(ctx)
	require.NoError(t, err)
	assert.Empty(t, favs)
}

func TestHistoryLimit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := s.BatchUpsert(ctx, nil, "q", "youtube", "balanced")
		require.NoError(t, err)
	}

	history, err := s.History(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, history, 3)

	// Zero or negative limits fall back to the default of 20.
	history, err = s.History(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, history, 5)
}
