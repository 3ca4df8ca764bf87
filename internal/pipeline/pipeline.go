// Package pipeline runs one discovery → enrichment → classification →
// filtering → persistence pass and hands back the ranked result.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/yjcyxky/kid-videos-app/internal/engine"
	"github.com/yjcyxky/kid-videos-app/internal/engine/classify"
)

// Searcher discovers and enriches videos for a query.
type Searcher interface {
	Search(ctx context.Context, query string, maxResults int) ([]engine.Video, error)
}

// Classifier judges batches and, as the degraded tier, single videos.
type Classifier interface {
	Classify(ctx context.Context, videos []engine.Video, bounds engine.DurationBounds) ([]engine.Video, error)
	ClassifyOne(ctx context.Context, video engine.Video) (*classify.Analysis, error)
}

// Store persists a classified batch transactionally.
type Store interface {
	BatchUpsert(ctx context.Context, videos []engine.Video, query, platform, filterMode string) (int, error)
}

// Pipeline wires the stages together. Configuration is captured at
// construction and passed along by value; no stage reads ambient state.
type Pipeline struct {
	cfg        engine.Config
	search     Searcher
	classifier Classifier
	store      Store
}

// New builds a pipeline from its stages.
func New(cfg engine.Config, search Searcher, classifier Classifier, store Store) *Pipeline {
	return &Pipeline{cfg: cfg, search: search, classifier: classifier, store: store}
}

// SearchVideos runs the full pipeline for one request. Without a search
// credential, or when the provider fails after its retry budget, it
// degrades to a labeled placeholder result rather than an error.
// Persistence failures are surfaced verbatim.
func (p *Pipeline) SearchVideos(ctx context.Context, req engine.SearchRequest) (engine.SearchResponse, error) {
	if p.cfg.YouTubeAPIKey == "" {
		slog.Warn("search: no provider credential configured, returning placeholder")
		return placeholderResponse(req.Query), nil
	}

	maxResults := req.MaxResults
	if maxResults <= 0 {
		maxResults = p.cfg.DefaultResults
	}
	platform := req.Platform
	if platform == "" {
		platform = "youtube"
	}
	mode := req.FilterMode
	if mode == "" {
		mode = engine.ModeBalanced
	}

	start := time.Now()
	videos, err := p.search.Search(ctx, req.Query, maxResults)
	if err != nil {
		slog.Warn("search: provider failed after retries, returning placeholder",
			slog.String("query", req.Query), slog.Any("error", err))
		return placeholderResponse(req.Query), nil
	}
	searchTime := time.Since(start).Seconds()

	if req.SkipAnalysis {
		slog.Info("search: skipping AI analysis", slog.String("query", req.Query), slog.Int("found", len(videos)))
		if _, err := p.store.BatchUpsert(ctx, videos, req.Query, platform, mode); err != nil {
			return engine.SearchResponse{}, err
		}
		return engine.SearchResponse{
			Videos:     videos,
			TotalFound: len(videos),
			SearchTime: searchTime,
		}, nil
	}

	aiStart := time.Now()
	if p.cfg.AIAPIKey() != "" && len(videos) > 0 {
		videos = p.classifyVideos(ctx, videos)
	}
	videos = engine.FilterVideos(videos, mode)
	analysisTime := time.Since(aiStart).Seconds()

	if _, err := p.store.BatchUpsert(ctx, videos, req.Query, platform, mode); err != nil {
		return engine.SearchResponse{}, err
	}

	slog.Info("search: done",
		slog.String("query", req.Query),
		slog.Int("results", len(videos)),
		slog.Float64("search_time", searchTime),
		slog.Float64("ai_time", analysisTime))

	return engine.SearchResponse{
		Videos:       videos,
		TotalFound:   len(videos),
		SearchTime:   searchTime,
		AnalysisTime: analysisTime,
	}, nil
}

// classifyVideos tries the batch classifier first. Only when every chunk
// fails does it degrade to per-video analysis, which scores videos in
// place without filtering them.
func (p *Pipeline) classifyVideos(ctx context.Context, videos []engine.Video) []engine.Video {
	bounds := p.cfg.Bounds()

	classified, err := p.classifier.Classify(ctx, videos, bounds)
	if err == nil {
		return classified
	}
	slog.Warn("classify: batch analysis failed, degrading to individual analysis", slog.Any("error", err))

	var wg sync.WaitGroup
	analyses := make([]*classify.Analysis, len(videos))
	for i := range videos {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			a, err := p.classifier.ClassifyOne(ctx, videos[idx])
			if err != nil {
				slog.Debug("classify: individual analysis failed",
					slog.String("id", videos[idx].ID), slog.Any("error", err))
				return
			}
			analyses[idx] = a
		}(i)
	}
	wg.Wait()

	for i, a := range analyses {
		if a == nil {
			continue
		}
		videos[i].AIScore = &a.OverallScore
		videos[i].EducationScore = &a.EducationScore
		videos[i].SafetyScore = &a.SafetyScore
		videos[i].AgeAppropriate = &a.AgeAppropriate
	}
	return videos
}

// AnalyzeBatch classifies an explicit batch outside the search flow.
func (p *Pipeline) AnalyzeBatch(ctx context.Context, videos []engine.Video, bounds engine.DurationBounds) ([]engine.Video, error) {
	if p.cfg.AIAPIKey() == "" {
		return nil, fmt.Errorf("analyze: no AI provider credential configured")
	}
	return p.classifier.Classify(ctx, videos, bounds)
}

// placeholderResponse is the degraded no-credential result: one synthetic,
// clearly labeled record.
func placeholderResponse(query string) engine.SearchResponse {
	zero := 0
	var zero64 int64
	v := engine.Video{
		ID:           fmt.Sprintf("fallback_%d", time.Now().Unix()),
		Title:        fmt.Sprintf("Configure a YouTube API key to search: %s", query),
		Description:  "Set a YouTube Data API key in the environment to enable real search.",
		ChannelTitle: "System",
		Duration:     &zero,
		ViewCount:    &zero64,
		LikeCount:    &zero64,
		PublishedAt:  engine.Now(),
		ThumbnailURL: "https://via.placeholder.com/320x180/f5f5f5/666666?text=API+KEY+REQUIRED",
		CachedAt:     engine.Now(),
	}
	return engine.SearchResponse{Videos: []engine.Video{v}, TotalFound: 1}
}
