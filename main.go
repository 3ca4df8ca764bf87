// kid-videos — kid-friendly video search MCP server.
//
// Searches YouTube, scores results with an AI suitability classifier,
// filters by mode (strict / balanced / educational) and persists results
// to a local SQLite store with favorites and search history.
// Runs as HTTP MCP server or stdio transport.
package main

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	"github.com/anatolykoptev/go-mcpserver"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/yjcyxky/kid-videos-app/internal/engine"
	"github.com/yjcyxky/kid-videos-app/internal/engine/classify"
	"github.com/yjcyxky/kid-videos-app/internal/engine/youtube"
	"github.com/yjcyxky/kid-videos-app/internal/pipeline"
	"github.com/yjcyxky/kid-videos-app/internal/store"
	"github.com/yjcyxky/kid-videos-app/internal/videoserver"
)

var (
	version = "dev"
	mcpPort = env.Str("MCP_PORT", "8893")
)

func main() {
	cfg := engine.Config{
		YouTubeAPIKey:        env.Str("YOUTUBE_API_KEY", ""),
		OpenAIAPIKey:         env.Str("OPENAI_API_KEY", ""),
		AnthropicAPIKey:      env.Str("ANTHROPIC_API_KEY", ""),
		AIProvider:           env.Str("AI_PROVIDER", "openai"),
		FilterPrompt:         env.Str("FILTER_PROMPT", ""),
		DefaultResults:       env.Int("DEFAULT_RESULTS", 10),
		MinDurationMinutes:   env.Int("MIN_DURATION_MINUTES", 2),
		MaxDurationMinutes:   env.Int("MAX_DURATION_MINUTES", 30),
		CaptionLangPrimary:   env.Str("CAPTION_LANG_PRIMARY", "en"),
		CaptionLangSecondary: env.Str("CAPTION_LANG_SECONDARY", "zh"),
		CacheTTL:             env.Duration("CACHE_TTL", 24*time.Hour),
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     60 * time.Second,
			},
		},
	}

	db, err := store.Open(env.Str("DB_PATH", defaultDBPath()), cfg.CacheTTL)
	if err != nil {
		slog.Error("store init failed", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	yt := youtube.NewClient(youtube.Config{
		APIKey:        cfg.YouTubeAPIKey,
		HTTPClient:    cfg.HTTPClient,
		LangPrimary:   cfg.CaptionLangPrimary,
		LangSecondary: cfg.CaptionLangSecondary,
	})
	cls := classify.New(cfg.AIProvider, cfg.AIAPIKey(), cfg.FilterPrompt, nil)

	cache := engine.NewCache(
		env.Str("REDIS_URL", ""),
		env.Duration("RESULT_CACHE_TTL", 15*time.Minute),
		env.Int("CACHE_MAX_ENTRIES", 1000),
		env.Duration("CACHE_CLEANUP_INTERVAL", 300*time.Second),
	)

	slog.Info("starting kid-videos",
		slog.String("port", mcpPort),
		slog.String("ai_provider", cfg.AIProvider),
		slog.Bool("youtube_key", cfg.YouTubeAPIKey != ""),
		slog.Bool("ai_key", cfg.AIAPIKey() != ""),
	)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "kid-videos",
		Version: version,
	}, nil)

	videoserver.RegisterTools(server, videoserver.Deps{
		Pipeline: pipeline.New(cfg, yt, cls, db),
		Store:    db,
		Cache:    cache,
	})
	slog.Info("tools registered", slog.Int("count", 9))

	if err := mcpserver.Run(server, mcpserver.Config{
		Name:         "kid-videos",
		Version:      version,
		Port:         mcpPort,
		WriteTimeout: 600 * time.Second,
		Metrics:      engine.FormatMetrics,
	}); err != nil {
		slog.Error("server failed", slog.Any("error", err))
	}
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "videos.db"
	}
	return filepath.Join(home, ".kid-videos", "videos.db")
}
