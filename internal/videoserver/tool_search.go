package videoserver

import (
	"context"
	"fmt"
	"strconv"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/yjcyxky/kid-videos-app/internal/engine"
	"github.com/yjcyxky/kid-videos-app/internal/toolutil"
)

// searchVideosTool carries no read-only hint: every successful search
// writes cache rows and a history row to SQLite.
var searchVideosTool = &mcp.Tool{
	Name:        "search_videos",
	Description: "Search YouTube for kid-friendly videos, score them with an AI classifier and return the filtered, ranked results. Caches results locally and records the search in history. Filter modes: strict, balanced (default), educational. Set skip_ai_analysis to return raw search results without scoring.",
}

func registerSearchVideos(server *mcp.Server, d Deps) {
	mcp.AddTool(server, searchVideosTool, func(ctx context.Context, _ *mcp.CallToolRequest, input engine.SearchRequest) (*mcp.CallToolResult, engine.SearchResponse, error) {
		if input.Query == "" {
			return nil, engine.SearchResponse{}, fmt.Errorf("query is required")
		}
		input.FilterMode = toolutil.NormMode(input.FilterMode)

		cacheKey := engine.CacheKey("search_videos",
			input.Query,
			input.Platform,
			input.FilterMode,
			strconv.Itoa(input.MaxResults),
			strconv.FormatBool(input.SkipAnalysis),
		)
		if out, ok := toolutil.CacheLoadJSON[engine.SearchResponse](ctx, d.Cache, cacheKey); ok {
			return nil, out, nil
		}

		out, err := d.Pipeline.SearchVideos(ctx, input)
		if err != nil {
			return nil, engine.SearchResponse{}, err
		}

		toolutil.CacheStoreJSON(ctx, d.Cache, cacheKey, out)
		return nil, out, nil
	})
}
