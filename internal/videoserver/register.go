// Package videoserver exposes the kid-videos pipeline and store as MCP tools.
package videoserver

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/yjcyxky/kid-videos-app/internal/engine"
	"github.com/yjcyxky/kid-videos-app/internal/pipeline"
	"github.com/yjcyxky/kid-videos-app/internal/store"
)

// Deps holds everything the tools need. Passed explicitly at registration,
// never read from package globals.
type Deps struct {
	Pipeline *pipeline.Pipeline
	Store    *store.Store
	Cache    *engine.Cache
}

// RegisterTools registers all kid-videos tools on the given MCP server:
// search_videos, analyze_videos_batch, cached-video management, favorites
// and search history.
func RegisterTools(server *mcp.Server, d Deps) {
	registerSearchVideos(server, d)
	registerAnalyzeVideosBatch(server, d)
	registerGetCachedVideos(server, d)
	registerDeleteCachedVideo(server, d)
	registerClearVideoCache(server, d)
	registerAddFavorite(server, d)
	registerListFavorites(server, d)
	registerRemoveFavorite(server, d)
	registerGetSearchHistory(server, d)
}
