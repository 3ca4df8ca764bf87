package videoserver

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/yjcyxky/kid-videos-app/internal/engine"
)

// CachedVideosOutput is the output of get_cached_videos.
type CachedVideosOutput struct {
	Videos []engine.Video `json:"videos"`
	Count  int            `json:"count"`
}

// DeleteCachedVideoInput identifies one cached video by platform ID.
type DeleteCachedVideoInput struct {
	VideoID string `json:"video_id"`
}

// StatusOutput is a generic mutation acknowledgement.
type StatusOutput struct {
	Status string `json:"status"`
}

func registerGetCachedVideos(server *mcp.Server, d Deps) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_cached_videos",
		Description: "List all videos in the local SQLite cache, newest first. Rows with undecodable snapshots are skipped.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, CachedVideosOutput, error) {
		videos, err := d.Store.CachedVideos(ctx)
		if err != nil {
			return nil, CachedVideosOutput{}, err
		}
		return nil, CachedVideosOutput{Videos: videos, Count: len(videos)}, nil
	})
}

func registerDeleteCachedVideo(server *mcp.Server, d Deps) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_cached_video",
		Description: "Remove one video from the local cache by its platform video ID.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input DeleteCachedVideoInput) (*mcp.CallToolResult, StatusOutput, error) {
		if input.VideoID == "" {
			return nil, StatusOutput{}, errors.New("video_id is required")
		}
		if err := d.Store.DeleteVideo(ctx, input.VideoID); err != nil {
			return nil, StatusOutput{}, err
		}
		return nil, StatusOutput{Status: "deleted"}, nil
	})
}

func registerClearVideoCache(server *mcp.Server, d Deps) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "clear_video_cache",
		Description: "Delete every video from the local cache. Favorites and search history are untouched.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, StatusOutput, error) {
		removed, err := d.Store.ClearCache(ctx)
		if err != nil {
			return nil, StatusOutput{}, err
		}
		return nil, StatusOutput{Status: fmt.Sprintf("cleared %d videos", removed)}, nil
	})
}
