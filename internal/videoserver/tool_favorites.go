package videoserver

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/yjcyxky/kid-videos-app/internal/store"
)

// AddFavoriteInput is the input for add_favorite.
type AddFavoriteInput struct {
	VideoID   string `json:"video_id"`
	UserNotes string `json:"user_notes,omitempty"`
}

// FavoritesOutput is the output of list_favorites.
type FavoritesOutput struct {
	Favorites []store.FavoriteVideo `json:"favorites"`
	Count     int                   `json:"count"`
}

// RemoveFavoriteInput identifies one favorite row by its ID.
type RemoveFavoriteInput struct {
	ID int64 `json:"id"`
}

func registerAddFavorite(server *mcp.Server, d Deps) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_favorite",
		Description: "Mark a video as a favorite by its platform video ID, with optional notes. The cached snapshot is embedded if present; otherwise a minimal placeholder is stored. Adding the same video twice replaces the entry.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input AddFavoriteInput) (*mcp.CallToolResult, StatusOutput, error) {
		if input.VideoID == "" {
			return nil, StatusOutput{}, errors.New("video_id is required")
		}
		if err := d.Store.AddFavorite(ctx, input.VideoID, input.UserNotes); err != nil {
			return nil, StatusOutput{}, err
		}
		return nil, StatusOutput{Status: "added"}, nil
	})
}

func registerListFavorites(server *mcp.Server, d Deps) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_favorites",
		Description: "List favorite videos, newest first, with their embedded video snapshots.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, FavoritesOutput, error) {
		favs, err := d.Store.Favorites(ctx)
		if err != nil {
			return nil, FavoritesOutput{}, err
		}
		return nil, FavoritesOutput{Favorites: favs, Count: len(favs)}, nil
	})
}

func registerRemoveFavorite(server *mcp.Server, d Deps) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "remove_favorite",
		Description: "Remove a favorite by its row ID. Get IDs from list_favorites.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input RemoveFavoriteInput) (*mcp.CallToolResult, StatusOutput, error) {
		if input.ID <= 0 {
			return nil, StatusOutput{}, errors.New("id is required")
		}
		if err := d.Store.RemoveFavorite(ctx, input.ID); err != nil {
			return nil, StatusOutput{}, err
		}
		return nil, StatusOutput{Status: "removed"}, nil
	})
}
