package videoserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/yjcyxky/kid-videos-app/internal/store"
)

// HistoryInput is the input for get_search_history.
type HistoryInput struct {
	Limit int `json:"limit,omitempty"`
}

// HistoryOutput is the output of get_search_history.
type HistoryOutput struct {
	History []store.SearchHistoryEntry `json:"history"`
	Count   int                        `json:"count"`
}

func registerGetSearchHistory(server *mcp.Server, d Deps) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_search_history",
		Description: "List recent searches with their query, platform, filter mode and result count. Newest first, default limit 20.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input HistoryInput) (*mcp.CallToolResult, HistoryOutput, error) {
		entries, err := d.Store.History(ctx, input.Limit)
		if err != nil {
			return nil, HistoryOutput{}, err
		}
		return nil, HistoryOutput{History: entries, Count: len(entries)}, nil
	})
}
