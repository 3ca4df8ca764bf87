package videoserver

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/yjcyxky/kid-videos-app/internal/engine"
)

// AnalyzeBatchInput is the input for analyze_videos_batch.
type AnalyzeBatchInput struct {
	Videos             []engine.Video `json:"videos"`
	MinDurationMinutes int            `json:"min_duration_minutes,omitempty"`
	MaxDurationMinutes int            `json:"max_duration_minutes,omitempty"`
}

// AnalyzeBatchOutput is the output of analyze_videos_batch.
type AnalyzeBatchOutput struct {
	Videos   []engine.Video `json:"videos"`
	Analyzed int            `json:"analyzed"`
	Kept     int            `json:"kept"`
}

func registerAnalyzeVideosBatch(server *mcp.Server, d Deps) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "analyze_videos_batch",
		Description: "Run the AI suitability classifier over an explicit list of videos, outside the search flow. Returns only the videos judged suitable, with normalized ai_score, education_score and safety_score. Duration bounds default to 2-30 minutes.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input AnalyzeBatchInput) (*mcp.CallToolResult, AnalyzeBatchOutput, error) {
		if len(input.Videos) == 0 {
			return nil, AnalyzeBatchOutput{}, errors.New("videos are required")
		}

		bounds := engine.BoundsFromMinutes(input.MinDurationMinutes, input.MaxDurationMinutes)
		out, err := d.Pipeline.AnalyzeBatch(ctx, input.Videos, bounds)
		if err != nil {
			return nil, AnalyzeBatchOutput{}, err
		}
		return nil, AnalyzeBatchOutput{
			Videos:   out,
			Analyzed: len(input.Videos),
			Kept:     len(out),
		}, nil
	})
}
