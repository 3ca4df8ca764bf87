package classify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/yjcyxky/kid-videos-app/internal/engine"
)

// singleMaxTokens bounds the output of a one-video analysis.
const singleMaxTokens = 500

// Analysis is the per-video verdict of the degraded individual tier.
// Scores are already normalized to 0..1.
type Analysis struct {
	EducationScore float64 `json:"education_score"`
	SafetyScore    float64 `json:"safety_score"`
	AgeAppropriate bool    `json:"age_appropriate"`
	OverallScore   float64 `json:"overall_score"`
	Reasoning      string  `json:"reasoning"`
	RecommendedAge string  `json:"recommended_age"`
}

// ClassifyOne analyzes a single video. Unlike Classify it is a 1:1 scoring
// call, not a filter: the caller decides what to do with the scores. A
// malformed provider answer degrades to neutral defaults rather than an
// error; only transport and provider failures are returned.
func (c *Classifier) ClassifyOne(ctx context.Context, v engine.Video) (*Analysis, error) {
	prompt := fmt.Sprintf(`Analyze whether this video suits children aged 3-8:

Title: %s
Description: %s
Duration: %s
Channel: %s

Return JSON only:
{
  "education_score": 0.0-1.0,
  "safety_score": 0.0-1.0,
  "age_appropriate": true/false,
  "overall_score": 0.0-1.0,
  "reasoning": "short rationale",
  "recommended_age": "e.g. 3-6"
}`,
		v.Title,
		orPlaceholder(v.Description, "no description"),
		formatDuration(v.Duration),
		orPlaceholder(v.ChannelTitle, "unknown"))

	engine.IncrLLMCall()
	raw, err := c.provider.Classify(ctx, prompt, singleMaxTokens)
	if err != nil {
		engine.IncrLLMError()
		return nil, err
	}

	var a Analysis
	if err := json.Unmarshal([]byte(stripFences(raw)), &a); err != nil {
		slog.Warn("classify: unparseable individual verdict, using defaults",
			slog.String("id", v.ID), slog.Any("error", err))
		return &Analysis{
			EducationScore: 0.7,
			SafetyScore:    0.8,
			AgeAppropriate: true,
			OverallScore:   0.75,
			Reasoning:      "automatic default after unparseable analysis",
		}, nil
	}
	return &a, nil
}
