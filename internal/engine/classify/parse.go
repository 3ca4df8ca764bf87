package classify

import (
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/yjcyxky/kid-videos-app/internal/engine"
)

// acceptThreshold is the normalized score a verdict must reach to keep its
// video.
const acceptThreshold = 0.70

// Default substitutions for optional verdict fields the provider omitted.
const (
	defaultEducationalValue = 70.0
	defaultSafetyScore      = 80.0
)

// verdict is one provider-returned classification result for one video.
// Index is 1-based into the prompt's listing; scores are on the provider's
// native 0–100 scale.
type verdict struct {
	Index            int      `json:"index"`
	Score            float64  `json:"score"`
	Suitable         bool     `json:"suitable"`
	Reason           string   `json:"reason"`
	EducationalValue *float64 `json:"educational_value"`
	SafetyScore      *float64 `json:"safety_score"`
}

type verdictList struct {
	Videos []verdict `json:"videos"`
}

// stripFences removes markdown code fences from LLM output.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// parseVerdicts reconciles the provider's verdict array with the source
// chunk. A video is kept only when its verdict says suitable, its duration
// passes the gate, and its normalized score reaches the threshold; kept
// videos get all four classification fields set at once, scores normalized
// to [0,1].
//
// If raw cannot be interpreted as the expected structure at all, the whole
// unmodified chunk is returned with classification unset: fail open on
// format, fail closed on content.
func parseVerdicts(videos []engine.Video, raw string, bounds engine.DurationBounds) []engine.Video {
	var parsed verdictList
	if err := json.Unmarshal([]byte(stripFences(raw)), &parsed); err != nil || parsed.Videos == nil {
		slog.Warn("classify: unparseable verdict payload, passing chunk through unclassified",
			slog.Int("videos", len(videos)))
		out := make([]engine.Video, len(videos))
		copy(out, videos)
		return out
	}

	var result []engine.Video
	for _, vd := range parsed.Videos {
		idx := vd.Index - 1
		if idx < 0 || idx >= len(videos) {
			continue
		}
		video := videos[idx]

		durationOK := video.Duration != nil && bounds.Within(*video.Duration)
		accepted := vd.Suitable && durationOK
		score := vd.Score / 100
		if !accepted || score < acceptThreshold {
			continue
		}

		education := orDefault(vd.EducationalValue, defaultEducationalValue) / 100
		safety := orDefault(vd.SafetyScore, defaultSafetyScore) / 100

		video.AIScore = &score
		video.EducationScore = &education
		video.SafetyScore = &safety
		video.AgeAppropriate = &accepted
		result = append(result, video)
	}
	return result
}

func orDefault(p *float64, fallback float64) float64 {
	if p == nil {
		return fallback
	}
	return *p
}
