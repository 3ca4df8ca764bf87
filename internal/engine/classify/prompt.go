package classify

import (
	"fmt"
	"strings"

	"github.com/yjcyxky/kid-videos-app/internal/engine"
)

// defaultPrompt is the classification instruction used when no override is
// configured.
const defaultPrompt = `Assess the following children's videos for suitability. Criteria:
1. Educational value: supports learning of cognition, language, math, science
2. Content safety: no violence, horror or inappropriate content
3. Age fit: matches preschool cognitive level
4. Production quality: clear picture, clear audio, well made

Overall score:
- If the duration is out of range, cap the overall score at min(computed score, 60).
- Otherwise average the criteria into the overall score.`

// outputFormat pins the verdict JSON the parser expects.
const outputFormat = `Output requirements:
- Return JSON only
- Include only videos with score >= 70 AND an acceptable duration
- Fields:
{
  "videos": [
    {
      "index": 1,
      "score": 0-100,
      "suitable": true/false,
      "reason": "scoring rationale",
      "educational_value": 0-100,
      "safety_score": 0-100
    }
  ]
}`

// buildPrompt enumerates every video with a stable field count. Missing
// fields get explicit placeholders, never omitted: the prompt is positional
// and the verdict indices are 1-based into this listing.
func buildPrompt(videos []engine.Video, override string) string {
	instruction := override
	if instruction == "" {
		instruction = defaultPrompt
	}

	blocks := make([]string, len(videos))
	for i, v := range videos {
		blocks[i] = fmt.Sprintf(
			"Video %d:\nTitle: %s\nDuration: %s (%d seconds)\nDescription: %s\nLikes: %d\nViews: %d\nPublished: %s\nChannel: %s\nCaptions: %s",
			i+1,
			v.Title,
			formatDuration(v.Duration),
			derefInt(v.Duration),
			orPlaceholder(v.Description, "no description"),
			derefInt64(v.LikeCount),
			derefInt64(v.ViewCount),
			orPlaceholder(v.PublishedAt, "unknown"),
			orPlaceholder(v.ChannelTitle, "unknown"),
			orPlaceholder(v.Subtitles, "no caption information"),
		)
	}

	return fmt.Sprintf("%s\n\n%s\n\nAssess the following %d videos:\n\n%s",
		instruction, outputFormat, len(videos), strings.Join(blocks, "\n\n"))
}

func formatDuration(d *int) string {
	if d == nil {
		return "unknown"
	}
	return engine.FormatDuration(*d)
}

func orPlaceholder(s, placeholder string) string {
	if s == "" {
		return placeholder
	}
	return s
}

func derefInt(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

func derefInt64(p *int64) int64 {
	if p == nil {
		return 0
	}
	return *p
}
