package classify

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/yjcyxky/kid-videos-app/internal/engine"
)

// chunkSize caps videos per provider request to stay under token limits.
const chunkSize = 5

// tokenBase and tokenPerVideo size the requested output budget; tokenCap is
// the provider-safe ceiling.
const (
	tokenBase     = 500
	tokenPerVideo = 300
	tokenCap      = 8000
)

// RequiredTokens computes the output budget for a chunk of n videos:
// min(500 + 300n, 8000), headroom for per-video structured verdicts.
func RequiredTokens(n int) int {
	return min(tokenBase+tokenPerVideo*n, tokenCap)
}

// Classifier filters videos through one classification backend.
type Classifier struct {
	provider Provider
	prompt   string // override, "" = defaultPrompt
}

// New builds a classifier for the given provider tag and credential.
func New(providerTag, apiKey, promptOverride string, httpClient *http.Client) *Classifier {
	return &Classifier{
		provider: NewProvider(providerTag, apiKey, httpClient),
		prompt:   promptOverride,
	}
}

// Classify returns the subset of videos judged suitable — a filter, not a
// 1:1 map. Inputs beyond chunkSize are split into successive chunks
// classified independently and sequentially; a failed chunk is logged and
// contributes nothing while its siblings proceed. There is no retry at this
// layer. An error is returned only when every chunk failed, so callers can
// tell total provider outage apart from partial results.
func (c *Classifier) Classify(ctx context.Context, videos []engine.Video, bounds engine.DurationBounds) ([]engine.Video, error) {
	if len(videos) == 0 {
		return []engine.Video{}, nil
	}

	var (
		results []engine.Video
		chunks  int
		failed  int
		lastErr error
	)
	for start := 0; start < len(videos); start += chunkSize {
		chunks++
		chunk := videos[start:min(start+chunkSize, len(videos))]
		out, err := c.classifyChunk(ctx, chunk, bounds)
		if err != nil {
			engine.IncrChunkFailure()
			slog.Warn("classify: chunk failed",
				slog.String("provider", c.provider.Name()),
				slog.Int("offset", start),
				slog.Int("size", len(chunk)),
				slog.Any("error", err))
			failed++
			lastErr = err
			continue
		}
		results = append(results, out...)
	}
	if failed == chunks {
		return nil, fmt.Errorf("all %d chunks failed: %w", chunks, lastErr)
	}
	if results == nil {
		results = []engine.Video{}
	}
	return results, nil
}

// classifyChunk sends one structured request for the chunk and parses the
// verdicts back onto the source records.
func (c *Classifier) classifyChunk(ctx context.Context, chunk []engine.Video, bounds engine.DurationBounds) ([]engine.Video, error) {
	prompt := buildPrompt(chunk, c.prompt)

	engine.IncrLLMCall()
	raw, err := c.provider.Classify(ctx, prompt, RequiredTokens(len(chunk)))
	if err != nil {
		engine.IncrLLMError()
		return nil, err
	}
	return parseVerdicts(chunk, raw, bounds), nil
}
