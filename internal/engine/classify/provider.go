// Package classify judges videos for child-appropriateness through an LLM
// provider: chunked batch requests, token-budget-aware output limits, and
// structured verdict parsing back onto the source records.
package classify

import (
	"context"
	"net/http"
	"time"
)

// Provider tags. Unrecognized tags fall back to ProviderOpenAI.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// Provider is one classification backend. Both implementations reduce
// their response envelopes to a single text payload; everything upstream
// of the prompt and downstream of the text is provider-neutral.
type Provider interface {
	Name() string
	Classify(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// NewProvider selects a backend by tag.
func NewProvider(tag, apiKey string, httpClient *http.Client) Provider {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	if tag == ProviderAnthropic {
		return &anthropicProvider{apiKey: apiKey, http: httpClient, baseURL: anthropicBaseURL}
	}
	return &openaiProvider{apiKey: apiKey, http: httpClient, baseURL: openaiBaseURL}
}
