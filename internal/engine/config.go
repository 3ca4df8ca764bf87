package engine

import (
	"net/http"
	"time"
)

// Config holds pipeline configuration, built once in main and passed by
// value into constructors. Stages never read ambient state, so a settings
// change can never produce a mixed-configuration run.
type Config struct {
	YouTubeAPIKey   string
	OpenAIAPIKey    string
	AnthropicAPIKey string
	AIProvider      string // "openai" or "anthropic"
	FilterPrompt    string // "" = provider default
	DefaultResults  int    // per-search result count when the request omits one

	MinDurationMinutes int
	MaxDurationMinutes int

	CaptionLangPrimary   string
	CaptionLangSecondary string

	CacheTTL   time.Duration // expires_at lifetime for persisted rows
	HTTPClient *http.Client
}

// AIAPIKey returns the credential for the configured provider.
// Unrecognized provider tags default to OpenAI, matching the classifier.
func (c *Config) AIAPIKey() string {
	if c.AIProvider == "anthropic" {
		return c.AnthropicAPIKey
	}
	return c.OpenAIAPIKey
}

// Bounds returns the configured duration gate.
func (c *Config) Bounds() DurationBounds {
	return BoundsFromMinutes(c.MinDurationMinutes, c.MaxDurationMinutes)
}
