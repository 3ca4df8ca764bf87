package engine

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Metrics tracks operational counters across the engine.
var metrics struct {
	SearchRequests  atomic.Int64
	DetailRequests  atomic.Int64
	CaptionRequests atomic.Int64
	CaptionFailures atomic.Int64
	LLMCalls        atomic.Int64
	LLMErrors       atomic.Int64
	ChunkFailures   atomic.Int64
	CacheHits       atomic.Int64
	CacheMisses     atomic.Int64
}

// Counter increment helpers for sub-packages (youtube, classify).
func IncrSearchRequest()  { metrics.SearchRequests.Add(1) }
func IncrDetailRequest()  { metrics.DetailRequests.Add(1) }
func IncrCaptionRequest() { metrics.CaptionRequests.Add(1) }
func IncrCaptionFailure() { metrics.CaptionFailures.Add(1) }
func IncrLLMCall()        { metrics.LLMCalls.Add(1) }
func IncrLLMError()       { metrics.LLMErrors.Add(1) }
func IncrChunkFailure()   { metrics.ChunkFailures.Add(1) }

// GetMetrics returns a snapshot of all counters.
func GetMetrics() map[string]int64 {
	return map[string]int64{
		"search_requests":  metrics.SearchRequests.Load(),
		"detail_requests":  metrics.DetailRequests.Load(),
		"caption_requests": metrics.CaptionRequests.Load(),
		"caption_failures": metrics.CaptionFailures.Load(),
		"llm_calls":        metrics.LLMCalls.Load(),
		"llm_errors":       metrics.LLMErrors.Load(),
		"chunk_failures":   metrics.ChunkFailures.Load(),
		"cache_hits":       metrics.CacheHits.Load(),
		"cache_misses":     metrics.CacheMisses.Load(),
	}
}

// FormatMetrics renders counters as simple text for the metrics endpoint.
func FormatMetrics() string {
	m := GetMetrics()
	keys := []string{
		"search_requests", "detail_requests", "caption_requests", "caption_failures",
		"llm_calls", "llm_errors", "chunk_failures", "cache_hits", "cache_misses",
	}
	var sb strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&sb, "%s %d\n", k, m[k])
	}
	return sb.String()
}
