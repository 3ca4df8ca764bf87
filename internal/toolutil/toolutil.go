// Package toolutil provides shared helpers for kid-videos MCP tools.
package toolutil

import (
	"context"
	"encoding/json"

	"github.com/yjcyxky/kid-videos-app/internal/engine"
)

// NormMode normalises a filter mode field: empty string → "balanced".
func NormMode(mode string) string {
	if mode == "" {
		return engine.ModeBalanced
	}
	return mode
}

// CacheLoadJSON tries to load a cached value of type T from the cache.
// Returns the decoded value and true on hit; zero value and false on miss
// or decode error.
func CacheLoadJSON[T any](ctx context.Context, c *engine.Cache, key string) (T, bool) {
	data, ok := c.Get(ctx, key)
	if !ok {
		var zero T
		return zero, false
	}
	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		var zero T
		return zero, false
	}
	return out, true
}

// CacheStoreJSON marshals v and stores it in the cache.
func CacheStoreJSON[T any](ctx context.Context, c *engine.Cache, key string, v T) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	c.Set(ctx, key, data)
}
