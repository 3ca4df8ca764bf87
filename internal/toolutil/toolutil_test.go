package toolutil

import (
	"context"
	"testing"
	"time"

	"github.com/yjcyxky/kid-videos-app/internal/engine"
)

type payload struct {
	Query string `json:"query"`
	Count int    `json:"count"`
}

func TestCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := engine.NewCache("", time.Minute, 100, 0)
	key := engine.CacheKey("test", "round-trip")

	if _, ok := CacheLoadJSON[payload](ctx, c, key); ok {
		t.Fatal("expected miss on fresh cache")
	}

	CacheStoreJSON(ctx, c, key, payload{Query: "trains", Count: 3})
	got, ok := CacheLoadJSON[payload](ctx, c, key)
	if !ok {
		t.Fatal("expected hit after store")
	}
	if got.Query != "trains" || got.Count != 3 {
		t.Errorf("got %+v", got)
	}
}

func TestCacheLoadJSONDecodeMiss(t *testing.T) {
	ctx := context.Background()
	c := engine.NewCache("", time.Minute, 100, 0)
	key := engine.CacheKey("test", "bad-json")
	c.Set(ctx, key, []byte("not json"))

	if _, ok := CacheLoadJSON[payload](ctx, c, key); ok {
		t.Error("undecodable entries should read as misses")
	}
}

func TestNormMode(t *testing.T) {
	if got := NormMode(""); got != engine.ModeBalanced {
		t.Errorf("NormMode(\"\") = %q", got)
	}
	if got := NormMode("strict"); got != "strict" {
		t.Errorf("NormMode(strict) = %q", got)
	}
}
