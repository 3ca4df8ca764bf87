package youtube

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func captionServer(t *testing.T, items []map[string]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/captions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		wrapped := make([]map[string]any, len(items))
		for i, snippet := range items {
			wrapped[i] = map[string]any{"snippet": snippet}
		}
		json.NewEncoder(w).Encode(map[string]any{"items": wrapped})
	}))
}

func TestVideoCaptionsLanguageFilter(t *testing.T) {
	srv := captionServer(t, []map[string]string{
		{"language": "en", "name": "English", "trackKind": "standard"},
		{"language": "en-US", "name": "English (US)", "trackKind": "asr"},
		{"language": "zh-Hans", "name": "Chinese", "trackKind": "standard"},
		{"language": "und", "name": "Unknown", "trackKind": "standard"},
		{"language": "fr", "name": "French", "trackKind": "standard"},
	})
	defer srv.Close()

	c := NewClient(Config{APIKey: "k", BaseURL: srv.URL, HTTPClient: srv.Client()})
	got, err := c.videoCaptions(context.Background(), "abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "Available captions: [en] English (manual), [en-US] English (US) (auto-generated), [zh-Hans] Chinese (manual), [und] Unknown (manual)"
	if got != want {
		t.Errorf("got %q\nwant %q", got, want)
	}
}

func TestVideoCaptionsNoMatches(t *testing.T) {
	srv := captionServer(t, []map[string]string{
		{"language": "fr", "name": "French", "trackKind": "standard"},
	})
	defer srv.Close()

	c := NewClient(Config{APIKey: "k", BaseURL: srv.URL, HTTPClient: srv.Client()})
	got, err := c.videoCaptions(context.Background(), "abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "" {
		t.Errorf("expected empty summary, got %q", got)
	}
}

func TestFetchAllCaptionsFailureIsolated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("videoId") == "bad" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"items": []map[string]any{
				{"snippet": map[string]string{"language": "en", "name": "English", "trackKind": "standard"}},
			},
		})
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "k", BaseURL: srv.URL, HTTPClient: srv.Client()})
	got := c.fetchAllCaptions(context.Background(), []string{"good", "bad", "also-good"})

	if len(got) != 3 {
		t.Fatalf("expected 3 slots, got %d", len(got))
	}
	if got[0] == "" || got[2] == "" {
		t.Error("sibling lookups should survive one failure")
	}
	if got[1] != "" {
		t.Errorf("failed slot should be empty, got %q", got[1])
	}
}
