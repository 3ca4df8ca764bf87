package classify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestOpenAIProvider(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q", got)
		}
		var req openaiRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.MaxTokens != 2000 {
			t.Errorf("max_tokens = %d, want 2000", req.MaxTokens)
		}
		if len(req.Messages) != 1 || req.Messages[0].Role != "user" {
			t.Errorf("unexpected messages: %+v", req.Messages)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": `{"videos":[]}`}},
			},
		})
	}))
	defer srv.Close()

	p := &openaiProvider{apiKey: "test-key", http: srv.Client(), baseURL: srv.URL}
	got, err := p.Classify(context.Background(), "prompt", 2000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != `{"videos":[]}` {
		t.Errorf("got %q", got)
	}
}

func TestOpenAIProviderEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer srv.Close()

	p := &openaiProvider{http: srv.Client(), baseURL: srv.URL}
	if _, err := p.Classify(context.Background(), "prompt", 100); err == nil {
		t.Fatal("expected error on empty choices")
	}
}

func TestOpenAIProviderErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	p := &openaiProvider{http: srv.Client(), baseURL: srv.URL}
	if _, err := p.Classify(context.Background(), "prompt", 100); err == nil {
		t.Fatal("expected error on 429")
	}
}

func TestAnthropicProvider(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("x-api-key"); got != "test-key" {
			t.Errorf("x-api-key = %q", got)
		}
		if got := r.Header.Get("anthropic-version"); got != anthropicAPIVer {
			t.Errorf("anthropic-version = %q", got)
		}
		var req anthropicRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.MaxTokens != 800 {
			t.Errorf("max_tokens = %d, want 800", req.MaxTokens)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]string{{"type": "text", "text": "verdicts"}},
		})
	}))
	defer srv.Close()

	p := &anthropicProvider{apiKey: "test-key", http: srv.Client(), baseURL: srv.URL}
	got, err := p.Classify(context.Background(), "prompt", 800)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "verdicts" {
		t.Errorf("got %q", got)
	}
}

func TestNewProviderSelection(t *testing.T) {
	hc := &http.Client{Timeout: time.Second}
	if got := NewProvider(ProviderAnthropic, "k", hc).Name(); got != ProviderAnthropic {
		t.Errorf("anthropic tag selected %q", got)
	}
	if got := NewProvider(ProviderOpenAI, "k", hc).Name(); got != ProviderOpenAI {
		t.Errorf("openai tag selected %q", got)
	}
	if got := NewProvider("something-else", "k", hc).Name(); got != ProviderOpenAI {
		t.Errorf("unknown tag should fall back to openai, selected %q", got)
	}
}
