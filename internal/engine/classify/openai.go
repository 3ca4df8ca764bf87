package classify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const (
	openaiBaseURL     = "https://api.openai.com/v1"
	openaiModel       = "gpt-3.5-turbo"
	openaiTemperature = 0.3
)

type openaiProvider struct {
	apiKey  string
	http    *http.Client
	baseURL string
}

type openaiRequest struct {
	Model       string          `json:"model"`
	Messages    []openaiMessage `json:"messages"`
	MaxTokens   int             `json:"max_tokens"`
	Temperature float64         `json:"temperature"`
}

type openaiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openaiResponse struct {
	Choices []struct {
		Message openaiMessage `json:"message"`
	} `json:"choices"`
}

func (p *openaiProvider) Name() string { return ProviderOpenAI }

// Classify sends the prompt as a single user turn and returns the first
// choice's message text.
func (p *openaiProvider) Classify(ctx context.Context, prompt string, maxTokens int) (string, error) {
	body, err := json.Marshal(openaiRequest{
		Model:       openaiModel,
		Messages:    []openaiMessage{{Role: "user", Content: prompt}},
		MaxTokens:   maxTokens,
		Temperature: openaiTemperature,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("openai request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("openai status %d: %s", resp.StatusCode, string(b))
	}

	var out openaiResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode openai response: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("openai: empty choices")
	}
	return out.Choices[0].Message.Content, nil
}
