package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/yjcyxky/kid-videos-app/internal/engine"
)

// fetchAllCaptions fetches caption-availability summaries for every id
// concurrently, one task per id, and joins positionally. A failed task
// yields "" for its slot; siblings and the caller are never aborted.
func (c *Client) fetchAllCaptions(ctx context.Context, ids []string) []string {
	summaries := make([]string, len(ids))
	var wg sync.WaitGroup

	for i, id := range ids {
		wg.Add(1)
		go func(slot int, videoID string) {
			defer wg.Done()
			summary, err := c.videoCaptions(ctx, videoID)
			if err != nil {
				engine.IncrCaptionFailure()
				slog.Debug("youtube: captions failed", slog.String("id", videoID), slog.Any("error", err))
				return
			}
			summaries[slot] = summary
		}(i, id)
	}
	wg.Wait()
	return summaries
}

// videoCaptions lists caption tracks for one video and summarizes those in
// the primary language, the secondary language, or with an undetermined
// tag. No matching track yields "" — the record-level absent state.
func (c *Client) videoCaptions(ctx context.Context, videoID string) (string, error) {
	engine.IncrCaptionRequest()

	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("videoId", videoID)
	params.Set("key", c.apiKey)

	reqCtx, cancel := context.WithTimeout(ctx, auxTimeout)
	defer cancel()
	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, c.baseURL+"/captions?"+params.Encode(), nil)
	if err != nil {
		return "", err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("captions request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("captions status %d", resp.StatusCode)
	}

	var result captionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode captions response: %w", err)
	}

	var tracks []string
	for _, item := range result.Items {
		lang := item.Snippet.Language
		if !strings.HasPrefix(lang, c.langPrimary) && !strings.HasPrefix(lang, c.langSecondary) && lang != "und" {
			continue
		}
		kind := "manual"
		if item.Snippet.TrackKind == "asr" {
			kind = "auto-generated"
		}
		tracks = append(tracks, fmt.Sprintf("[%s] %s (%s)", lang, item.Snippet.Name, kind))
	}
	if len(tracks) == 0 {
		return "", nil
	}
	return "Available captions: " + strings.Join(tracks, ", "), nil
}
