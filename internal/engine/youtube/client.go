// Package youtube implements video discovery and enrichment against the
// YouTube Data API v3: one search call, one batched details call, and a
// parallel caption-availability fan-out.
package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/yjcyxky/kid-videos-app/internal/engine"
)

const (
	defaultBaseURL = "https://www.googleapis.com/youtube/v3"
	maxPageSize    = 50 // provider hard cap per search call

	searchTimeout = 10 * time.Second // primary search and details calls
	auxTimeout    = 5 * time.Second  // per-video caption lookups
)

// Config configures a Client.
type Config struct {
	APIKey        string
	HTTPClient    *http.Client
	BaseURL       string             // "" = real API
	Retry         engine.RetryConfig // zero value = DefaultRetryConfig
	LangPrimary   string             // caption language prefix, "" = "en"
	LangSecondary string             // caption language prefix, "" = "zh"
}

// Client issues provider search queries and assembles enriched video records.
// It never sorts or filters by quality: output order is the provider's ranking.
type Client struct {
	apiKey        string
	http          *http.Client
	baseURL       string
	retry         engine.RetryConfig
	langPrimary   string
	langSecondary string
}

// NewClient creates a search client, applying defaults for unset fields.
func NewClient(cfg Config) *Client {
	c := &Client{
		apiKey:        cfg.APIKey,
		http:          cfg.HTTPClient,
		baseURL:       cfg.BaseURL,
		retry:         cfg.Retry,
		langPrimary:   cfg.LangPrimary,
		langSecondary: cfg.LangSecondary,
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: 15 * time.Second}
	}
	if c.baseURL == "" {
		c.baseURL = defaultBaseURL
	}
	if c.retry.MaxAttempts == 0 {
		c.retry = engine.DefaultRetryConfig
	}
	if c.langPrimary == "" {
		c.langPrimary = "en"
	}
	if c.langSecondary == "" {
		c.langSecondary = "zh"
	}
	return c
}

// Search runs one search call (retried with backoff), enriches the ordered
// results with a single batched details call and a caption fan-out, and
// returns typed records in the provider's original ranking. An empty result
// set is a valid, non-error outcome.
func (c *Client) Search(ctx context.Context, query string, maxResults int) ([]engine.Video, error) {
	engine.IncrSearchRequest()

	items, err := c.search(ctx, query, maxResults)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return []engine.Video{}, nil
	}

	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ID.VideoID
	}

	// Details are best-effort per item: a missing detail leaves duration
	// and counts unset rather than failing the search.
	details, err := c.videoDetails(ctx, ids)
	if err != nil {
		return nil, err
	}

	captions := c.fetchAllCaptions(ctx, ids)

	videos := make([]engine.Video, len(items))
	for i := range items {
		videos[i] = assembleVideo(&items[i], details[ids[i]])
		videos[i].Subtitles = captions[i]
	}
	return videos, nil
}

// search performs the primary search call with fixed child-safe filters.
func (c *Client) search(ctx context.Context, query string, maxResults int) ([]searchItem, error) {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("type", "video")
	params.Set("q", query)
	params.Set("maxResults", strconv.Itoa(min(maxResults, maxPageSize)))
	params.Set("key", c.apiKey)
	params.Set("order", "relevance")
	params.Set("safeSearch", "strict")
	params.Set("videoCategoryId", "22")
	params.Set("videoEmbeddable", "true")
	params.Set("relevanceLanguage", "en")
	params.Set("regionCode", "US")

	searchURL := c.baseURL + "/search?" + params.Encode()
	resp, err := engine.RetryHTTP(ctx, c.retry, func() (*http.Response, error) {
		reqCtx, cancel := context.WithTimeout(ctx, searchTimeout)
		defer cancel()
		req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, searchURL, nil)
		if err != nil {
			return nil, err
		}
		return c.http.Do(req)
	})
	if err != nil {
		return nil, fmt.Errorf("youtube search: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, fmt.Errorf("youtube search: %w", err)
	}

	var result searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode youtube search response: %w", err)
	}
	slog.Debug("youtube: search page",
		slog.String("query", query),
		slog.Int("returned", len(result.Items)),
		slog.Int("total_available", result.PageInfo.TotalResults))
	return result.Items, nil
}

// videoDetails fetches statistics and content details for all ids in one
// call and returns an id→detail lookup.
func (c *Client) videoDetails(ctx context.Context, ids []string) (map[string]*videoDetail, error) {
	if len(ids) == 0 {
		return map[string]*videoDetail{}, nil
	}
	engine.IncrDetailRequest()

	params := url.Values{}
	params.Set("part", "snippet,contentDetails,statistics")
	params.Set("id", strings.Join(ids, ","))
	params.Set("key", c.apiKey)

	reqCtx, cancel := context.WithTimeout(ctx, searchTimeout)
	defer cancel()
	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, c.baseURL+"/videos?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("youtube details: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, fmt.Errorf("youtube details: %w", err)
	}

	var result detailsResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode youtube details response: %w", err)
	}

	byID := make(map[string]*videoDetail, len(result.Items))
	for i := range result.Items {
		if result.Items[i].ID != "" {
			byID[result.Items[i].ID] = &result.Items[i]
		}
	}
	return byID, nil
}

// assembleVideo builds a record from the search item plus its optional
// detail. Thumbnail prefers the higher-resolution variant.
func assembleVideo(item *searchItem, detail *videoDetail) engine.Video {
	sn := &item.Snippet

	thumbnailURL := ""
	switch {
	case sn.Thumbnails.High != nil:
		thumbnailURL = sn.Thumbnails.High.URL
	case sn.Thumbnails.Medium != nil:
		thumbnailURL = sn.Thumbnails.Medium.URL
	}

	v := engine.Video{
		ID:           item.ID.VideoID,
		Title:        sn.Title,
		Description:  sn.Description,
		ChannelTitle: sn.ChannelTitle,
		PublishedAt:  sn.PublishedAt,
		ThumbnailURL: thumbnailURL,
		CachedAt:     engine.Now(),
	}

	if detail == nil {
		return v
	}
	if detail.ContentDetails != nil {
		if secs, ok := engine.ParseISODuration(detail.ContentDetails.Duration); ok {
			v.Duration = &secs
		}
	}
	if detail.Statistics != nil {
		if n, err := strconv.ParseInt(detail.Statistics.ViewCount, 10, 64); err == nil {
			v.ViewCount = &n
		}
		if n, err := strconv.ParseInt(detail.Statistics.LikeCount, 10, 64); err == nil {
			v.LikeCount = &n
		}
	}
	return v
}

// checkStatus maps provider rejections to descriptive errors.
func checkStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode == http.StatusOK:
		return nil
	case resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("quota exceeded or invalid API key (status 403)")
	case resp.StatusCode == http.StatusBadRequest:
		return fmt.Errorf("bad request parameters (status 400)")
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("status %d: %s", resp.StatusCode, string(body))
	}
}
