package engine

import "time"

// Video is a single discovered video with enrichment and, after
// classification, AI verdict fields. Pointer fields stay nil until the
// owning stage fills them; the four classification fields are always set
// together or not at all.
type Video struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Description    string   `json:"description,omitempty"`
	ThumbnailURL   string   `json:"thumbnail_url,omitempty"`
	Duration       *int     `json:"duration,omitempty"` // whole seconds
	ChannelTitle   string   `json:"channel_title,omitempty"`
	PublishedAt    string   `json:"published_at,omitempty"` // ISO 8601
	ViewCount      *int64   `json:"view_count,omitempty"`
	LikeCount      *int64   `json:"like_count,omitempty"`
	AIScore        *float64 `json:"ai_score,omitempty"`        // [0,1]
	EducationScore *float64 `json:"education_score,omitempty"` // [0,1]
	SafetyScore    *float64 `json:"safety_score,omitempty"`    // [0,1]
	AgeAppropriate *bool    `json:"age_appropriate,omitempty"`
	Tags           string   `json:"tags,omitempty"`
	CachedAt       string   `json:"cached_at,omitempty"`
	Subtitles      string   `json:"subtitles,omitempty"` // caption-availability summary, not caption text
}

// Classified reports whether the video carries an AI verdict.
func (v *Video) Classified() bool {
	return v.AIScore != nil && v.EducationScore != nil && v.SafetyScore != nil && v.AgeAppropriate != nil
}

// SearchRequest is one pipeline invocation.
type SearchRequest struct {
	Query        string `json:"query"`
	Platform     string `json:"platform,omitempty"`
	FilterMode   string `json:"filter_mode,omitempty"` // strict | balanced | educational
	MaxResults   int    `json:"max_results,omitempty"`
	SkipAnalysis bool   `json:"skip_ai_analysis,omitempty"`
}

// SearchResponse is the ranked pipeline output with per-phase timings.
type SearchResponse struct {
	Videos       []Video `json:"videos"`
	TotalFound   int     `json:"total_found"`
	SearchTime   float64 `json:"search_time"`
	AnalysisTime float64 `json:"ai_analysis_time"`
}

// DurationBounds gates classification verdicts by video length.
type DurationBounds struct {
	MinSeconds int
	MaxSeconds int
}

// DefaultDurationBounds is 2–30 minutes.
var DefaultDurationBounds = DurationBounds{MinSeconds: 2 * 60, MaxSeconds: 30 * 60}

// Within reports whether a duration in seconds passes the gate.
func (b DurationBounds) Within(seconds int) bool {
	return seconds >= b.MinSeconds && seconds <= b.MaxSeconds
}

// BoundsFromMinutes builds bounds from whole minutes, falling back to the
// defaults when a side is zero or negative.
func BoundsFromMinutes(minMinutes, maxMinutes int) DurationBounds {
	b := DefaultDurationBounds
	if minMinutes > 0 {
		b.MinSeconds = minMinutes * 60
	}
	if maxMinutes > 0 {
		b.MaxSeconds = maxMinutes * 60
	}
	return b
}

// Now returns the current UTC time in RFC 3339, the timestamp format used
// for records and store rows.
func Now() string {
	return time.Now().UTC().Format(time.RFC3339)
}
