package youtube

// YouTube Data API v3 response shapes, limited to the fields read here.

type searchResponse struct {
	Items    []searchItem `json:"items"`
	PageInfo pageInfo     `json:"pageInfo"`
}

type pageInfo struct {
	TotalResults int `json:"totalResults"`
}

type searchItem struct {
	ID      searchItemID `json:"id"`
	Snippet snippet      `json:"snippet"`
}

type searchItemID struct {
	VideoID string `json:"videoId"`
}

type snippet struct {
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	ChannelTitle string     `json:"channelTitle"`
	PublishedAt  string     `json:"publishedAt"`
	Thumbnails   thumbnails `json:"thumbnails"`
}

type thumbnails struct {
	Medium *thumbnail `json:"medium"`
	High   *thumbnail `json:"high"`
}

type thumbnail struct {
	URL string `json:"url"`
}

type detailsResponse struct {
	Items []videoDetail `json:"items"`
}

type videoDetail struct {
	ID             string          `json:"id"`
	Statistics     *statistics     `json:"statistics"`
	ContentDetails *contentDetails `json:"contentDetails"`
}

// statistics counts arrive as numeric strings.
type statistics struct {
	ViewCount string `json:"viewCount"`
	LikeCount string `json:"likeCount"`
}

type contentDetails struct {
	Duration string `json:"duration"` // ISO 8601 token, e.g. PT4M13S
}

type captionsResponse struct {
	Items []captionItem `json:"items"`
}

type captionItem struct {
	Snippet captionSnippet `json:"snippet"`
}

type captionSnippet struct {
	Language  string `json:"language"`
	TrackKind string `json:"trackKind"` // "asr" = auto-generated
	Name      string `json:"name"`
}
