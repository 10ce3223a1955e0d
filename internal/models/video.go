package models

import "unicode/utf8"

const (
	// WatchBaseURL is the public watch page a result links to
	WatchBaseURL = "https://www.youtube.com/watch"

	// DescriptionLimit caps the stored description, in characters
	DescriptionLimit = 200

	// SearchMaxResults is the per-topic result cap sent to the search endpoint
	SearchMaxResults = 5

	SearchTypeVideo   = "video"
	SearchOrderByView = "viewCount"
)

// SearchRequest is one search call planned for a topic
type SearchRequest struct {
	Topic          Topic  `json:"topic"`
	PublishedAfter string `json:"publishedAfter"`
	Type           string `json:"type"`
	Order          string `json:"order"`
	MaxResults     int64  `json:"maxResults"`
}

// SearchHit is a single video returned by a search call
type SearchHit struct {
	Topic       Topic  `json:"topic"`
	VideoID     string `json:"videoId"`
	ChannelID   string `json:"channelId"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// EnrichedCandidate is a search hit with both statistics lookups resolved
type EnrichedCandidate struct {
	SearchHit
	Views       int64 `json:"views"`
	Subscribers int64 `json:"subscribers"`
}

// ViralResult is a candidate that passed the subscriber filter
type ViralResult struct {
	Topic       Topic  `json:"topic"`
	VideoID     string `json:"videoId"`
	ChannelID   string `json:"channelId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Views       int64  `json:"views"`
	Subscribers int64  `json:"subs"`
}

// RunReport holds the accepted results of one run in arrival order
type RunReport []ViralResult

// WatchURL builds the watch page link for a video
func WatchURL(videoID string) string {
	return WatchBaseURL + "?v=" + videoID
}

// TruncateDescription keeps at most DescriptionLimit characters
func TruncateDescription(s string) string {
	if utf8.RuneCountInString(s) <= DescriptionLimit {
		return s
	}
	runes := []rune(s)
	return string(runes[:DescriptionLimit])
}
