package finder

import (
	"time"

	"github.com/yt-viral/internal/models"
)

const (
	MinWindowDays = 1
	MaxWindowDays = 30

	publishedAfterLayout = "2006-01-02T15:04:05Z"
)

// PublishedAfter returns the lower publish bound for a lookback window,
// in UTC with second precision
func PublishedAfter(days int, now time.Time) string {
	start := now.UTC().Add(-time.Duration(days) * 24 * time.Hour)
	return start.Truncate(time.Second).Format(publishedAfterLayout)
}

// Plan builds one search request per topic, preserving topic order
func Plan(topics []models.Topic, days int, now time.Time) []models.SearchRequest {
	after := PublishedAfter(days, now)
	reqs := make([]models.SearchRequest, 0, len(topics))
	for _, topic := range topics {
		reqs = append(reqs, models.SearchRequest{
			Topic:          topic,
			PublishedAfter: after,
			Type:           models.SearchTypeVideo,
			Order:          models.SearchOrderByView,
			MaxResults:     models.SearchMaxResults,
		})
	}
	return reqs
}
