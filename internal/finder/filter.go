package finder

import "github.com/yt-viral/internal/models"

// SubscriberThreshold is the exclusive upper bound on channel size
const SubscriberThreshold = 3000

// Accept reports whether a candidate comes from a small enough channel
func Accept(c models.EnrichedCandidate) bool {
	return c.Subscribers < SubscriberThreshold
}

// NewViralResult builds the reported form of an accepted candidate
func NewViralResult(c models.EnrichedCandidate) models.ViralResult {
	title := c.Title
	if title == "" {
		title = "N/A"
	}
	return models.ViralResult{
		Topic:       c.Topic,
		VideoID:     c.VideoID,
		ChannelID:   c.ChannelID,
		Title:       title,
		Description: models.TruncateDescription(c.Description),
		URL:         models.WatchURL(c.VideoID),
		Views:       c.Views,
		Subscribers: c.Subscribers,
	}
}
