package finder

import (
	"context"

	"github.com/yt-viral/internal/logger"
	"github.com/yt-viral/internal/models"
)

// Enrich resolves view and subscriber counts for a hit. The video lookup
// always runs before the channel lookup. It returns false when either id
// is missing or either lookup produced no items
func Enrich(ctx context.Context, src Source, hit models.SearchHit, log logger.Logger) (models.EnrichedCandidate, bool) {
	log = logger.Ensure(log)

	if hit.VideoID == "" || hit.ChannelID == "" {
		log.DebugObj("search hit missing identifiers", "hit_skip", map[string]any{
			"topic":     string(hit.Topic),
			"videoId":   hit.VideoID,
			"channelId": hit.ChannelID,
		})
		return models.EnrichedCandidate{}, false
	}

	views := src.VideoViews(ctx, hit.VideoID)
	if !views.OK() {
		logSkip(log, "video statistics", hit, views.Status, views.Err)
		return models.EnrichedCandidate{}, false
	}

	subs := src.ChannelSubscribers(ctx, hit.ChannelID)
	if !subs.OK() {
		logSkip(log, "channel statistics", hit, subs.Status, subs.Err)
		return models.EnrichedCandidate{}, false
	}

	return models.EnrichedCandidate{
		SearchHit:   hit,
		Views:       views.Value,
		Subscribers: subs.Value,
	}, true
}

// logSkip keeps empty replies and transport failures apart in the logs
// even though both drop the hit
func logSkip(log logger.Logger, call string, hit models.SearchHit, status models.CallStatus, err error) {
	fields := map[string]any{
		"call":      call,
		"topic":     string(hit.Topic),
		"videoId":   hit.VideoID,
		"channelId": hit.ChannelID,
		"status":    string(status),
	}
	if err != nil {
		fields["error"] = err
	}
	if status == models.CallTransportError {
		log.WarnObj("lookup failed, skipping hit", "lookup_transport_error", fields)
		return
	}
	log.DebugObj("lookup returned no items, skipping hit", "lookup_empty", fields)
}
