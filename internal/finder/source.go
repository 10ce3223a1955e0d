package finder

import (
	"context"

	"github.com/yt-viral/internal/models"
)

// Source issues the three platform calls a run needs. Implementations
// must not return errors for per-call failures; they classify them in
// the CallResult instead
type Source interface {
	Search(ctx context.Context, req models.SearchRequest) models.CallResult[[]models.SearchHit]
	VideoViews(ctx context.Context, videoID string) models.CallResult[int64]
	ChannelSubscribers(ctx context.Context, channelID string) models.CallResult[int64]
}

// SourceFactory builds a Source bound to one API credential
type SourceFactory func(ctx context.Context, apiKey string) (Source, error)
