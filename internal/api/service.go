package api

import (
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"github.com/yt-viral/internal/finder"
	"github.com/yt-viral/internal/models"
)

// ServiceClient answers the same calls as YouTubeClient through the
// generated google.golang.org/api client
type ServiceClient struct {
	service *youtube.Service
	timeout time.Duration
}

var _ finder.Source = (*ServiceClient)(nil)

// NewServiceClient creates a YouTube service bound to apiKey. An empty
// endpoint keeps the library default
func NewServiceClient(ctx context.Context, apiKey, endpoint string, timeout time.Duration) (*ServiceClient, error) {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	opts := []option.ClientOption{option.WithAPIKey(apiKey)}
	if endpoint != "" {
		opts = append(opts, option.WithEndpoint(endpoint))
	}

	service, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}

	return &ServiceClient{
		service: service,
		timeout: timeout,
	}, nil
}

// ServiceSourceFactory builds a ServiceClient per run
func ServiceSourceFactory(endpoint string, timeout time.Duration) finder.SourceFactory {
	return func(ctx context.Context, apiKey string) (finder.Source, error) {
		return NewServiceClient(ctx, apiKey, endpoint, timeout)
	}
}

// Search runs search.list for one topic
func (s *ServiceClient) Search(ctx context.Context, req models.SearchRequest) models.CallResult[[]models.SearchHit] {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	response, err := s.service.Search.List([]string{"snippet"}).
		Q(string(req.Topic)).
		Type(req.Type).
		Order(req.Order).
		PublishedAfter(req.PublishedAfter).
		MaxResults(req.MaxResults).
		Context(ctx).
		Do()
	if err != nil {
		return classify[[]models.SearchHit]("search", err)
	}

	if len(response.Items) == 0 {
		return models.NoItems[[]models.SearchHit](nil)
	}

	hits := make([]models.SearchHit, 0, len(response.Items))
	for _, item := range response.Items {
		if item == nil {
			continue
		}
		hit := models.SearchHit{Topic: req.Topic}
		if item.Id != nil {
			hit.VideoID = item.Id.VideoId
		}
		if item.Snippet != nil {
			hit.ChannelID = item.Snippet.ChannelId
			hit.Title = item.Snippet.Title
			hit.Description = item.Snippet.Description
		}
		hits = append(hits, hit)
	}
	return models.Found(hits)
}

// VideoViews reads a video's view count
func (s *ServiceClient) VideoViews(ctx context.Context, videoID string) models.CallResult[int64] {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	response, err := s.service.Videos.List([]string{"statistics"}).
		Id(videoID).
		Context(ctx).
		Do()
	if err != nil {
		return classify[int64]("videos", err)
	}

	if len(response.Items) == 0 || response.Items[0] == nil {
		return models.NoItems[int64](fmt.Errorf("video %s not found", videoID))
	}

	var views int64
	if stats := response.Items[0].Statistics; stats != nil {
		views = int64(stats.ViewCount)
	}
	return models.Found(views)
}

// ChannelSubscribers reads a channel's subscriber count
func (s *ServiceClient) ChannelSubscribers(ctx context.Context, channelID string) models.CallResult[int64] {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	response, err := s.service.Channels.List([]string{"statistics"}).
		Id(channelID).
		Context(ctx).
		Do()
	if err != nil {
		return classify[int64]("channels", err)
	}

	if len(response.Items) == 0 || response.Items[0] == nil {
		return models.NoItems[int64](fmt.Errorf("channel %s not found", channelID))
	}

	var subs int64
	if stats := response.Items[0].Statistics; stats != nil {
		subs = int64(stats.SubscriberCount)
	}
	return models.Found(subs)
}

// classify maps an API error reply to CallEmpty and everything else to
// CallTransportError
func classify[T any](call string, err error) models.CallResult[T] {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return models.NoItems[T](fmt.Errorf("YouTube API returned status code %d for %s: %s", apiErr.Code, call, apiErr.Message))
	}
	return models.TransportFailed[T](fmt.Errorf("failed to fetch %s: %w", call, redactURL(err)))
}
