package api

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/yt-viral/internal/finder"
	"github.com/yt-viral/internal/models"
)

const (
	youtubeAPIBaseURL = "https://www.googleapis.com/youtube/v3"
	defaultTimeout    = 10 * time.Second
)

// YouTubeClient calls the YouTube Data API over plain REST
type YouTubeClient struct {
	apiKey string
	client *resty.Client
}

var _ finder.Source = (*YouTubeClient)(nil)

// NewYouTubeClient creates a new YouTube client. Every call is bounded by timeout
func NewYouTubeClient(apiKey, baseURL string, timeout time.Duration) *YouTubeClient {
	if baseURL == "" {
		baseURL = youtubeAPIBaseURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	return &YouTubeClient{
		apiKey: apiKey,
		client: client,
	}
}

// RESTSourceFactory builds a YouTubeClient per run
func RESTSourceFactory(baseURL string, timeout time.Duration) finder.SourceFactory {
	return func(_ context.Context, apiKey string) (finder.Source, error) {
		return NewYouTubeClient(apiKey, baseURL, timeout), nil
	}
}

// Search lists the most viewed videos for a topic
func (c *YouTubeClient) Search(ctx context.Context, req models.SearchRequest) models.CallResult[[]models.SearchHit] {
	var response models.SearchListResponse
	status, err := c.get(ctx, "/search", map[string]string{
		"part":           "snippet",
		"q":              string(req.Topic),
		"type":           req.Type,
		"order":          req.Order,
		"publishedAfter": req.PublishedAfter,
		"maxResults":     strconv.FormatInt(req.MaxResults, 10),
	}, &response)
	if status != models.CallOK {
		return models.CallResult[[]models.SearchHit]{Status: status, Err: err}
	}

	if len(response.Items) == 0 {
		return models.NoItems[[]models.SearchHit](nil)
	}

	hits := make([]models.SearchHit, 0, len(response.Items))
	for _, item := range response.Items {
		hits = append(hits, models.SearchHit{
			Topic:       req.Topic,
			VideoID:     item.ID.VideoID,
			ChannelID:   item.Snippet.ChannelID,
			Title:       item.Snippet.Title,
			Description: item.Snippet.Description,
		})
	}
	return models.Found(hits)
}

// VideoViews fetches the view count of a single video
func (c *YouTubeClient) VideoViews(ctx context.Context, videoID string) models.CallResult[int64] {
	var response models.VideoStatisticsResponse
	status, err := c.get(ctx, "/videos", map[string]string{
		"part": "statistics",
		"id":   videoID,
	}, &response)
	if status != models.CallOK {
		return models.CallResult[int64]{Status: status, Err: err}
	}

	if len(response.Items) == 0 {
		return models.NoItems[int64](fmt.Errorf("video %s not found", videoID))
	}
	return models.Found(parseCount(response.Items[0].Statistics.ViewCount))
}

// ChannelSubscribers fetches the subscriber count of a single channel
func (c *YouTubeClient) ChannelSubscribers(ctx context.Context, channelID string) models.CallResult[int64] {
	var response models.ChannelResponse
	status, err := c.get(ctx, "/channels", map[string]string{
		"part": "statistics",
		"id":   channelID,
	}, &response)
	if status != models.CallOK {
		return models.CallResult[int64]{Status: status, Err: err}
	}

	if len(response.Items) == 0 {
		return models.NoItems[int64](fmt.Errorf("channel %s not found", channelID))
	}
	return models.Found(parseCount(response.Items[0].Statistics.SubscriberCount))
}

// get issues one GET and decodes the body into out. A reply the API
// answered with a non-2xx status is reported as CallEmpty, since it
// carries no items; anything that never produced a decodable reply is
// CallTransportError
func (c *YouTubeClient) get(ctx context.Context, path string, params map[string]string, out any) (models.CallStatus, error) {
	var apiErr models.APIErrorResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetQueryParam("key", c.apiKey).
		SetResult(out).
		SetError(&apiErr).
		ForceContentType("application/json").
		Get(path)
	if err != nil {
		return models.CallTransportError, fmt.Errorf("failed to fetch %s: %w", path, redactURL(err))
	}

	if !resp.IsSuccess() {
		msg := apiErr.Error.Message
		if msg == "" {
			msg = "no error message"
		}
		return models.CallEmpty, fmt.Errorf("YouTube API returned status code %d for %s: %s", resp.StatusCode(), path, msg)
	}
	return models.CallOK, nil
}

// parseCount reads a statistics counter; absent or malformed values count as zero
func parseCount(raw string) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// redactURL strips the query string from transport errors so the API key
// never reaches the logs
func redactURL(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if u, perr := url.Parse(urlErr.URL); perr == nil {
			u.RawQuery = ""
			urlErr.URL = u.String()
		} else {
			urlErr.URL = "<redacted>"
		}
	}
	return err
}
