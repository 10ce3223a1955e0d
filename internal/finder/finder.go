package finder

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yt-viral/internal/logger"
	"github.com/yt-viral/internal/models"
)

var (
	ErrMissingAPIKey = errors.New("YouTube API key is required")
	ErrInvalidWindow = fmt.Errorf("number of days must be between %d and %d", MinWindowDays, MaxWindowDays)
)

// MissingKeyMessage is shown when a run is triggered without a key
const MissingKeyMessage = "Please enter a valid YouTube API Key"

// RunInput is what the presenter supplies when a run is triggered
type RunInput struct {
	APIKey string
	Days   int
}

// Finder drives a run: search every topic, enrich each hit, keep the
// small-channel ones. It holds no per-run state and is safe to share
type Finder struct {
	newSource SourceFactory
	topics    []models.Topic
	log       logger.Logger
	now       func() time.Time
}

// Option customises a Finder
type Option func(*Finder)

// WithTopics replaces the topic catalog, mainly for tests
func WithTopics(topics []models.Topic) Option {
	return func(f *Finder) {
		f.topics = append([]models.Topic(nil), topics...)
	}
}

// WithClock overrides the time source used for the publish bound
func WithClock(now func() time.Time) Option {
	return func(f *Finder) {
		f.now = now
	}
}

// WithLogger sets the logger
func WithLogger(log logger.Logger) Option {
	return func(f *Finder) {
		f.log = logger.Ensure(log)
	}
}

// New creates a Finder that builds a Source per run with newSource
func New(newSource SourceFactory, opts ...Option) *Finder {
	f := &Finder{
		newSource: newSource,
		topics:    models.DefaultTopics(),
		log:       logger.NopLogger{},
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Topics returns the topics searched on every run
func (f *Finder) Topics() []models.Topic {
	return append([]models.Topic(nil), f.topics...)
}

// Run performs one full search. onTopic, if set, is called before each
// topic's search is issued. Results are only returned once every topic
// has been processed
func (f *Finder) Run(ctx context.Context, in RunInput, onTopic func(models.Topic)) (outcome models.RunOutcome) {
	if strings.TrimSpace(in.APIKey) == "" {
		return models.Failure(MissingKeyMessage, ErrMissingAPIKey)
	}
	if in.Days < MinWindowDays || in.Days > MaxWindowDays {
		err := fmt.Errorf("%w: got %d", ErrInvalidWindow, in.Days)
		return models.Failure(err.Error(), err)
	}

	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("run aborted: %v", r)
			f.log.ErrorObj("run aborted", "run_panic", map[string]any{"error": err})
			outcome = models.Failure(failureMessage(err), err)
		}
	}()

	src, err := f.newSource(ctx, in.APIKey)
	if err != nil {
		err = fmt.Errorf("failed to create YouTube source: %w", err)
		return models.Failure(failureMessage(err), err)
	}

	started := f.now()
	reqs := Plan(f.topics, in.Days, started)
	f.log.InfoObj("run started", "run_start", map[string]any{
		"topics":         len(reqs),
		"days":           in.Days,
		"publishedAfter": PublishedAfter(in.Days, started),
	})

	var report models.RunReport
	for _, req := range reqs {
		if err := ctx.Err(); err != nil {
			return models.Failure(failureMessage(err), err)
		}
		if onTopic != nil {
			onTopic(req.Topic)
		}
		report = append(report, f.searchTopic(ctx, src, req)...)
	}

	f.log.InfoObj("run finished", "run_done", map[string]any{
		"results":  len(report),
		"duration": f.now().Sub(started).String(),
	})

	if len(report) == 0 {
		return models.Empty()
	}
	return models.Success(report)
}

func (f *Finder) searchTopic(ctx context.Context, src Source, req models.SearchRequest) []models.ViralResult {
	res := src.Search(ctx, req)
	if !res.OK() {
		fields := map[string]any{"topic": string(req.Topic), "status": string(res.Status)}
		if res.Err != nil {
			fields["error"] = res.Err
		}
		if res.Status == models.CallTransportError {
			f.log.WarnObj("search failed, skipping topic", "search_transport_error", fields)
		} else {
			f.log.DebugObj("search returned no items", "search_empty", fields)
		}
		return nil
	}

	var out []models.ViralResult
	for _, hit := range res.Value {
		hit.Topic = req.Topic
		candidate, ok := Enrich(ctx, src, hit, f.log)
		if !ok || !Accept(candidate) {
			continue
		}
		out = append(out, NewViralResult(candidate))
	}
	return out
}

func failureMessage(err error) string {
	return "Error occurred: " + err.Error()
}
