package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	BackendREST    = "rest"
	BackendService = "service"

	DefaultAPIBaseURL     = "https://www.googleapis.com/youtube/v3"
	DefaultRequestTimeout = 10 * time.Second
	MinRequestTimeout     = 100 * time.Millisecond
)

var (
	ErrUnknownBackend = errors.New("unknown YouTube backend")
	ErrInvalidTimeout = errors.New("invalid request timeout")
)

// Config holds the application configuration
type Config struct {
	// YouTubeAPIKey is only a default for the CLI; runs take the key as input
	YouTubeAPIKey  string
	Port           string
	Backend        string
	APIBaseURL     string
	RequestTimeout time.Duration
	LogLevel       string
	AllowedOrigins []string
}

// New returns a viper instance with defaults and env bindings applied
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("port", "8080")
	v.SetDefault("youtube_backend", BackendREST)
	v.SetDefault("youtube_api_base_url", DefaultAPIBaseURL)
	v.SetDefault("youtube_request_timeout", DefaultRequestTimeout.String())
	v.SetDefault("log_level", "info")
	v.SetDefault("cors_allowed_origins", "http://localhost:3000,http://localhost:3001")
	v.SetDefault("youtube_api_key", "")
	v.AutomaticEnv()
	return v
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	return FromViper(New())
}

// FromViper reads the configuration out of v and validates it
func FromViper(v *viper.Viper) (*Config, error) {
	timeout, err := parseTimeout(v.GetString("youtube_request_timeout"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		YouTubeAPIKey:  strings.TrimSpace(v.GetString("youtube_api_key")),
		Port:           v.GetString("port"),
		Backend:        strings.ToLower(strings.TrimSpace(v.GetString("youtube_backend"))),
		APIBaseURL:     strings.TrimRight(v.GetString("youtube_api_base_url"), "/"),
		RequestTimeout: timeout,
		LogLevel:       v.GetString("log_level"),
		AllowedOrigins: splitList(v.GetString("cors_allowed_origins")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendREST, BackendService:
	default:
		return fmt.Errorf("%w: %q (use %q or %q)", ErrUnknownBackend, c.Backend, BackendREST, BackendService)
	}
	if c.RequestTimeout < MinRequestTimeout {
		return fmt.Errorf("%w: got %s, need at least %s", ErrInvalidTimeout, c.RequestTimeout, MinRequestTimeout)
	}
	if c.APIBaseURL == "" {
		return fmt.Errorf("YOUTUBE_API_BASE_URL must not be empty")
	}
	return nil
}

// parseTimeout accepts a Go duration ("10s", "1m") or a bare number of seconds
func parseTimeout(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if n, err := strconv.Atoi(raw); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a duration", ErrInvalidTimeout, raw)
	}
	return d, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
