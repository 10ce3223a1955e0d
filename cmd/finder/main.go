package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/yt-viral/internal/api"
	"github.com/yt-viral/internal/config"
	"github.com/yt-viral/internal/finder"
	"github.com/yt-viral/internal/logger"
	"github.com/yt-viral/internal/models"
)

const defaultDays = 7

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one search from the command line and returns the exit code
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	v := config.New()

	fs := pflag.NewFlagSet("finder", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	days := fs.Int("days", defaultDays, "search window in days (1-30)")
	fs.String("api-key", "", "YouTube Data API key (defaults to YOUTUBE_API_KEY)")
	fs.String("backend", config.BackendREST, "YouTube backend: rest or service")
	fs.String("log-level", "info", "log level written to stderr")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}
	if *days < finder.MinWindowDays || *days > finder.MaxWindowDays {
		fmt.Fprintf(stderr, "Error: --days must be between %d and %d, got %d\n", finder.MinWindowDays, finder.MaxWindowDays, *days)
		return 2
	}
	for key, flag := range map[string]string{
		"youtube_api_key": "api-key",
		"youtube_backend": "backend",
		"log_level":       "log-level",
	} {
		if err := v.BindPFlag(key, fs.Lookup(flag)); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 2
		}
	}

	cfg, err := config.FromViper(v)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	zl, err := logger.NewWithWriter(cfg.LogLevel, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
	defer zl.Sync()

	f := finder.New(api.SourceFactoryFor(cfg), finder.WithLogger(zl))
	outcome := finder.Execute(ctx, f, finder.RunInput{APIKey: cfg.YouTubeAPIKey, Days: *days}, finder.NewTextPresenter(stdout))
	if outcome.Kind == models.OutcomeFailure {
		return 1
	}
	return 0
}
