package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yt-viral/internal/finder"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"YOUTUBE_API_KEY", "YOUTUBE_BACKEND", "YOUTUBE_API_BASE_URL", "LOG_LEVEL"} {
		t.Setenv(k, "")
	}
}

func TestRunMissingKey(t *testing.T) {
	clearEnv(t)
	var stdout, stderr bytes.Buffer

	code := run(context.Background(), []string{"--days", "7", "--log-level", "error"}, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Equal(t, "Error: "+finder.MissingKeyMessage+"\n", stdout.String())
}

func TestRunBadFlags(t *testing.T) {
	clearEnv(t)
	var stdout, stderr bytes.Buffer

	assert.Equal(t, 2, run(context.Background(), []string{"--nope"}, &stdout, &stderr))
	assert.Equal(t, 2, run(context.Background(), []string{"--backend", "grpc"}, &stdout, &stderr))
	assert.Empty(t, stdout.String())
}

func TestRunRejectsDaysOutsideWindow(t *testing.T) {
	clearEnv(t)
	for _, days := range []string{"0", "31", "-1"} {
		var stdout, stderr bytes.Buffer
		code := run(context.Background(), []string{"--api-key", "k", "--days", days}, &stdout, &stderr)

		assert.Equal(t, 2, code, days)
		assert.Empty(t, stdout.String(), days)
		assert.Contains(t, stderr.String(), "--days must be between 1 and 30", days)
	}
}

func TestRunLogsToGivenWriter(t *testing.T) {
	clearEnv(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var stdout, stderr bytes.Buffer

	code := run(ctx, []string{"--api-key", "secret-k", "--log-level", "info"}, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), `"event":"run_start"`)
	assert.NotContains(t, stderr.String(), "secret-k")
	assert.Contains(t, stdout.String(), "Error: Error occurred: context canceled")
}
