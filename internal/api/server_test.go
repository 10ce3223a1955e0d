package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yt-viral/internal/config"
	"github.com/yt-viral/internal/finder"
	"github.com/yt-viral/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T, subs string) (*Server, *fakePlatform) {
	t.Helper()
	platform, srv := newFakePlatform(t)
	platform.search = fiveVideos
	platform.videos = viewStats("100000")
	platform.channels = subscriberStats(subs)

	cfg := &config.Config{AllowedOrigins: []string{"http://localhost:3000"}}
	f := finder.New(RESTSourceFactory(srv.URL, time.Second),
		finder.WithTopics([]models.Topic{"knights", "crusades"}))
	return NewServer(cfg, f, nil), platform
}

func doJSON(s *Server, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t, "1")
	w := doJSON(s, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestTopics(t *testing.T) {
	s, _ := newTestServer(t, "1")
	w := doJSON(s, http.MethodGet, "/topics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"topics":["knights","crusades"]}`, w.Body.String())
}

func TestRunViralSuccess(t *testing.T) {
	s, _ := newTestServer(t, "500")
	w := doJSON(s, http.MethodPost, "/viral/run", `{"apiKey":"k","days":7}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp runResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, models.OutcomeSuccess, resp.Status)
	assert.Equal(t, "Found 10 potential viral history videos!", resp.Message)
	assert.Equal(t, 10, resp.Count)
	assert.Len(t, resp.Results, 10)
	assert.Equal(t, []models.Topic{"knights", "crusades"}, resp.Searched)
	assert.Equal(t, "https://www.youtube.com/watch?v=knights-0", resp.Results[0].URL)
	assert.Equal(t, int64(500), resp.Results[0].Subscribers)
}

func TestRunViralEmpty(t *testing.T) {
	s, _ := newTestServer(t, "3000")
	w := doJSON(s, http.MethodPost, "/viral/run", `{"apiKey":"k"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp runResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, models.OutcomeEmpty, resp.Status)
	assert.Equal(t, finder.EmptyMessage, resp.Message)
	assert.Empty(t, resp.Results)
	assert.Equal(t, 0, resp.Count)
}

func TestRunViralMissingKey(t *testing.T) {
	s, platform := newTestServer(t, "1")
	w := doJSON(s, http.MethodPost, "/viral/run", `{"apiKey":"","days":3}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp runResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, models.OutcomeFailure, resp.Status)
	assert.Equal(t, finder.MissingKeyMessage, resp.Message)
	assert.Empty(t, resp.Searched)
	assert.Empty(t, platform.recorded())
}

func TestRunViralRejectsWindow(t *testing.T) {
	s, platform := newTestServer(t, "1")
	for _, body := range []string{`{"apiKey":"k","days":0}`, `{"apiKey":"k","days":31}`, `{"apiKey":"k","days":"x"}`, `not json`} {
		w := doJSON(s, http.MethodPost, "/viral/run", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}
	assert.Empty(t, platform.recorded())
}

func TestStreamViral(t *testing.T) {
	s, _ := newTestServer(t, "42")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req := httptest.NewRequest(http.MethodPost, "/viral/stream", strings.NewReader(`{"apiKey":"k","days":2}`)).WithContext(ctx)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	body := w.Body.String()
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/event-stream"))
	assert.Equal(t, 2, strings.Count(body, "event:searching"))
	assert.Equal(t, 1, strings.Count(body, "event:success"))
	assert.Equal(t, 10, strings.Count(body, "event:result"))
	assert.NotContains(t, body, "event:warning")

	// progress precedes the outcome
	assert.Less(t, strings.LastIndex(body, "event:searching"), strings.Index(body, "event:success"))
}

func TestStreamViralMissingKey(t *testing.T) {
	s, _ := newTestServer(t, "42")
	w := doJSON(s, http.MethodPost, "/viral/stream", `{"days":2}`)

	body := w.Body.String()
	assert.Equal(t, 1, strings.Count(body, "event:error"))
	assert.Contains(t, body, finder.MissingKeyMessage)
	assert.NotContains(t, body, "event:searching")
}

func TestCORSPreflight(t *testing.T) {
	s, _ := newTestServer(t, "1")
	req := httptest.NewRequest(http.MethodOptions, "/viral/run", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}
