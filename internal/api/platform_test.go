package api

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
)

type reply struct {
	status int
	body   string
}

// fakePlatform mimics the three YouTube endpoints a run touches
type fakePlatform struct {
	mu       sync.Mutex
	calls    []recordedCall
	search   func(q url.Values) reply
	videos   func(q url.Values) reply
	channels func(q url.Values) reply
}

type recordedCall struct {
	endpoint string
	query    url.Values
}

func newFakePlatform(t *testing.T) (*fakePlatform, *httptest.Server) {
	t.Helper()
	p := &fakePlatform{
		search:   func(url.Values) reply { return reply{200, `{"items":[]}`} },
		videos:   func(url.Values) reply { return reply{200, `{"items":[]}`} },
		channels: func(url.Values) reply { return reply{200, `{"items":[]}`} },
	}
	srv := httptest.NewServer(p)
	t.Cleanup(srv.Close)
	return p, srv
}

func (p *fakePlatform) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var endpoint string
	var handler func(url.Values) reply
	switch {
	case strings.HasSuffix(r.URL.Path, "/search"):
		endpoint, handler = "search", p.search
	case strings.HasSuffix(r.URL.Path, "/videos"):
		endpoint, handler = "videos", p.videos
	case strings.HasSuffix(r.URL.Path, "/channels"):
		endpoint, handler = "channels", p.channels
	default:
		http.NotFound(w, r)
		return
	}

	q := r.URL.Query()
	p.mu.Lock()
	p.calls = append(p.calls, recordedCall{endpoint: endpoint, query: q})
	p.mu.Unlock()

	res := handler(q)
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(res.status)
	fmt.Fprint(w, res.body)
}

func (p *fakePlatform) recorded() []recordedCall {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]recordedCall(nil), p.calls...)
}

func (p *fakePlatform) count(endpoint string) int {
	n := 0
	for _, c := range p.recorded() {
		if c.endpoint == endpoint {
			n++
		}
	}
	return n
}

// fiveVideos answers every search with five hits derived from the query
func fiveVideos(q url.Values) reply {
	slug := strings.ReplaceAll(q.Get("q"), " ", "-")
	items := make([]string, 0, 5)
	for i := 0; i < 5; i++ {
		items = append(items, fmt.Sprintf(
			`{"id":{"kind":"youtube#video","videoId":"%s-%d"},"snippet":{"channelId":"UC-%s-%d","title":"%s %d","description":"about %s"}}`,
			slug, i, slug, i, q.Get("q"), i, q.Get("q")))
	}
	return reply{200, `{"kind":"youtube#searchListResponse","items":[` + strings.Join(items, ",") + `]}`}
}

func viewStats(views string) func(url.Values) reply {
	return func(q url.Values) reply {
		return reply{200, fmt.Sprintf(`{"items":[{"id":"%s","statistics":{"viewCount":"%s"}}]}`, q.Get("id"), views)}
	}
}

func subscriberStats(subs string) func(url.Values) reply {
	return func(q url.Values) reply {
		return reply{200, fmt.Sprintf(`{"items":[{"id":"%s","statistics":{"subscriberCount":"%s"}}]}`, q.Get("id"), subs)}
	}
}
