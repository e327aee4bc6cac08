package news

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"startpage/internal/upstream"
	feedUC "startpage/internal/usecase/feed"
)

const defaultFeedURL = "https://news.example.com/rss"

type stubSource struct {
	title   string
	items   []feedUC.Item
	err     error
	lastURL string
}

func (s *stubSource) Fetch(ctx context.Context, feedURL string) (string, []feedUC.Item, error) {
	s.lastURL = feedURL
	return s.title, s.items, s.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func serve(t *testing.T, source *stubSource, target string) *httptest.ResponseRecorder {
	t.Helper()
	mux := http.NewServeMux()
	Register(mux, feedUC.NewService(source, testLogger()), defaultFeedURL, testLogger())

	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestServeHTTP(t *testing.T) {
	source := &stubSource{
		title: "Example News",
		items: []feedUC.Item{
			{Title: "First", Link: "https://news.example.com/1"},
			{Title: "Second", Link: "https://news.example.com/2"},
		},
	}

	rec := serve(t, source, "/api/news")

	require.Equal(t, http.StatusOK, rec.Code)

	var result feedUC.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "Example News", result.FeedTitle)
	require.Len(t, result.Items, 2)
	assert.Equal(t, "First", result.Items[0].Title)
	assert.Equal(t, defaultFeedURL, source.lastURL, "missing url parameter falls back to the configured feed")
}

func TestServeHTTP_URLOverride(t *testing.T) {
	source := &stubSource{title: "Other"}

	rec := serve(t, source, "/api/news?url=https%3A%2F%2Fother.example.com%2Ffeed")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://other.example.com/feed", source.lastURL)
}

func TestServeHTTP_LimitCapsItems(t *testing.T) {
	items := make([]feedUC.Item, 30)
	for i := range items {
		items[i] = feedUC.Item{Title: "item", Link: "https://news.example.com/x"}
	}
	source := &stubSource{title: "Big", items: items}

	rec := serve(t, source, "/api/news?limit=3")

	require.Equal(t, http.StatusOK, rec.Code)

	var result feedUC.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Len(t, result.Items, 3)
}

func TestParseLimit(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{raw: "", want: feedUC.DefaultLimit},
		{raw: "abc", want: feedUC.DefaultLimit},
		{raw: "0", want: feedUC.MinLimit},
		{raw: "-5", want: feedUC.MinLimit},
		{raw: "7", want: 7},
		{raw: "1000", want: feedUC.MaxLimit},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseLimit(tt.raw), "raw=%q", tt.raw)
	}
}

func TestServeHTTP_FetchFailureHasNoItems(t *testing.T) {
	source := &stubSource{
		err: upstream.Fetch(errors.New("connection refused"), "fetch feed"),
	}

	rec := serve(t, source, "/api/news")

	require.Equal(t, http.StatusBadGateway, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body["error"])
	assert.NotContains(t, body, "items")
}

func TestServeHTTP_ParseFailure(t *testing.T) {
	source := &stubSource{
		err: upstream.Parse(errors.New("not xml"), "feed error: not xml"),
	}

	rec := serve(t, source, "/api/news")

	require.Equal(t, http.StatusBadGateway, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "feed error")
}
