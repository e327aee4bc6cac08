// Package news provides the HTTP handler for the normalized feed
// endpoint.
package news

import (
	"log/slog"
	"net/http"
	"strconv"

	"startpage/internal/handler/http/respond"
	"startpage/internal/observability/logging"
	"startpage/internal/upstream"
	feedUC "startpage/internal/usecase/feed"
)

// Handler serves normalized feed items.
type Handler struct {
	Svc feedUC.Service

	// DefaultFeedURL is used when the caller supplies no url
	// parameter.
	DefaultFeedURL string

	Logger *slog.Logger
}

func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.WithRequestID(ctx, h.Logger)

	q := r.URL.Query()
	feedURL := q.Get("url")
	if feedURL == "" {
		feedURL = h.DefaultFeedURL
	}
	limit := parseLimit(q.Get("limit"))

	result, err := h.Svc.Fetch(ctx, feedURL, limit)
	if err != nil {
		status := upstream.StatusFor(err)
		logger.Warn("news request failed",
			slog.String("feed_url", feedURL),
			slog.Int("status", status),
			slog.Any("error", err))
		// The failure body carries only the error string, never a
		// partially populated item list.
		respond.Error(w, status, err)
		return
	}

	logger.Info("news request",
		slog.String("feed_url", feedURL),
		slog.Int("limit", limit),
		slog.Int("item_count", len(result.Items)))

	respond.JSON(w, http.StatusOK, result)
}

// parseLimit reads the limit parameter. Absent or unparseable values
// fall back to the default; out-of-range values are clamped rather
// than rejected.
func parseLimit(raw string) int {
	if raw == "" {
		return feedUC.DefaultLimit
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return feedUC.DefaultLimit
	}
	return feedUC.ClampLimit(n)
}

// Register mounts the news routes on mux.
func Register(mux *http.ServeMux, svc feedUC.Service, defaultFeedURL string, logger *slog.Logger) {
	mux.Handle("GET /api/news", Handler{Svc: svc, DefaultFeedURL: defaultFeedURL, Logger: logger})
}
