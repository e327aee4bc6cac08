// Package article provides the HTTP handler for on-demand article
// extraction.
package article

import (
	"log/slog"
	"net/http"

	"startpage/internal/handler/http/respond"
	"startpage/internal/observability/logging"
	"startpage/internal/upstream"
	articleUC "startpage/internal/usecase/article"
)

// Handler extracts readable content for a caller-supplied page URL.
type Handler struct {
	Svc    articleUC.Service
	Logger *slog.Logger
}

func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.WithRequestID(ctx, h.Logger)

	pageURL := r.URL.Query().Get("url")

	result, err := h.Svc.Extract(ctx, pageURL)
	if err != nil {
		status := upstream.StatusFor(err)
		logger.Warn("article request failed",
			slog.String("url", pageURL),
			slog.Int("status", status),
			slog.Any("error", err))
		respond.Error(w, status, err)
		return
	}

	logger.Info("article request",
		slog.String("url", pageURL),
		slog.Int("text_bytes", len(result.Text)))

	respond.JSON(w, http.StatusOK, result)
}

// Register mounts the article routes on mux.
func Register(mux *http.ServeMux, svc articleUC.Service, logger *slog.Logger) {
	mux.Handle("GET /api/article", Handler{Svc: svc, Logger: logger})
}
