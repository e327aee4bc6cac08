// Package stocks provides the HTTP handler for the quote batch
// endpoint.
package stocks

import (
	"log/slog"
	"net/http"
	"strings"

	"startpage/internal/handler/http/respond"
	"startpage/internal/observability/logging"
	stocksUC "startpage/internal/usecase/stocks"
)

// Response wraps the resolved quote batch.
type Response struct {
	Quotes []stocksUC.Quote `json:"quotes"`
}

// Handler resolves comma-separated ticker lists.
type Handler struct {
	Svc    stocksUC.Service
	Logger *slog.Logger
}

// ServeHTTP resolves the tickers parameter. The endpoint never errors:
// an empty or missing list yields an empty quotes array, and symbols
// that fail resolution are simply absent from the output.
func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.WithRequestID(ctx, h.Logger)

	raw := r.URL.Query().Get("tickers")
	var symbols []string
	if strings.TrimSpace(raw) != "" {
		symbols = strings.Split(raw, ",")
	}

	quotes := h.Svc.Resolve(ctx, symbols)

	logger.Info("stocks request",
		slog.Int("requested", len(symbols)),
		slog.Int("resolved", len(quotes)))

	respond.JSON(w, http.StatusOK, Response{Quotes: quotes})
}

// Register mounts the stocks routes on mux.
func Register(mux *http.ServeMux, svc stocksUC.Service, logger *slog.Logger) {
	mux.Handle("GET /api/stocks", Handler{Svc: svc, Logger: logger})
}
