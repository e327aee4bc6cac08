// Package stats provides the HTTP handler for the host telemetry
// endpoint.
package stats

import (
	"log/slog"
	"net/http"

	"startpage/internal/handler/http/respond"
	"startpage/internal/observability/logging"
	"startpage/internal/usecase/telemetry"
)

// Handler serves the current telemetry snapshot.
type Handler struct {
	Collector *telemetry.Collector
	Logger    *slog.Logger
}

// ServeHTTP collects and returns a snapshot. Collection degrades
// internally instead of failing, so this endpoint always answers 200.
func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.WithRequestID(ctx, h.Logger)

	snapshot := h.Collector.Collect(ctx)

	logger.Info("server stats request",
		slog.Float64("cpu_percent", snapshot.CPUPercent),
		slog.Int("process_count", len(snapshot.Processes)))

	respond.JSON(w, http.StatusOK, snapshot)
}

// Register mounts the stats routes on mux.
func Register(mux *http.ServeMux, collector *telemetry.Collector, logger *slog.Logger) {
	mux.Handle("GET /api/server-stats", Handler{Collector: collector, Logger: logger})
}
