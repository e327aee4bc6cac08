// Package weather provides the HTTP handler for the forecast relay
// endpoint.
package weather

import (
	"log/slog"
	"net/http"

	"startpage/internal/handler/http/respond"
	"startpage/internal/observability/logging"
	"startpage/internal/upstream"
	weatherUC "startpage/internal/usecase/weather"
)

// Handler relays forecast payloads for caller-supplied coordinates.
type Handler struct {
	Svc    weatherUC.Service
	Logger *slog.Logger
}

func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.WithRequestID(ctx, h.Logger)

	lat := r.URL.Query().Get("lat")
	lon := r.URL.Query().Get("lon")

	payload, err := h.Svc.Forecast(ctx, lat, lon)
	if err != nil {
		status := upstream.StatusFor(err)
		logger.Warn("weather request failed",
			slog.String("lat", lat),
			slog.String("lon", lon),
			slog.Int("status", status),
			slog.Any("error", err))
		respond.Error(w, status, err)
		return
	}

	logger.Info("weather request",
		slog.String("lat", lat),
		slog.String("lon", lon),
		slog.Int("payload_bytes", len(payload)))

	// The upstream document is relayed byte for byte.
	respond.Raw(w, http.StatusOK, payload)
}

// Register mounts the weather routes on mux.
func Register(mux *http.ServeMux, svc weatherUC.Service, logger *slog.Logger) {
	mux.Handle("GET /api/weather", Handler{Svc: svc, Logger: logger})
}
