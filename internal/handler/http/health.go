package http

import (
	"log/slog"
	"net/http"
	"time"

	"startpage/internal/handler/http/respond"
)

// HealthResponse is the liveness probe body. The backend has no
// persistent dependencies, so healthy means the process is serving.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// HealthHandler answers liveness probes.
type HealthHandler struct {
	Version string
	Logger  *slog.Logger
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   h.Version,
	})
}
