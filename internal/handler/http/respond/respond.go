// Package respond provides utilities for sending HTTP responses in
// JSON format with a uniform error body.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// JSON writes a JSON response with the given status code and data.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			// Headers are already sent; log and move on.
			slog.Default().Error("failed to encode JSON response",
				slog.Int("status_code", code),
				slog.Any("error", err))
		}
	}
}

// Raw writes a pre-serialized JSON payload unchanged. Used by the
// weather relay, which passes the upstream body through as-is.
func Raw(w http.ResponseWriter, code int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(body); err != nil {
		slog.Default().Error("failed to write raw response",
			slog.Int("status_code", code),
			slog.Any("error", err))
	}
}

// Error writes a JSON error response `{"error": msg}` with the given
// status code.
func Error(w http.ResponseWriter, code int, err error) {
	JSON(w, code, map[string]string{"error": err.Error()})
}
