// Package weather validates coordinates and relays the upstream
// forecast payload untouched.
package weather

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"startpage/internal/observability/metrics"
	"startpage/internal/upstream"
)

// Provider fetches a forecast document for the given coordinates. The
// payload is returned as received, the caller does not reshape it.
type Provider interface {
	Forecast(ctx context.Context, lat, lon string) (json.RawMessage, error)
}

// Service fronts a forecast Provider with input validation.
type Service struct {
	provider Provider
}

// NewService creates a weather Service.
func NewService(provider Provider) Service {
	return Service{provider: provider}
}

// Forecast relays the upstream payload for lat/lon. Both coordinates
// are required; a missing one fails before any outbound request.
func (s Service) Forecast(ctx context.Context, lat, lon string) (json.RawMessage, error) {
	lat = strings.TrimSpace(lat)
	lon = strings.TrimSpace(lon)
	if lat == "" || lon == "" {
		return nil, upstream.Validation("lat and lon are required")
	}

	start := time.Now()
	payload, err := s.provider.Forecast(ctx, lat, lon)
	metrics.RecordUpstream("weather", time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return payload, nil
}
