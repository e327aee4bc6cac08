package http

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsHandler exposes the Prometheus scrape endpoint over the
// default registry, where all collectors in observability/metrics are
// registered.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
