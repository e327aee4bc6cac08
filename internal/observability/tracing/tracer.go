// Package tracing provides OpenTelemetry tracing for the dashboard
// HTTP surface.
package tracing

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// tracer is the global tracer instance for the startpage application.
var tracer = otel.Tracer("startpage")

// GetTracer returns the global tracer for creating spans.
func GetTracer() trace.Tracer {
	return tracer
}
