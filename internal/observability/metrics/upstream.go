package metrics

import (
	"errors"
	"time"

	"startpage/internal/upstream"
)

// RecordUpstream records one upstream call with its duration and
// classified outcome. A nil error is a success; classified failures
// map to their category label, anything else counts as fetch_error.
func RecordUpstream(source string, duration time.Duration, err error) {
	UpstreamRequestDuration.WithLabelValues(source).Observe(duration.Seconds())
	UpstreamRequestsTotal.WithLabelValues(source, outcomeFor(err)).Inc()
}

// RecordQuoteSkipped records a ticker symbol dropped from a batch.
func RecordQuoteSkipped() {
	QuoteSymbolsSkipped.Inc()
}

func outcomeFor(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, upstream.ErrParse):
		return "parse_error"
	case errors.Is(err, upstream.ErrExtract):
		return "extract_error"
	default:
		return "fetch_error"
	}
}
