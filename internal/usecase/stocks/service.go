// Package stocks resolves ticker symbols to daily quotes. The key
// property is per-symbol failure isolation: one bad ticker never fails
// the batch, it is silently dropped from the output.
package stocks

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"startpage/internal/observability/metrics"
)

// Defaults for batch resolution.
const (
	DefaultWorkers = 4
	DefaultTimeout = 5 * time.Second
)

// Quote is one resolved symbol.
type Quote struct {
	Symbol        string  `json:"symbol"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"change_percent"`
}

// HistorySource fetches recent daily closing prices for one symbol,
// oldest first. At least the most recent close is required; the
// previous close may be absent for newly listed symbols.
type HistorySource interface {
	DailyCloses(ctx context.Context, symbol string) ([]float64, error)
}

// Service resolves symbol batches against a HistorySource.
type Service struct {
	source  HistorySource
	workers int
	timeout time.Duration
	logger  *slog.Logger
}

// NewService creates a stocks Service. workers caps concurrent
// resolutions within one batch; timeout bounds each symbol.
func NewService(source HistorySource, workers int, timeout time.Duration, logger *slog.Logger) Service {
	if workers < 1 {
		workers = DefaultWorkers
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return Service{source: source, workers: workers, timeout: timeout, logger: logger}
}

// Resolve fetches a quote for every resolvable input symbol. Symbols
// are trimmed and uppercased; duplicates are resolved independently.
// Output order matches input order regardless of completion order;
// symbols that fail or time out are omitted, never reported as error
// entries.
func (s Service) Resolve(ctx context.Context, symbols []string) []Quote {
	cleaned := make([]string, 0, len(symbols))
	for _, sym := range symbols {
		sym = strings.ToUpper(strings.TrimSpace(sym))
		if sym != "" {
			cleaned = append(cleaned, sym)
		}
	}
	if len(cleaned) == 0 {
		return []Quote{}
	}

	// One slot per input symbol keeps output order independent of
	// completion order; failed slots stay nil and are compacted out.
	slots := make([]*Quote, len(cleaned))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(s.workers)
	for i, sym := range cleaned {
		eg.Go(func() error {
			symCtx, cancel := context.WithTimeout(egCtx, s.timeout)
			defer cancel()

			start := time.Now()
			closes, err := s.source.DailyCloses(symCtx, sym)
			metrics.RecordUpstream("quote", time.Since(start), err)
			if err != nil || len(closes) == 0 {
				metrics.RecordQuoteSkipped()
				s.logger.Warn("skipping unresolvable symbol",
					slog.String("symbol", sym),
					slog.Any("error", err))
				return nil // isolation: never fail the batch
			}

			q := derive(sym, closes)
			slots[i] = &q
			return nil
		})
	}
	// Workers only ever return nil; Wait is just a join point.
	_ = eg.Wait()

	quotes := make([]Quote, 0, len(slots))
	for _, q := range slots {
		if q != nil {
			quotes = append(quotes, *q)
		}
	}
	return quotes
}

// derive computes price and daily change from the closing sequence.
// With a single close available the previous close defaults to the
// current one, yielding zero change. change_percent is zero whenever
// the previous close resolves to zero, avoiding division by zero.
func derive(symbol string, closes []float64) Quote {
	price := closes[len(closes)-1]
	prev := price
	if len(closes) > 1 {
		prev = closes[len(closes)-2]
	}
	if prev == 0 {
		prev = price
	}

	change := price - prev
	var pct float64
	if prev != 0 {
		pct = change / prev * 100
	}

	return Quote{
		Symbol:        symbol,
		Price:         price,
		Change:        change,
		ChangePercent: pct,
	}
}
