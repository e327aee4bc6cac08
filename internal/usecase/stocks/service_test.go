package stocks

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	mu     sync.Mutex
	calls  []string
	closes map[string][]float64
	errs   map[string]error
	delay  map[string]time.Duration
}

func (s *stubSource) DailyCloses(ctx context.Context, symbol string) ([]float64, error) {
	s.mu.Lock()
	s.calls = append(s.calls, symbol)
	d := s.delay[symbol]
	s.mu.Unlock()

	if d > 0 {
		select {
		case <-time.After(d):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err, ok := s.errs[symbol]; ok {
		return nil, err
	}
	return s.closes[symbol], nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestResolve_FailedSymbolIsDropped(t *testing.T) {
	src := &stubSource{
		closes: map[string][]float64{
			"AAPL": {190, 195},
			"MSFT": {400, 410},
		},
		errs: map[string]error{
			"BADSYM": errors.New("no data"),
		},
	}
	svc := NewService(src, 4, time.Second, testLogger())

	quotes := svc.Resolve(context.Background(), []string{"AAPL", "BADSYM", "MSFT"})

	require.Len(t, quotes, 2)
	assert.Equal(t, "AAPL", quotes[0].Symbol)
	assert.Equal(t, "MSFT", quotes[1].Symbol)
}

func TestResolve_OrderMatchesInputNotCompletion(t *testing.T) {
	src := &stubSource{
		closes: map[string][]float64{
			"SLOW": {10, 11},
			"FAST": {20, 22},
		},
		delay: map[string]time.Duration{"SLOW": 50 * time.Millisecond},
	}
	svc := NewService(src, 4, time.Second, testLogger())

	quotes := svc.Resolve(context.Background(), []string{"SLOW", "FAST"})

	require.Len(t, quotes, 2)
	assert.Equal(t, "SLOW", quotes[0].Symbol)
	assert.Equal(t, "FAST", quotes[1].Symbol)
}

func TestResolve_NormalizesAndKeepsDuplicates(t *testing.T) {
	src := &stubSource{closes: map[string][]float64{"AAPL": {100, 101}}}
	svc := NewService(src, 4, time.Second, testLogger())

	quotes := svc.Resolve(context.Background(), []string{" aapl ", "", "AAPL"})

	require.Len(t, quotes, 2)
	assert.Equal(t, "AAPL", quotes[0].Symbol)
	assert.Equal(t, "AAPL", quotes[1].Symbol)
	src.mu.Lock()
	defer src.mu.Unlock()
	assert.Len(t, src.calls, 2)
}

func TestResolve_EmptyInputIsEmptyNotNil(t *testing.T) {
	svc := NewService(&stubSource{}, 4, time.Second, testLogger())

	quotes := svc.Resolve(context.Background(), nil)

	require.NotNil(t, quotes)
	assert.Empty(t, quotes)

	quotes = svc.Resolve(context.Background(), []string{"  ", ""})
	require.NotNil(t, quotes)
	assert.Empty(t, quotes)
}

func TestResolve_PerSymbolTimeout(t *testing.T) {
	src := &stubSource{
		closes: map[string][]float64{
			"HANG": {1, 2},
			"OK":   {50, 55},
		},
		delay: map[string]time.Duration{"HANG": time.Second},
	}
	svc := NewService(src, 4, 20*time.Millisecond, testLogger())

	quotes := svc.Resolve(context.Background(), []string{"HANG", "OK"})

	require.Len(t, quotes, 1)
	assert.Equal(t, "OK", quotes[0].Symbol)
}

func TestResolve_EmptyHistoryIsDropped(t *testing.T) {
	src := &stubSource{closes: map[string][]float64{"THIN": {}}}
	svc := NewService(src, 4, time.Second, testLogger())

	quotes := svc.Resolve(context.Background(), []string{"THIN"})

	assert.Empty(t, quotes)
}

func TestDerive(t *testing.T) {
	tests := []struct {
		name   string
		closes []float64
		want   Quote
	}{
		{
			name:   "two closes",
			closes: []float64{100, 110},
			want:   Quote{Symbol: "X", Price: 110, Change: 10, ChangePercent: 10},
		},
		{
			name:   "single close yields zero change",
			closes: []float64{42.5},
			want:   Quote{Symbol: "X", Price: 42.5},
		},
		{
			name:   "zero previous close avoids division",
			closes: []float64{0, 7},
			want:   Quote{Symbol: "X", Price: 7},
		},
		{
			name:   "negative change",
			closes: []float64{200, 150},
			want:   Quote{Symbol: "X", Price: 150, Change: -50, ChangePercent: -25},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, derive("X", tt.closes))
		})
	}
}
