package upstream_test

import (
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"startpage/internal/upstream"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", upstream.Validation("lat and lon are required"), http.StatusBadRequest},
		{"fetch", upstream.Fetch(io.EOF, "GET failed"), http.StatusBadGateway},
		{"parse", upstream.Parse(errors.New("bad xml"), "feed error"), http.StatusBadGateway},
		{"extract", upstream.Extract(nil, "no readable content"), http.StatusBadGateway},
		{"unclassified", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, upstream.StatusFor(tt.err))
		})
	}
}

func TestFailureMessage(t *testing.T) {
	err := upstream.Fetch(io.ErrUnexpectedEOF, "feed fetch failed: %s", "timeout")
	assert.Equal(t, "feed fetch failed: timeout", err.Error())
	assert.True(t, errors.Is(err, upstream.ErrFetch))
	assert.False(t, errors.Is(err, upstream.ErrParse))

	var f *upstream.Failure
	if assert.True(t, errors.As(err, &f)) {
		// The transport cause is kept for logging but never leaks
		// into the message.
		assert.Equal(t, io.ErrUnexpectedEOF, f.Cause())
		assert.NotContains(t, err.Error(), io.ErrUnexpectedEOF.Error())
	}
}

func TestValidationMessageFallback(t *testing.T) {
	err := &upstream.Failure{Category: upstream.ErrValidation}
	assert.Equal(t, "invalid request", err.Error())
}
