package requestid

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromContext(t *testing.T) {
	assert.Equal(t, "", FromContext(context.Background()))

	ctx := WithRequestID(context.Background(), "test-id-123")
	assert.Equal(t, "test-id-123", FromContext(ctx))
}

func TestMiddlewareGeneratesID(t *testing.T) {
	var capturedID string
	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedID = FromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.NotEmpty(t, capturedID)
	_, err := uuid.Parse(capturedID)
	assert.NoError(t, err)
	assert.Equal(t, capturedID, rec.Header().Get(RequestIDHeader))
}

func TestMiddlewarePropagatesExistingID(t *testing.T) {
	var capturedID string
	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedID = FromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "client-supplied-id")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, "client-supplied-id", capturedID)
	assert.Equal(t, "client-supplied-id", rec.Header().Get(RequestIDHeader))
}
