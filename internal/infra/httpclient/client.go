// Package httpclient builds the bounded HTTP clients used for every
// outbound upstream call. Each client carries an explicit timeout so a
// single slow upstream can never hang a dashboard request.
package httpclient

import (
	"crypto/tls"
	"net/http"
	"time"
)

// UserAgent identifies the dashboard to upstream services.
const UserAgent = "StartPage/1.0"

// DefaultTimeout bounds a single upstream request end to end.
const DefaultTimeout = 5 * time.Second

// New returns an *http.Client with the given overall timeout.
// A non-positive timeout falls back to DefaultTimeout.
func New(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
		},
	}
}
