// Package upstream defines the failure taxonomy shared by every data
// source the dashboard aggregates. Callers never see raw transport
// errors; each failure is classified into one of the sentinel
// categories below and carries a human-readable message.
package upstream

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel categories. Handlers map these to HTTP statuses via StatusFor.
var (
	// ErrValidation indicates missing or empty required caller input.
	// It is detected before any outbound call is made.
	ErrValidation = errors.New("invalid request")

	// ErrFetch indicates a network failure, timeout, or non-2xx status
	// from a third-party source.
	ErrFetch = errors.New("upstream fetch failed")

	// ErrParse indicates a payload was received but is structurally
	// unparseable (e.g. a document that is neither RSS nor Atom).
	ErrParse = errors.New("upstream payload unparseable")

	// ErrExtract indicates a page was downloaded but no readable
	// content could be extracted from it.
	ErrExtract = errors.New("content extraction failed")
)

// Failure wraps an underlying error with its category and a message
// safe to return to the caller.
type Failure struct {
	Category error  // one of the sentinel categories above
	Message  string // human-readable, no transport internals
	Err      error  // underlying cause, logged but never serialized
}

func (f *Failure) Error() string {
	if f.Message != "" {
		return f.Message
	}
	return f.Category.Error()
}

func (f *Failure) Unwrap() error { return f.Category }

// Cause returns the underlying error for logging.
func (f *Failure) Cause() error { return f.Err }

// Validation builds a caller-input failure.
func Validation(msg string) error {
	return &Failure{Category: ErrValidation, Message: msg}
}

// Fetch classifies err as a fetch failure with a formatted message.
func Fetch(err error, format string, args ...any) error {
	return &Failure{Category: ErrFetch, Message: fmt.Sprintf(format, args...), Err: err}
}

// Parse classifies err as a parse failure. The message includes the
// parse failure reason so callers can see why the payload was rejected.
func Parse(err error, format string, args ...any) error {
	return &Failure{Category: ErrParse, Message: fmt.Sprintf(format, args...), Err: err}
}

// Extract classifies err as an extraction failure.
func Extract(err error, format string, args ...any) error {
	return &Failure{Category: ErrExtract, Message: fmt.Sprintf(format, args...), Err: err}
}

// StatusFor maps a classified failure to its HTTP status code.
// Validation failures are the caller's fault (400); everything that
// went wrong upstream is a bad gateway (502). Unclassified errors are
// treated as internal.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrFetch), errors.Is(err, ErrParse), errors.Is(err, ErrExtract):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
