package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the sweep.
var (
	// ErrTransport means the request never produced an HTTP response.
	ErrTransport = errors.New("transport failure")

	// ErrUpstreamStatus means the API answered with a non-2xx status.
	ErrUpstreamStatus = errors.New("upstream returned non-success status")

	// ErrInvalidPayload means the API answered 2xx with a body that is not JSON.
	ErrInvalidPayload = errors.New("invalid response payload")

	// ErrInvalidKey means a cache key does not follow the naming convention.
	ErrInvalidKey = errors.New("invalid cache key")

	// ErrNotCached means no cache file exists for the key.
	ErrNotCached = errors.New("result not cached")

	// ErrInvalidParameters means a sweep parameter or itinerary value is malformed.
	ErrInvalidParameters = errors.New("invalid sweep parameters")
)

// UpstreamError carries the status and a bounded excerpt of the body of a
// non-2xx flight-offer search response.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("upstream status %d", e.StatusCode)
	}
	return fmt.Sprintf("upstream status %d: %s", e.StatusCode, e.Body)
}

// Unwrap lets errors.Is match ErrUpstreamStatus.
func (e *UpstreamError) Unwrap() error {
	return ErrUpstreamStatus
}

// NewUpstreamError creates an UpstreamError for the given status and body.
func NewUpstreamError(statusCode int, body string) *UpstreamError {
	return &UpstreamError{StatusCode: statusCode, Body: body}
}

// NewTransportError wraps err so that it matches both ErrTransport and err.
func NewTransportError(err error) error {
	return fmt.Errorf("%w: %w", ErrTransport, err)
}

// IsUpstreamFailure reports whether err is one of the failures a search can
// produce. The sweep logs these and moves on to the next tuple.
func IsUpstreamFailure(err error) bool {
	return errors.Is(err, ErrTransport) ||
		errors.Is(err, ErrUpstreamStatus) ||
		errors.Is(err, ErrInvalidPayload)
}

// IsNotCached returns true if the error is or wraps ErrNotCached.
func IsNotCached(err error) bool {
	return errors.Is(err, ErrNotCached)
}

// IsInvalidKey returns true if the error is or wraps ErrInvalidKey.
func IsInvalidKey(err error) bool {
	return errors.Is(err, ErrInvalidKey)
}
