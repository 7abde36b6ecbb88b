package errors

import (
	"errors"
	"fmt"
)

// Common error types for the sync service
var (
	// Connection errors
	ErrNotConnected  = errors.New("not connected to ledger")
	ErrRefreshFailed = errors.New("token refresh failed")
	ErrInvalidState  = errors.New("invalid oauth state")
	ErrNoTenant      = errors.New("no tenant connections found")

	// Lookup errors
	ErrNotFound = errors.New("not found")

	// General errors
	ErrInvalidRequest = errors.New("invalid request")
)

// UpstreamError is returned when a remote API answers with a non-success status.
// The raw body is kept for diagnostics.
type UpstreamError struct {
	Service    string
	StatusCode int
	Body       string
}

func NewUpstreamError(service string, statusCode int, body []byte) *UpstreamError {
	return &UpstreamError{
		Service:    service,
		StatusCode: statusCode,
		Body:       string(body),
	}
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s API returned status %d: %s", e.Service, e.StatusCode, e.Body)
}

// UpstreamStatus returns the status code of the first UpstreamError in err's chain.
func UpstreamStatus(err error) (int, bool) {
	var upstream *UpstreamError
	if errors.As(err, &upstream) {
		return upstream.StatusCode, true
	}
	return 0, false
}

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
