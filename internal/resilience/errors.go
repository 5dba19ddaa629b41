// Package resilience classifies provider failures and retries the transient
// ones. It is tuned for the external surfaces this tool talks to: the Google
// Maps web services, HTTP snapshot hosts and FTP mirrors.
package resilience

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"syscall"
)

// retryable is implemented by errors that declare their own retryability.
type retryable interface {
	Transient() bool
}

// Transient marks err as retryable regardless of its concrete type. Use it
// where the caller knows the failure mode better than the classifier, such
// as an FTP transfer cut mid-stream.
func Transient(err error) error {
	if err == nil {
		return nil
	}
	return &transientError{err: err}
}

type transientError struct{ err error }

func (e *transientError) Error() string   { return e.err.Error() }
func (e *transientError) Unwrap() error   { return e.err }
func (e *transientError) Transient() bool { return true }

// StatusError is a non-success HTTP response. Retryability follows the
// status code.
type StatusError struct {
	URL    string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d", e.URL, e.Status)
}

// Transient reports whether the status is worth retrying: request timeout,
// throttling, or any server-side failure.
func (e *StatusError) Transient() bool {
	return e.Status == 408 || e.Status == 429 || e.Status >= 500
}

// IsTransient reports whether err looks safe to retry. It honours errors
// that classify themselves, then falls back to network-level checks and
// message patterns seen from the Maps APIs and flaky mirrors.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	var r retryable
	if errors.As(err, &r) {
		return r.Transient()
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	if errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.EPIPE) {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, p := range transientPatterns {
		if strings.Contains(msg, p) {
			return true
		}
	}
	return false
}

// transientPatterns match wrapped errors whose types are lost across client
// boundaries. The first two are Google Maps API status strings.
var transientPatterns = []string{
	"over_query_limit",
	"unknown_error",
	"rate limit",
	"connection reset by peer",
	"broken pipe",
	"no such host",
	"tls handshake timeout",
	"i/o timeout",
	"temporary failure",
}
