package model

import (
	"errors"
	"fmt"
	"strings"
)

// NotFoundError reports a zone lookup that matched nothing, carrying the
// available names so callers can re-prompt without a second round trip.
type NotFoundError struct {
	Query     string
	Available []string
}

func (e *NotFoundError) Error() string {
	if len(e.Available) == 0 {
		return fmt.Sprintf("zone %q not found", e.Query)
	}
	return fmt.Sprintf("zone %q not found (available: %s)", e.Query, strings.Join(e.Available, ", "))
}

// IsNotFound reports whether any error in the chain is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// InvalidInputError rejects caller-supplied values before any computation
// (non-positive price, holding period, corridor width, and the like).
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsInvalidInput reports whether any error in the chain is an InvalidInputError.
func IsInvalidInput(err error) bool {
	var ii *InvalidInputError
	return errors.As(err, &ii)
}

// RouteUnavailableError wraps a distance-provider or geocoding failure for a
// corridor search. Callers may retry; the engines never do.
type RouteUnavailableError struct {
	Origin      string
	Destination string
	Err         error
}

func (e *RouteUnavailableError) Error() string {
	return fmt.Sprintf("route %s -> %s unavailable: %v", e.Origin, e.Destination, e.Err)
}

func (e *RouteUnavailableError) Unwrap() error {
	return e.Err
}

// IsRouteUnavailable reports whether any error in the chain is a
// RouteUnavailableError.
func IsRouteUnavailable(err error) bool {
	var ru *RouteUnavailableError
	return errors.As(err, &ru)
}

// MalformedRecordError signals a reference-data record missing a required
// numeric field or carrying one outside its legal range. This is fatal to
// the call: the engines never fabricate a substitute value.
type MalformedRecordError struct {
	Zone   string
	Field  string
	Reason string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed zone record %q: %s: %s", e.Zone, e.Field, e.Reason)
}

// IsMalformedRecord reports whether any error in the chain is a
// MalformedRecordError.
func IsMalformedRecord(err error) bool {
	var mr *MalformedRecordError
	return errors.As(err, &mr)
}
