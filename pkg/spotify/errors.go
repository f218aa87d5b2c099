package spotify

import (
	"errors"
	"fmt"
)

// Kind classifies a failed Web API call.
type Kind int

const (
	// KindUpstream is an upstream error with no more specific classification.
	KindUpstream Kind = iota

	// KindUnauthorized means the access token was rejected (HTTP 401).
	// Callers should treat the token as no longer valid.
	KindUnauthorized

	// KindForbidden means the token lacks a required scope (HTTP 403).
	// The token may still be valid for other endpoints.
	KindForbidden

	// KindRateLimited means the request was throttled (HTTP 429).
	KindRateLimited

	// KindNetwork means no response was received at all.
	KindNetwork

	// KindMalformed means the response body did not have the expected shape.
	KindMalformed
)

// String returns a short name for the kind.
func (k Kind) String() string {
	switch k {
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindRateLimited:
		return "rate limited"
	case KindNetwork:
		return "network"
	case KindMalformed:
		return "malformed"
	default:
		return "upstream"
	}
}

// Error represents a failed Spotify Web API call.
//
// The Error type carries the HTTP status, the upstream-provided message
// when one was parseable, and a Kind for dispatching on the failure.
// It implements error and supports errors.Is matching on Kind.
type Error struct {
	Kind    Kind   // Failure classification
	Status  int    // HTTP status code, 0 for network failures
	Message string // Upstream message or HTTP status text
	cause   error
}

// Error returns the error message.
func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("spotify: %s (HTTP %d): %s", e.Kind, e.Status, e.Message)
	}
	if e.cause != nil {
		return fmt.Sprintf("spotify: %s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("spotify: %s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether target is a spotify error of the same kind.
//
// This allows errors.Is() to work with *Error values used as kind markers.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// IsKind reports whether err is a spotify *Error of kind k.
func IsKind(err error, k Kind) bool {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind == k
	}
	return false
}

// Predefined errors for authorization-callback failures.
var (
	// ErrAccessDenied is returned when the user declined consent at the
	// authorization page.
	ErrAccessDenied = errors.New("spotify: authorization denied by user")

	// ErrUpstreamAuth is returned when the authorization callback carried
	// an upstream error or no access token.
	ErrUpstreamAuth = errors.New("spotify: authorization failed upstream")

	// ErrMalformedGrant is returned when the callback fragment could not
	// be interpreted as an authorization grant.
	ErrMalformedGrant = errors.New("spotify: malformed authorization grant")
)
