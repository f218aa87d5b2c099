package token

import (
	"strconv"
	"time"
)

// Record is the persisted access token and its absolute expiry.
//
// A Record is created when an authorization grant is parsed, read by
// every feature fetch, and cleared when the upstream API rejects the
// token. There is no refresh token: once expired, the user authorizes
// again.
type Record struct {
	AccessToken string // Opaque bearer credential
	ExpiresAt   int64  // Absolute expiry, milliseconds since epoch
}

// Valid reports whether the record is usable at now.
func (r Record) Valid(now time.Time) bool {
	return r.AccessToken != "" && now.UnixMilli() < r.ExpiresAt
}

// Valid reports whether a stored token/expiry pair is usable at now.
//
// The expiry is the stored string form (stringified milliseconds since
// epoch). Fails closed: an empty token, an empty expiry, or an expiry
// that does not parse as an integer is invalid rather than an error.
func Valid(accessToken, expiresAt string, now time.Time) bool {
	if accessToken == "" || expiresAt == "" {
		return false
	}

	ms, err := strconv.ParseInt(expiresAt, 10, 64)
	if err != nil {
		return false
	}

	return now.UnixMilli() < ms
}
