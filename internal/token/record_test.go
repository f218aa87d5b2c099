package token

import (
	"testing"
	"time"
)

// TestValid covers the fail-closed validity rules for the stored
// string form.
func TestValid(t *testing.T) {
	tests := []struct {
		name        string
		accessToken string
		expiresAt   string
		now         time.Time
		want        bool
	}{
		{
			name:        "valid token before expiry",
			accessToken: "abc123",
			expiresAt:   "3600000",
			now:         time.UnixMilli(3_000_000),
			want:        true,
		},
		{
			name:        "expired exactly at boundary",
			accessToken: "abc123",
			expiresAt:   "3600000",
			now:         time.UnixMilli(3_600_000),
			want:        false,
		},
		{
			name:        "expired after boundary",
			accessToken: "abc123",
			expiresAt:   "3600000",
			now:         time.UnixMilli(3_600_001),
			want:        false,
		},
		{
			name:        "empty token",
			accessToken: "",
			expiresAt:   "3600000",
			now:         time.UnixMilli(0),
			want:        false,
		},
		{
			name:        "empty expiry",
			accessToken: "abc123",
			expiresAt:   "",
			now:         time.UnixMilli(0),
			want:        false,
		},
		{
			name:        "non-numeric expiry fails closed",
			accessToken: "abc123",
			expiresAt:   "tomorrow",
			now:         time.UnixMilli(0),
			want:        false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Valid(tt.accessToken, tt.expiresAt, tt.now); got != tt.want {
				t.Errorf("Valid(%q, %q, %d) = %v, want %v",
					tt.accessToken, tt.expiresAt, tt.now.UnixMilli(), got, tt.want)
			}
		})
	}
}

// TestRecord_Valid covers the parsed-record validity check.
func TestRecord_Valid(t *testing.T) {
	rec := Record{AccessToken: "abc123", ExpiresAt: 3_600_000}

	if !rec.Valid(time.UnixMilli(3_000_000)) {
		t.Error("expected record valid before expiry")
	}
	if rec.Valid(time.UnixMilli(3_600_001)) {
		t.Error("expected record invalid after expiry")
	}
	if (Record{ExpiresAt: 3_600_000}).Valid(time.UnixMilli(0)) {
		t.Error("expected record with empty token invalid")
	}
}
