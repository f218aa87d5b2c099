package cmd

import (
	"testing"

	"github.com/CordisO/Vybrato/pkg/spotify"
	"github.com/mattn/go-runewidth"
)

func TestFormatProfile(t *testing.T) {
	profile := spotify.Profile{
		ID:          "cordiso",
		DisplayName: "Cordis",
		Country:     "US",
	}
	profile.Followers.Total = 7

	tests := []struct {
		name     string
		format   string
		expected string
	}{
		{
			name:     "default format",
			format:   "{{.Name}} ({{.ID}})",
			expected: "Cordis (cordiso)",
		},
		{
			name:     "followers",
			format:   "{{.Name}}: {{.Followers.Total}} followers",
			expected: "Cordis: 7 followers",
		},
		{
			name:     "country",
			format:   "{{.ID}}/{{.Country}}",
			expected: "cordiso/US",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := formatProfile(profile, tt.format)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result != tt.expected {
				t.Errorf("formatProfile(%q) = %q, expected %q", tt.format, result, tt.expected)
			}
		})
	}
}

func TestFormatProfile_NameFallback(t *testing.T) {
	profile := spotify.Profile{ID: "cordiso"}

	result, err := formatProfile(profile, "{{.Name}}")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != "cordiso" {
		t.Errorf("expected fallback to ID, got %q", result)
	}
}

func TestFormatProfile_InvalidTemplate(t *testing.T) {
	if _, err := formatProfile(spotify.Profile{}, "{{.Name"); err == nil {
		t.Error("expected error for invalid template")
	}
}

func TestPadToWidth(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		width    int
		expected string
	}{
		{
			name:     "no padding when width is 0",
			input:    "Hello",
			width:    0,
			expected: "Hello",
		},
		{
			name:     "pad short text with spaces",
			input:    "Hi",
			width:    10,
			expected: "Hi        ",
		},
		{
			name:     "exact width unchanged",
			input:    "Hello",
			width:    5,
			expected: "Hello",
		},
		{
			name:     "truncate long text with ellipsis",
			input:    "This is a very long string that needs truncation",
			width:    20,
			expected: "This is a very lo...",
		},
		{
			name:     "handle unicode characters",
			input:    "日本語",
			width:    10,
			expected: "日本語    ",
		},
		{
			name:     "truncate unicode text",
			input:    "日本語ととても長いテキスト",
			width:    10,
			expected: "日本語... ", // 日本語 is 6 columns, ... is 3, need 1 space
		},
		{
			name:     "minimum width for truncation",
			input:    "Hello",
			width:    3,
			expected: "...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := padToWidth(tt.input, tt.width)
			if result != tt.expected {
				t.Errorf("padToWidth(%q, %d) = %q, expected %q",
					tt.input, tt.width, result, tt.expected)
			}

			// Verify the result has the expected display width (if width > 0)
			if tt.width > 0 {
				resultWidth := runewidth.StringWidth(result)
				if resultWidth != tt.width {
					t.Errorf("padToWidth(%q, %d) produced width %d, expected %d",
						tt.input, tt.width, resultWidth, tt.width)
				}
			}
		})
	}
}
