package styles

import (
	"strings"
	"testing"
)

func TestStatusColor(t *testing.T) {
	tests := []struct {
		status   string
		expected string // Expected color hex value
	}{
		{"pending", "#9CA3AF"},
		{"running", "#60A5FA"},
		{"succeeded", "#10B981"},
		{"failed", "#F87171"},
		{"skipped", "#F59E0B"},
		{"unknown", "#9CA3AF"}, // Should fall back to MutedColor
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			got := StatusColor(tt.status)
			if string(got) != tt.expected {
				t.Errorf("StatusColor(%q) = %q, want %q", tt.status, got, tt.expected)
			}
		})
	}
}

func TestStatusIcon(t *testing.T) {
	tests := []struct {
		status   string
		expected string
	}{
		{"pending", "○"},
		{"running", "●"},
		{"succeeded", "✓"},
		{"failed", "✗"},
		{"skipped", "⊘"},
		{"unknown", "●"}, // Should fall back to default
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			got := StatusIcon(tt.status)
			if got != tt.expected {
				t.Errorf("StatusIcon(%q) = %q, want %q", tt.status, got, tt.expected)
			}
		})
	}
}

func TestStatusLabel(t *testing.T) {
	tests := []struct {
		status   string
		expected string
	}{
		{"succeeded", "PASS"},
		{"failed", "FAIL"},
		{"skipped", "SKIP"},
		{"running", "RUN"},
		{"pending", "WAIT"},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			if got := StatusLabel(tt.status); got != tt.expected {
				t.Errorf("StatusLabel(%q) = %q, want %q", tt.status, got, tt.expected)
			}
		})
	}
}

func TestBadge(t *testing.T) {
	if got := Badge("failed"); !strings.Contains(got, "FAIL") {
		t.Errorf("Badge(failed) = %q, want it to contain FAIL", got)
	}
}
