package main

import "testing"

func TestTruncateString(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		maxLen int
		want   string
	}{
		{"shorter than max", "short title", 20, "short title"},
		{"exactly max", "12345", 5, "12345"},
		{"truncated with ellipsis", "a very long paper title indeed", 10, "a very ..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncateString(tt.in, tt.maxLen); got != tt.want {
				t.Errorf("truncateString(%q, %d) = %q, want %q", tt.in, tt.maxLen, got, tt.want)
			}
		})
	}
}

func TestFormatAuthors(t *testing.T) {
	tests := []struct {
		name     string
		authors  []string
		maxCount int
		want     string
	}{
		{"empty", nil, 3, ""},
		{"single", []string{"Jane Smith"}, 3, "Jane Smith"},
		{"at limit", []string{"A", "B", "C"}, 3, "A, B, C"},
		{"over limit gets et al", []string{"A", "B", "C", "D"}, 2, "A, B, et al."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatAuthors(tt.authors, tt.maxCount); got != tt.want {
				t.Errorf("formatAuthors(%v, %d) = %q, want %q", tt.authors, tt.maxCount, got, tt.want)
			}
		})
	}
}
