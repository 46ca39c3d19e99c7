package pdfextract

import (
	"strings"
	"testing"
)

func TestFindDOI(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"plain", "See https://doi.org/10.1234/abcd.5678 for details", "10.1234/abcd.5678"},
		{"trailing punctuation", "doi: 10.1038/s41586-020-2649-2.", "10.1038/s41586-020-2649-2"},
		{"none", "no identifiers in this text", ""},
		{"too short", "10.1/x", ""},
		{"first of several", "10.1234/first then 10.5678/second", "10.1234/first"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FindDOI(tt.text); got != tt.want {
				t.Errorf("FindDOI(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestTitleFromText(t *testing.T) {
	text := `Journal of Testing, Volume 3 Issue 2
short
A Comprehensive Study of Parser Robustness
Alice Author and Bob Author
`
	got := TitleFromText(text)
	want := "A Comprehensive Study of Parser Robustness"
	if got != want {
		t.Errorf("TitleFromText() = %q, want %q", got, want)
	}
}

func TestTitleFromText_NoCandidate(t *testing.T) {
	if got := TitleFromText("short\nlines\nonly\n"); got != "" {
		t.Errorf("TitleFromText() = %q, want empty", got)
	}
}

func TestAbstractFromText_ExplicitSection(t *testing.T) {
	text := `A Comprehensive Study of Parser Robustness

Abstract
We study how parsers behave when inputs are malformed.
Our results show surprising resilience.

1. Introduction
Parsing is an old problem...`

	got := AbstractFromText(text)
	if !strings.HasPrefix(got, "We study how parsers behave") {
		t.Errorf("AbstractFromText() = %q", got)
	}
	if strings.Contains(got, "old problem") {
		t.Errorf("abstract should stop before the introduction: %q", got)
	}
}

func TestAbstractFromText_NoSection(t *testing.T) {
	text := "Some body text without any headings.\nMore text follows here."
	got := AbstractFromText(text)
	if !strings.HasPrefix(got, "Some body text") {
		t.Errorf("AbstractFromText() = %q", got)
	}
	if strings.Contains(got, "\n") {
		t.Errorf("abstract should be whitespace-collapsed: %q", got)
	}
}

func TestAbstractFromText_Truncated(t *testing.T) {
	long := strings.Repeat("word ", 1000)
	got := AbstractFromText(long)
	if len(got) > maxAbstractLen {
		t.Errorf("abstract length %d exceeds cap %d", len(got), maxAbstractLen)
	}
	if strings.HasSuffix(got, " ") {
		t.Errorf("abstract has trailing space: %q", got[len(got)-10:])
	}
}

func TestIsHeaderLine(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"Journal of Important Results", true},
		{"Volume 12, Issue 3", true},
		{"Copyright 2020 by the authors", true},
		{"A Study of Neural Networks in Production", false},
	}
	for _, tt := range tests {
		if got := isHeaderLine(tt.line); got != tt.want {
			t.Errorf("isHeaderLine(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}
