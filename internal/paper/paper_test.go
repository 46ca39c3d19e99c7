package paper

import (
	"strings"
	"testing"
)

func TestVenue(t *testing.T) {
	tests := []struct {
		name  string
		extra map[string]string
		want  string
	}{
		{"journal preferred", map[string]string{"journal": "Nature", "booktitle": "Proc"}, "Nature"},
		{"booktitle fallback", map[string]string{"booktitle": "Proc"}, "Proc"},
		{"neither", map[string]string{"pages": "1--2"}, ""},
		{"nil extra", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Paper{Extra: tt.extra}
			if got := p.Venue(); got != tt.want {
				t.Errorf("Venue() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPreview(t *testing.T) {
	p := &Paper{
		Key:     "Smith2020",
		Title:   "Deep Learning in Medicine",
		Authors: []string{"A. Smith", "B. Jones"},
		Year:    2020,
	}
	got := p.Preview()
	if !strings.Contains(got, "Deep Learning in Medicine") {
		t.Errorf("Preview() = %q, missing title", got)
	}
	if !strings.Contains(got, "(2020)") {
		t.Errorf("Preview() = %q, missing year", got)
	}
}

func TestPreview_Defaults(t *testing.T) {
	p := &Paper{Title: "Untitled Study"}
	got := p.Preview()
	if !strings.Contains(got, "unknown authors") {
		t.Errorf("Preview() = %q, want unknown authors placeholder", got)
	}
	if !strings.Contains(got, "(n.d.)") {
		t.Errorf("Preview() = %q, want n.d. for missing year", got)
	}
}

func TestPreview_TruncatesLongTitle(t *testing.T) {
	p := &Paper{Title: strings.Repeat("x", 200), Year: 2020}
	got := p.Preview()
	if !strings.Contains(got, "...") {
		t.Errorf("Preview() = %q, want truncation marker", got)
	}
	if len(got) > 120 {
		t.Errorf("Preview() too long: %d chars", len(got))
	}
}
