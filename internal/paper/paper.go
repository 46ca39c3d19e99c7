// Package paper defines the core domain type for ingested research papers.
package paper

import (
	"fmt"
	"strings"
)

// Paper represents one validated bibliographic record. It is the unit
// handed to storage and the shape every ingestion path (BibTeX parsing,
// PDF extraction) must produce.
type Paper struct {
	// Identity
	Key string `json:"key"` // Sanitized citation key, unique within a run

	// Metadata
	EntryType string   `json:"entry_type"` // article, inproceedings, etc. (lowercase)
	Title     string   `json:"title"`
	Authors   []string `json:"authors,omitempty"`
	Year      int      `json:"year,omitempty"` // 0 if unknown
	Abstract  string   `json:"abstract,omitempty"`
	DOI       string   `json:"doi,omitempty"`

	// Extra holds normalized fields not promoted to a named attribute
	// (journal, booktitle, pages, volume, ...). Nothing is discarded.
	Extra map[string]string `json:"extra,omitempty"`

	// Line is the 1-based source line where the entry started.
	// Zero for papers that did not come from a .bib file.
	Line int `json:"line,omitempty"`
}

// Venue returns the publication venue, preferring journal over booktitle.
func (p *Paper) Venue() string {
	if v := p.Extra["journal"]; v != "" {
		return v
	}
	return p.Extra["booktitle"]
}

// AuthorsText returns the authors joined for display and indexing.
func (p *Paper) AuthorsText() string {
	return strings.Join(p.Authors, ", ")
}

const (
	previewTitleLen   = 60
	previewAuthorsLen = 30
)

// Preview returns a one-line summary of the paper for listings.
func (p *Paper) Preview() string {
	title := truncate(p.Title, previewTitleLen)
	authors := truncate(p.AuthorsText(), previewAuthorsLen)
	if authors == "" {
		authors = "unknown authors"
	}
	year := "n.d."
	if p.Year != 0 {
		year = fmt.Sprintf("%d", p.Year)
	}
	return fmt.Sprintf("%s - %s (%s)", title, authors, year)
}

// truncate shortens s to maxLen runes, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}
