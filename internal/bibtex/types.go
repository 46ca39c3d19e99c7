// Package bibtex parses loosely-specified, community-authored .bib text
// into validated paper records. Parsing never stops at the first problem:
// malformed entries and fields are reported as diagnostics and the rest
// of the file is still processed.
package bibtex

import "fmt"

// RawEntry is one @type{key, ...} block as found by the tokenizer.
// Body is the interior text between the first top-level comma and the
// closing delimiter; Fields is populated by ExtractFields.
type RawEntry struct {
	// Type is the entry type (article, inproceedings, ...), lowercased.
	Type string
	// RawKey is the citation key exactly as written, whitespace and all.
	RawKey string
	// Body is the raw field region of the entry.
	Body string
	// Fields are the extracted (name, value) pairs in source order.
	// Values retain their original brace or quote delimiters.
	Fields []RawField
	// Line is the 1-based line of the entry's @.
	Line int
	// BodyLine is the 1-based line where Body begins.
	BodyLine int
}

// RawField is one name = value pair with its original value delimiters.
type RawField struct {
	Name  string
	Value string
	Line  int
}

// Kind classifies a diagnostic.
type Kind string

// Diagnostic kinds. None of these abort the run; callers decide whether
// an entry was rejected (missing title) or accepted with caveats.
const (
	KindUnterminatedEntry       Kind = "unterminated_entry"
	KindMalformedField          Kind = "malformed_field"
	KindMissingRequiredField    Kind = "missing_required_field"
	KindMissingRecommendedField Kind = "missing_recommended_field"
	KindFieldFormatWarning      Kind = "field_format_warning"
	KindUnsupportedEscape       Kind = "unsupported_escape"
	KindKeyCollisionResolved    Kind = "key_collision_resolved"
	KindDuplicateKey            Kind = "duplicate_key"
	KindEmptyInput              Kind = "empty_input"
)

// Diagnostic is a non-fatal, entry-scoped report of a parsing or
// validation issue.
type Diagnostic struct {
	Kind    Kind   `json:"kind"`
	Key     string `json:"key,omitempty"` // sanitized entry key, if known
	Message string `json:"message"`
	Line    int    `json:"line"` // 1-based source line
}

// Fatal reports whether the diagnostic means its entry was rejected
// rather than accepted with caveats.
func (d Diagnostic) Fatal() bool {
	return d.Kind == KindMissingRequiredField || d.Kind == KindUnterminatedEntry
}

func (d Diagnostic) String() string {
	if d.Key != "" {
		return fmt.Sprintf("line %d [%s] %s: %s", d.Line, d.Kind, d.Key, d.Message)
	}
	return fmt.Sprintf("line %d [%s]: %s", d.Line, d.Kind, d.Message)
}
