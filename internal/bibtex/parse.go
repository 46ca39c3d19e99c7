package bibtex

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ndowell/bibgest/internal/paper"
)

// yearRe extracts the first 4-digit run anywhere in a year value.
// Real-world entries carry things like "circa 1998" or "2020 (preprint)".
var yearRe = regexp.MustCompile(`\d{4}`)

// authorSepRe splits author lists on the conventional "and" separator.
var authorSepRe = regexp.MustCompile(`(?i)\s+and\s+`)

// promotedFields are promoted to named Paper attributes; everything
// else lands in Extra.
var promotedFields = map[string]bool{
	"title":    true,
	"author":   true,
	"year":     true,
	"abstract": true,
	"doi":      true,
}

// recommendedFields yield a diagnostic when absent or empty, but the
// entry is still accepted.
var recommendedFields = [...]string{"author", "year", "abstract"}

// Parse runs the full pipeline over the text of one .bib source and
// returns the accepted papers in file order of first acceptance, plus
// every diagnostic in the order it was raised. A failure in one entry
// never aborts the run; the only run-level condition is an empty input
// buffer, reported as a single EmptyInput diagnostic.
func Parse(src string) ([]paper.Paper, []Diagnostic) {
	if strings.TrimSpace(src) == "" {
		return nil, []Diagnostic{{
			Kind:    KindEmptyInput,
			Message: "input buffer is empty",
			Line:    1,
		}}
	}

	tok := NewTokenizer(src)
	keys := newKeySet()
	var papers []paper.Paper
	var diags []Diagnostic
	byKey := make(map[string]int)

	drained := 0
	drain := func() {
		all := tok.Diagnostics()
		diags = append(diags, all[drained:]...)
		drained = len(all)
	}

	position := 0
	for {
		entry, ok := tok.Next()
		drain()
		if !ok {
			break
		}
		position++

		fields, fieldDiags := ExtractFields(entry.Body, entry.BodyLine)
		entry.Fields = fields
		diags = append(diags, fieldDiags...)

		sanitized := SanitizeKey(entry.RawKey, position)
		key, renamed := keys.claim(sanitized, entry.RawKey)
		if renamed {
			diags = append(diags, Diagnostic{
				Kind: KindKeyCollisionResolved,
				Key:  key,
				Message: fmt.Sprintf("raw key %q sanitizes to %q, which is taken; using %q",
					entry.RawKey, sanitized, key),
				Line: entry.Line,
			})
		}

		norm := make(map[string]string, len(fields))
		for _, f := range fields {
			name := strings.ToLower(strings.TrimSpace(f.Name))
			value := Normalize(StripDelimiters(f.Value))
			for _, macro := range UnknownMacros(value) {
				diags = append(diags, Diagnostic{
					Kind:    KindUnsupportedEscape,
					Key:     key,
					Message: fmt.Sprintf("unsupported escape %q in field %q left as-is", macro, name),
					Line:    f.Line,
				})
			}
			// Duplicate field names within an entry: last one wins.
			norm[name] = value
		}

		p, entryDiags := assemble(entry, key, norm)
		diags = append(diags, entryDiags...)
		if p == nil {
			continue
		}

		if prev, dup := byKey[key]; dup {
			diags = append(diags, Diagnostic{
				Kind: KindDuplicateKey,
				Key:  key,
				Message: fmt.Sprintf("duplicate key %q: entry at line %d replaces entry at line %d",
					key, entry.Line, papers[prev].Line),
				Line: entry.Line,
			})
			papers[prev] = *p
		} else {
			byKey[key] = len(papers)
			papers = append(papers, *p)
		}
	}

	return papers, diags
}

// assemble validates one entry's normalized fields and builds its
// Paper. A nil Paper means the entry was rejected.
func assemble(entry *RawEntry, key string, norm map[string]string) (*paper.Paper, []Diagnostic) {
	var diags []Diagnostic

	if norm["title"] == "" {
		return nil, []Diagnostic{{
			Kind:    KindMissingRequiredField,
			Key:     key,
			Message: `missing required field "title"; entry rejected`,
			Line:    entry.Line,
		}}
	}

	for _, name := range recommendedFields {
		if norm[name] == "" {
			diags = append(diags, Diagnostic{
				Kind:    KindMissingRecommendedField,
				Key:     key,
				Message: fmt.Sprintf("recommended field %q is missing or empty", name),
				Line:    entry.Line,
			})
		}
	}

	p := &paper.Paper{
		Key:       key,
		EntryType: entry.Type,
		Title:     norm["title"],
		Authors:   SplitAuthors(norm["author"]),
		Abstract:  norm["abstract"],
		Line:      entry.Line,
	}

	if y := norm["year"]; y != "" {
		if m := yearRe.FindString(y); m != "" {
			p.Year, _ = strconv.Atoi(m)
		} else {
			diags = append(diags, Diagnostic{
				Kind:    KindFieldFormatWarning,
				Key:     key,
				Message: fmt.Sprintf("no 4-digit year in %q; year left unset", y),
				Line:    entry.Line,
			})
		}
	}

	if d := norm["doi"]; d != "" {
		p.DOI = NormalizeDOI(d)
	}

	for name, value := range norm {
		if !promotedFields[name] {
			if p.Extra == nil {
				p.Extra = make(map[string]string)
			}
			p.Extra[name] = value
		}
	}

	return p, diags
}

// SplitAuthors splits an author field on the "and" separator token,
// case-insensitively, trimming each name. Empty input gives an empty
// list, never an error.
func SplitAuthors(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := authorSepRe.Split(value, -1)
	authors := make([]string, 0, len(parts))
	for _, part := range parts {
		if name := strings.TrimSpace(part); name != "" {
			authors = append(authors, name)
		}
	}
	if len(authors) == 0 {
		return nil
	}
	return authors
}

// NormalizeDOI strips common resolver prefixes and lowercases a DOI for
// stable comparison.
func NormalizeDOI(doi string) string {
	doi = strings.TrimSpace(doi)
	doi = strings.TrimPrefix(doi, "https://doi.org/")
	doi = strings.TrimPrefix(doi, "http://doi.org/")
	doi = strings.TrimPrefix(doi, "doi.org/")
	doi = strings.TrimPrefix(doi, "DOI:")
	doi = strings.TrimPrefix(doi, "doi:")
	return strings.ToLower(strings.TrimSpace(doi))
}
