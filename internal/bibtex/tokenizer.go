package bibtex

import (
	"fmt"
	"strings"
)

// Tokenizer scans .bib text and yields one RawEntry at a time. It is
// restartable: construct a new Tokenizer over the same text to scan
// again. Problems found while scanning (dangling entries, trailing
// junk) accumulate in Diagnostics and never stop the scan.
type Tokenizer struct {
	src string
	pos int
	// line is the 1-based line number of src[pos].
	line int
	// atLineStart is true while only whitespace has been seen on the
	// current line. An @ only opens an entry in that position.
	atLineStart bool
	diags       []Diagnostic
}

// NewTokenizer returns a tokenizer over the full text of a .bib source.
func NewTokenizer(src string) *Tokenizer {
	return &Tokenizer{src: src, line: 1, atLineStart: true}
}

// Diagnostics returns all diagnostics raised so far, in the order they
// were raised.
func (t *Tokenizer) Diagnostics() []Diagnostic {
	return t.diags
}

// Next returns the next entry candidate, or false when the input is
// exhausted. Text between entries (bare prose, % comments) is skipped;
// @comment, @preamble and @string blocks are skipped too.
func (t *Tokenizer) Next() (*RawEntry, bool) {
	for t.pos < len(t.src) {
		c := t.src[t.pos]
		switch {
		case c == '\n':
			t.line++
			t.atLineStart = true
			t.pos++
		case c == '%':
			t.skipToEOL()
		case c == '@' && t.atLineStart:
			if entry, ok := t.scanEntry(); ok {
				return entry, true
			}
		default:
			if c != ' ' && c != '\t' && c != '\r' {
				t.atLineStart = false
			}
			t.pos++
		}
	}
	return nil, false
}

// skipToEOL advances to the next newline without consuming it.
func (t *Tokenizer) skipToEOL() {
	for t.pos < len(t.src) && t.src[t.pos] != '\n' {
		t.pos++
	}
}

// scanEntry scans an entry starting at the @ under the cursor. It
// returns false for non-entries (stray @, ignored block types) and for
// dangling entries, which raise an UnterminatedEntry diagnostic; in
// both cases the cursor is positioned so scanning resumes safely.
func (t *Tokenizer) scanEntry() (*RawEntry, bool) {
	start := t.pos
	startLine := t.line
	t.pos++ // consume @

	typStart := t.pos
	for t.pos < len(t.src) && isASCIILetter(t.src[t.pos]) {
		t.pos++
	}
	typ := strings.ToLower(t.src[typStart:t.pos])
	if typ == "" {
		t.atLineStart = false
		return nil, false
	}

	// Allow whitespace between the type word and the opening delimiter.
	for t.pos < len(t.src) && isSpaceByte(t.src[t.pos]) {
		if t.src[t.pos] == '\n' {
			t.line++
		}
		t.pos++
	}
	if t.pos >= len(t.src) || (t.src[t.pos] != '{' && t.src[t.pos] != '(') {
		// Not an entry header after all; treat as inter-entry junk.
		t.atLineStart = false
		return nil, false
	}
	open := t.src[t.pos]
	t.pos++

	// Directive blocks carry no citable content.
	if typ == "comment" || typ == "preamble" || typ == "string" {
		t.skipBalanced(open)
		return nil, false
	}

	depth := 1
	inQuote := false
	keyStart := t.pos
	haveKey := false
	var rawKey string
	bodyStart := -1
	bodyLine := t.line

	for t.pos < len(t.src) {
		c := t.src[t.pos]
		if c == '\n' {
			t.line++
		}
		if inQuote {
			// Braces nest inside quoted values too; a " protected by
			// braces is literal and a stray } cannot close the entry.
			switch c {
			case '{':
				depth++
			case '}':
				if depth > 1 {
					depth--
				}
			case '"':
				if depth == 1 {
					inQuote = false
				}
			}
			t.pos++
			continue
		}
		switch c {
		case '"':
			// Quotes only delimit values at the top level of the entry.
			if depth == 1 {
				inQuote = true
			}
		case '{':
			depth++
		case '}':
			depth--
		case '(':
			if open == '(' {
				depth++
			}
		case ')':
			if open == '(' {
				depth--
			}
		case ',':
			if depth == 1 && !haveKey {
				rawKey = t.src[keyStart:t.pos]
				haveKey = true
				bodyStart = t.pos + 1
				bodyLine = t.line
			}
		}
		if depth == 0 {
			end := t.pos
			t.pos++
			t.atLineStart = false
			body := ""
			if haveKey {
				body = t.src[bodyStart:end]
			} else {
				// Entry with a key but no fields: @misc{key}
				rawKey = t.src[keyStart:end]
			}
			return &RawEntry{
				Type:     typ,
				RawKey:   rawKey,
				Body:     body,
				Line:     startLine,
				BodyLine: bodyLine,
			}, true
		}
		t.pos++
	}

	// The opening delimiter was never balanced. Report the dangling
	// entry and rescan from just past its @ so a later well-formed
	// entry is still found.
	t.diags = append(t.diags, Diagnostic{
		Kind:    KindUnterminatedEntry,
		Message: fmt.Sprintf("@%s entry opened at line %d is never closed", typ, startLine),
		Line:    startLine,
	})
	t.pos = start + 1
	t.line = startLine
	t.atLineStart = false
	return nil, false
}

// skipBalanced consumes text up to and including the delimiter that
// balances an already-consumed opener.
func (t *Tokenizer) skipBalanced(open byte) {
	depth := 1
	for t.pos < len(t.src) {
		c := t.src[t.pos]
		switch {
		case c == '\n':
			t.line++
		case c == '{', open == '(' && c == '(':
			depth++
		case c == '}', open == '(' && c == ')':
			depth--
		}
		t.pos++
		if depth == 0 {
			t.atLineStart = false
			return
		}
	}
}

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isSpaceByte(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}
