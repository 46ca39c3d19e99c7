package bibtex

import (
	"fmt"
	"strings"
)

// ExtractFields splits an entry body into ordered (name, value) pairs.
// Scanning is depth-aware: commas and = inside nested braces or quoted
// values never split fields, and braces keep nesting inside quoted
// values. Values keep their original delimiters.
// A field whose value delimiter never closes, or that has no top-level
// =, is dropped with a MalformedField diagnostic; the rest of the
// entry's fields are unaffected.
func ExtractFields(body string, startLine int) ([]RawField, []Diagnostic) {
	var fields []RawField
	var diags []Diagnostic

	line := startLine
	i := 0
	for i < len(body) {
		segStart := i
		segLine := line
		depth := 0
		inQuote := false
		eq := -1

		j := i
		for j < len(body) {
			c := body[j]
			if c == '\n' {
				line++
			}
			if inQuote {
				// Braces still nest inside quoted values; the quote
				// only closes at the depth it opened, so a " wrapped
				// in braces is literal.
				switch c {
				case '{':
					depth++
				case '}':
					if depth > 0 {
						depth--
					}
				case '"':
					if depth == 0 {
						inQuote = false
					}
				}
				j++
				continue
			}
			if c == ',' && depth == 0 {
				break
			}
			switch c {
			case '"':
				if depth == 0 {
					inQuote = true
				}
			case '{':
				depth++
			case '}':
				if depth > 0 {
					depth--
				}
			case '=':
				if depth == 0 && eq == -1 {
					eq = j
				}
			}
			j++
		}

		seg := body[segStart:j]
		i = j + 1 // past the comma, or past end

		trimmed := strings.TrimSpace(seg)
		if trimmed == "" {
			continue // trailing comma or blank segment
		}
		// Line of the first non-blank character of the segment.
		fieldLine := segLine + strings.Count(seg[:len(seg)-len(strings.TrimLeft(seg, " \t\r\n"))], "\n")

		switch {
		case depth > 0 || inQuote:
			name := trimmed
			if eq >= 0 {
				name = strings.TrimSpace(body[segStart:eq])
			}
			diags = append(diags, Diagnostic{
				Kind:    KindMalformedField,
				Message: fmt.Sprintf("value of field %q never closes; field dropped", name),
				Line:    fieldLine,
			})
		case eq < 0:
			diags = append(diags, Diagnostic{
				Kind:    KindMalformedField,
				Message: fmt.Sprintf("no = in field %q; field dropped", truncateField(trimmed)),
				Line:    fieldLine,
			})
		default:
			fields = append(fields, RawField{
				Name:  strings.TrimSpace(body[segStart:eq]),
				Value: strings.TrimSpace(body[eq+1 : j]),
				Line:  fieldLine,
			})
		}
	}

	return fields, diags
}

// truncateField shortens junk text quoted in diagnostics.
func truncateField(s string) string {
	const max = 40
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
