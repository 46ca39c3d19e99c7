package bibtex

import (
	"regexp"
	"strings"
	"unicode"
)

// escapeSequences is the fixed table of punctuation-delimited TeX
// sequences. Order matters where one sequence prefixes another
// (--- before --); the replacer tries them in table order.
var escapeSequences = [...][2]string{
	// Acute accents
	{`\'a`, "á"}, {`\'e`, "é"}, {`\'i`, "í"}, {`\'o`, "ó"}, {`\'u`, "ú"},
	{`\'A`, "Á"}, {`\'E`, "É"}, {`\'I`, "Í"}, {`\'O`, "Ó"}, {`\'U`, "Ú"},
	// Grave accents
	{"\\`a", "à"}, {"\\`e", "è"}, {"\\`i", "ì"}, {"\\`o", "ò"}, {"\\`u", "ù"},
	// Umlauts
	{`\"a`, "ä"}, {`\"e`, "ë"}, {`\"i`, "ï"}, {`\"o`, "ö"}, {`\"u`, "ü"},
	{`\"A`, "Ä"}, {`\"O`, "Ö"}, {`\"U`, "Ü"},
	// Circumflex and tilde
	{`\^a`, "â"}, {`\^e`, "ê"}, {`\^i`, "î"}, {`\^o`, "ô"}, {`\^u`, "û"},
	{`\~a`, "ã"}, {`\~n`, "ñ"}, {`\~o`, "õ"},
	// Cedilla
	{`\c{c}`, "ç"}, {`\c{C}`, "Ç"},
	// Escaped specials
	{`\&`, "&"}, {`\%`, "%"}, {`\$`, "$"}, {`\#`, "#"}, {`\_`, "_"},
	// TeX quotes and dashes
	{"``", "“"}, {"''", "”"},
	{`---`, "—"}, {`--`, "–"},
}

// wordMacros maps letter-named macros to their plain-text equivalents.
// Matched only as whole macro names, so \o never fires inside \omega.
// Duplicate keys are rejected by the compiler.
var wordMacros = map[string]string{
	"ss": "ß", "o": "ø", "O": "Ø", "ae": "æ", "AE": "Æ",
	"aa": "å", "AA": "Å", "ldots": "…", "dots": "…",
	"textendash": "–", "textemdash": "—",
}

var escapeReplacer = newEscapeReplacer()

func newEscapeReplacer() *strings.Replacer {
	pairs := make([]string, 0, 2*len(escapeSequences))
	for _, e := range escapeSequences {
		pairs = append(pairs, e[0], e[1])
	}
	return strings.NewReplacer(pairs...)
}

// macroRe matches a backslash macro name. Greedy, so the whole name is
// taken and short macros never match inside longer ones.
var macroRe = regexp.MustCompile(`\\[a-zA-Z]+`)

// StripDelimiters trims a raw field value and removes an outer pair of
// quote delimiters. Outer braces are left for Normalize, which strips
// all braces anyway.
func StripDelimiters(raw string) string {
	v := strings.TrimSpace(raw)
	if len(v) >= 2 && v[0] == '"' && v[len(v)-1] == '"' {
		return v[1 : len(v)-1]
	}
	return v
}

// Normalize turns a raw field value into display-ready text: the fixed
// escape table is applied, brace markup is stripped, control characters
// are removed, and whitespace runs (including newlines from multi-line
// values) collapse to single spaces. Unknown macros are left in place;
// see UnknownMacros. Normalize is idempotent.
func Normalize(s string) string {
	s = escapeReplacer.Replace(s)
	s = macroRe.ReplaceAllStringFunc(s, func(m string) string {
		if text, ok := wordMacros[m[1:]]; ok {
			return text
		}
		return m
	})
	s = strings.Map(func(r rune) rune {
		if r == '{' || r == '}' {
			return -1
		}
		return r
	}, s)
	// Control characters go before whitespace collapses: a control
	// byte flanked by spaces must not leave a double space behind.
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && !unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	s = collapseWhitespace(s)
	return strings.TrimSpace(s)
}

// UnknownMacros returns the distinct backslash macros still present in
// an already-normalized value. These are reported as informational
// diagnostics, never as failures.
func UnknownMacros(s string) []string {
	matches := macroRe.FindAllString(s, -1)
	if len(matches) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(matches))
	var out []string
	for _, m := range matches {
		if !seen[m] {
			seen[m] = true
			out = append(out, m)
		}
	}
	return out
}

// collapseWhitespace replaces every run of whitespace with one space.
func collapseWhitespace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inRun := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			inRun = true
			continue
		}
		if inRun && b.Len() > 0 {
			b.WriteByte(' ')
		}
		inRun = false
		b.WriteRune(r)
	}
	return b.String()
}
