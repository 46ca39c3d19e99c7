package bibtex

import (
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text", "Deep Learning in Medicine", "Deep Learning in Medicine"},
		{"nested braces stripped", "A study of {nested} emphasis.", "A study of nested emphasis."},
		{"accent acute", `Garc\'ia`, "García"},
		{"accent umlaut", `M\"uller`, "Müller"},
		{"braced accent", `M{\"u}ller`, "Müller"},
		{"cedilla", `Fran\c{c}ois`, "François"},
		{"escaped ampersand", `Johnson \& Johnson`, "Johnson & Johnson"},
		{"escaped percent", `accuracy of 95\%`, "accuracy of 95%"},
		{"tex quotes", "``quoted''", "“quoted”"},
		{"em dash", "before---after", "before—after"},
		{"en dash", "pages 10--20", "pages 10–20"},
		{"multi-line collapse", "spans\n  several\n\tlines", "spans several lines"},
		{"leading trailing space", "  padded  ", "padded"},
		{"control chars stripped", "a\x00b\x07c", "abc"},
		{"word macro", `Erd\o s`, "Erdø s"},
		{"word macro not inside longer", `\omega stays`, `\omega stays`},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	samples := []string{
		"Deep Learning in Medicine",
		"A study of {nested} emphasis.",
		`Garc\'ia and M\"uller`,
		"``quoted'' --- dashes -- here",
		"multi\nline\tabstract with   runs",
		`unknown \macro stays`,
		`Fran\c{c}ois \& friends`,
		"a \x01 b",
		"control\x07between\x00words",
		"",
	}
	for _, s := range samples {
		once := Normalize(s)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q then %q", s, once, twice)
		}
	}
}

func TestNormalize_ControlCharacters(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"control byte between spaces", "a \x01 b", "a b"},
		{"control byte inside word", "wo\x07rd", "word"},
		{"tabs and newlines still collapse", "a\t\nb", "a b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestStripDelimiters(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"quoted", `"a study"`, "a study"},
		{"braced untouched", "{a study}", "{a study}"},
		{"bare", "2020", "2020"},
		{"quoted with inner braces", `"has {braces}"`, "has {braces}"},
		{"empty quotes", `""`, ""},
		{"empty braces", "{}", "{}"},
		{"whitespace around", "  {x}  ", "{x}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripDelimiters(tt.input); got != tt.want {
				t.Errorf("StripDelimiters(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestUnknownMacros(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"none", "plain text", nil},
		{"one", `uses \emph markup`, []string{`\emph`}},
		{"deduplicated", `\emph and \emph again`, []string{`\emph`}},
		{"several", `\emph and \textbf`, []string{`\emph`, `\textbf`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := UnknownMacros(Normalize(tt.input))
			if len(got) != len(tt.want) {
				t.Fatalf("UnknownMacros = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("UnknownMacros[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

// The escape table is fixed and statically declared; duplicate or
// conflicting entries are a bug in the table itself.
func TestEscapeTable_NoDuplicates(t *testing.T) {
	seen := make(map[string]string, len(escapeSequences))
	for _, e := range escapeSequences {
		if prev, dup := seen[e[0]]; dup {
			t.Errorf("escape %q declared twice (%q and %q)", e[0], prev, e[1])
		}
		seen[e[0]] = e[1]
	}
}
