package bibtex

import (
	"strings"
	"testing"
)

func TestSanitizeKey(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		position int
		want     string
	}{
		{"clean key", "Smith2020-ab", 1, "Smith2020-ab"},
		{"spaces", "Smith 2020 memory", 1, "Smith_2020_memory"},
		{"leading and trailing space", "  Smith2020  ", 1, "Smith2020"},
		{"slashes and dots", "smith/jones.2020", 1, "smith_jones_2020"},
		{"run of junk", "a  @@  b", 1, "a_b"},
		{"unicode", "müller2020", 1, "m_ller2020"},
		{"empty", "", 3, "entry_3"},
		{"only junk", "@!/", 7, "entry_7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeKey(tt.raw, tt.position); got != tt.want {
				t.Errorf("SanitizeKey(%q, %d) = %q, want %q", tt.raw, tt.position, got, tt.want)
			}
		})
	}
}

func TestSanitizeKey_Deterministic(t *testing.T) {
	raw := "Smith 2020 memory"
	first := SanitizeKey(raw, 1)
	second := SanitizeKey(raw, 1)
	if first != second {
		t.Errorf("SanitizeKey not deterministic: %q vs %q", first, second)
	}
	if strings.ContainsAny(first, " \t\n") {
		t.Errorf("sanitized key %q contains whitespace", first)
	}
}

func TestKeySet_CollisionSuffixing(t *testing.T) {
	keys := newKeySet()

	got, renamed := keys.claim("Smith_2020", "Smith 2020")
	if got != "Smith_2020" || renamed {
		t.Errorf("first claim = (%q, %v), want (Smith_2020, false)", got, renamed)
	}

	// Different raw key, same sanitized text: suffixed in file order.
	got, renamed = keys.claim("Smith_2020", "Smith/2020")
	if got != "Smith_2020_2" || !renamed {
		t.Errorf("second claim = (%q, %v), want (Smith_2020_2, true)", got, renamed)
	}

	got, renamed = keys.claim("Smith_2020", "Smith.2020")
	if got != "Smith_2020_3" || !renamed {
		t.Errorf("third claim = (%q, %v), want (Smith_2020_3, true)", got, renamed)
	}
}

func TestKeySet_IdenticalRawKeysNotSuffixed(t *testing.T) {
	// A true duplicate source key keeps its sanitized key so the
	// assembler can report it as a duplicate.
	keys := newKeySet()
	keys.claim("dup", "dup")
	got, renamed := keys.claim("dup", "dup")
	if got != "dup" || renamed {
		t.Errorf("claim = (%q, %v), want (dup, false)", got, renamed)
	}
}
