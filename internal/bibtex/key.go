package bibtex

import (
	"fmt"
	"strings"
)

// SanitizeKey maps a raw citation key to an identifier safe for use as
// a storage key: ASCII letters, digits, hyphens and underscores only.
// Runs of anything else collapse to a single underscore. A key that
// sanitizes to nothing gets a positional placeholder from the entry's
// 1-based position in the file, so the result is never empty.
// The mapping is pure: same raw key and position always give the same
// identifier.
func SanitizeKey(raw string, position int) string {
	var b strings.Builder
	pendingSep := false
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if isKeyRune(c) {
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteByte(c)
		} else {
			pendingSep = true
		}
	}
	key := b.String()
	if key == "" {
		return fmt.Sprintf("entry_%d", position)
	}
	return key
}

func isKeyRune(c byte) bool {
	return isASCIILetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

// keySet allocates unique sanitized keys across one run. It is an
// explicit accumulator threaded through assembly; every Parse call
// starts from an empty set, so runs are reproducible.
type keySet struct {
	// owner records which raw key first claimed each sanitized key.
	owner map[string]string
}

func newKeySet() *keySet {
	return &keySet{owner: make(map[string]string)}
}

// claim returns the key to use for the given raw key. When two
// different raw keys sanitize to the same value, later ones get an
// occurrence suffix (_2, _3, ...) in file order and renamed is true.
// Identical raw keys keep the same sanitized key so the assembler can
// flag them as true duplicates.
func (s *keySet) claim(sanitized, raw string) (key string, renamed bool) {
	first, taken := s.owner[sanitized]
	if !taken {
		s.owner[sanitized] = raw
		return sanitized, false
	}
	if first == raw {
		return sanitized, false
	}
	for n := 2; ; n++ {
		cand := fmt.Sprintf("%s_%d", sanitized, n)
		prior, used := s.owner[cand]
		if !used {
			s.owner[cand] = raw
			return cand, true
		}
		if prior == raw {
			return cand, false
		}
	}
}
