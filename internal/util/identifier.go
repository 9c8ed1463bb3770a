package util

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	combiningMarks = regexp.MustCompile(`[\x{0300}-\x{036F}]`)
	illegalChars   = regexp.MustCompile(`[^a-zA-Z0-9_]`)
	underscoreRuns = regexp.MustCompile(`__+`)
)

// IdentifierSet tracks identifiers handed out within one batch so that
// labels normalizing to the same text never produce the same identifier.
// Identifiers become permanent Terraform resource addresses, so the
// resolution order must be deterministic in batch order.
type IdentifierSet struct {
	taken map[string]struct{}
}

func NewIdentifierSet() *IdentifierSet {
	return &IdentifierSet{taken: make(map[string]struct{})}
}

// Synthesize converts a resource label into an HCL-legal identifier that is
// unique within this set. The result always matches ^[a-zA-Z_][a-zA-Z0-9_]*$
// provided prefix does.
// Example: Synthesize("Dev Team", "imported") -> "imported_dev_team"
func (s *IdentifierSet) Synthesize(label, prefix string) string {
	name := NormalizeIdentifier(label)
	if name == "" {
		name = "unnamed"
	}

	base := prefix + "_" + name
	id := base
	for n := 2; ; n++ {
		if _, exists := s.taken[id]; !exists {
			break
		}
		id = fmt.Sprintf("%s_%d", base, n)
	}
	s.taken[id] = struct{}{}
	return id
}

// NormalizeIdentifier lower-cases a label and maps it onto the identifier
// alphabet [a-z0-9_]. Diacritics are decomposed and stripped first so that
// "Café" and "Cafe" normalize identically.
func NormalizeIdentifier(label string) string {
	// Normalize using NFKD to decompose characters, then drop
	// the combining diacritical marks (é→e, ñ→n, etc.)
	name := norm.NFKD.String(label)
	name = combiningMarks.ReplaceAllString(name, "")

	name = strings.ToLower(name)
	name = illegalChars.ReplaceAllString(name, "_")
	name = underscoreRuns.ReplaceAllString(name, "_")
	name = strings.Trim(name, "_")

	return name
}

// IsLegalIdentifier reports whether s is usable as an HCL resource name.
func IsLegalIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_',
			r >= 'a' && r <= 'z',
			r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
