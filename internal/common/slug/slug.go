// internal/common/slug/slug.go
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// Make returns the canonical slug of s: diacritics folded to ASCII, lower case,
// runs of anything else collapsed into single hyphens, no leading or trailing hyphen.
// Characters with no ASCII base letter are dropped.
func Make(s string) string {
	// Chained transformers carry state, so a fresh chain is built per call.
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(fold, s)
	if err != nil {
		folded = s
	}

	folded = strings.ToLower(folded)
	return strings.Trim(nonAlphanumeric.ReplaceAllString(folded, "-"), "-")
}

// IsCanonical reports whether s is already its own slug.
func IsCanonical(s string) bool {
	return Make(s) == s
}
