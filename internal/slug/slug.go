// Package slug derives stable filter tokens from human-readable labels.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var spaces = regexp.MustCompile(`\s+`)

// Make lowercases the label, strips accents and collapses whitespace runs
// into single hyphens, e.g. "Sítio" -> "sitio", "Casa de Campo" -> "casa-de-campo".
func Make(label string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, label)
	if err != nil {
		folded = label
	}

	folded = strings.ToLower(strings.TrimSpace(folded))
	return spaces.ReplaceAllString(folded, "-")
}
