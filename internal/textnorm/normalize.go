// Package textnorm canonicalizes free text for substring matching.
//
// Symptom descriptions arrive from a text box or a speech transcript in
// any of the supported scripts (Latin, Devanagari, Telugu). Normalize
// reduces them to a stable matching target: case-folded, punctuation
// replaced by spaces, whitespace collapsed. Catalog phrases go through
// the same function, so catalog authors never pre-normalize.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

// Normalize lower-cases text (Unicode case folding), replaces every
// rune that is not a letter or digit with a space, collapses whitespace
// runs and trims the ends. Combining marks stay attached to their base
// letters: Devanagari and Telugu vowel signs are marks, not letters,
// and dropping them would corrupt every Hindi and Telugu phrase.
//
// It is pure, deterministic and total: any input, including the empty
// string or invalid UTF-8, yields a well-formed result. The output is
// idempotent under Normalize.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	folded := cases.Fold().String(text)

	var b strings.Builder
	b.Grow(len(folded))

	pendingSpace := false
	for _, r := range folded {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pendingSpace = false
			b.WriteRune(r)
			continue
		}
		// A mark survives only when glued to a rune we just kept.
		// Orphaned marks (emoji variation selectors, marks after
		// stripped punctuation) are dropped with their base.
		if unicode.IsMark(r) && !pendingSpace && b.Len() > 0 {
			b.WriteRune(r)
			continue
		}
		pendingSpace = true
	}

	return b.String()
}
