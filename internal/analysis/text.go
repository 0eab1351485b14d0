package analysis

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// CleanTitle lower-cases a title, removes every rune that is not a letter,
// digit, combining mark or whitespace, and collapses runs of whitespace
// into single spaces.
// The title is first composed to NFC so that decomposed input compares equal
// to the keyword and stopword tables.
func CleanTitle(title string) string {
	stripped := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), unicode.IsMark(r):
			return unicode.ToLower(r)
		case unicode.IsSpace(r):
			return ' '
		default:
			return -1
		}
	}, norm.NFC.String(title))
	return strings.Join(strings.Fields(stripped), " ")
}
