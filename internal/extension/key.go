package extension

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NameToKey maps a display name to its storage key: all whitespace removed,
// then lower-cased. Names differing only in spacing or case share a key.
func NameToKey(name string) string {
	stripped := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, name)
	// A Caser is stateful, so one is built per call.
	return cases.Lower(language.Und).String(stripped)
}
