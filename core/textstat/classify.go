// Package textstat provides character-level classification, Unicode
// naming, and writing-script detection for scripture text statistics.
package textstat

import (
	"fmt"
	"unicode"

	"golang.org/x/text/unicode/runenames"
)

// graveAccent (U+0060) is categorized Sk (modifier symbol) but functions
// as a quotation mark in many orthographies, so it is collected as
// punctuation.
const graveAccent = '`'

// IsWordChar reports whether r is word-forming: any letter (L*), a
// connector punctuation (Pc, e.g. underscore), or any mark (M*). Decimal
// digits (Nd) are never word-forming.
func IsWordChar(r rune) bool {
	if unicode.Is(unicode.Nd, r) {
		return false
	}
	return unicode.IsLetter(r) ||
		unicode.Is(unicode.Pc, r) ||
		unicode.Is(unicode.Mn, r) ||
		unicode.Is(unicode.Mc, r) ||
		unicode.Is(unicode.Me, r)
}

// IsPunctChar reports whether r is punctuation: any P* category, plus the
// grave accent override.
func IsPunctChar(r rune) bool {
	return unicode.IsPunct(r) || r == graveAccent
}

// RuneName returns the Unicode character name of r, or a "U+XXXX" code
// point form when the character has no assigned name.
func RuneName(r rune) string {
	if name := runenames.Name(r); name != "" && name[0] != '<' {
		return name
	}
	return fmt.Sprintf("U+%04X", r)
}

// ScriptOf returns the Unicode script name of r ("Latin", "Arabic", ...),
// or "" when r belongs to no script range table.
func ScriptOf(r rune) string {
	for name, table := range unicode.Scripts {
		if unicode.Is(table, r) {
			return name
		}
	}
	return ""
}
