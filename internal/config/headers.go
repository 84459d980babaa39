// =============================================================================
// Excel to DTE Converter - Header Canonicalization
// =============================================================================
//
// The pure-function header transform used by tenants whose spreadsheets carry
// hand-typed header variants ("DESCRIPCIÓN", "descripcion"). It lives here
// rather than in the engine because forced-text column matching at load time
// must canonicalize headers exactly the way the engine's column normalizer
// does.
//
// =============================================================================

package config

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// accentStripper decomposes characters and removes the combining marks,
// turning "Ó" into "O".
var accentStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// CanonicalizeHeader applies the pure-function header transform: strip
// accents, lower-case, capitalize the first character.
//
//	"DESCRIPCIÓN" -> "Descripcion"
//	"tributos"    -> "Tributos"
func CanonicalizeHeader(header string) string {
	stripped, _, err := transform.String(accentStripper, header)
	if err != nil {
		// Transform failures only occur on invalid UTF-8; keep the raw
		// header in that case.
		stripped = header
	}

	lower := strings.ToLower(stripped)
	if lower == "" {
		return lower
	}

	r := []rune(lower)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
