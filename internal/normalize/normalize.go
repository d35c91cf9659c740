// Package normalize provides text normalization for building search queries.
package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Matches any character that is not a word character or whitespace.
var punctuation = regexp.MustCompile(`[^\w\s]`)

// Query normalizes a title for use as a provider search query.
// Accented characters are decomposed and their diacritical marks dropped,
// the result is lowercased, punctuation is removed, and surrounding
// whitespace is trimmed. "Café é Vida!" -> "cafe e vida".
//
// Query is pure and idempotent; an empty input yields an empty string.
func Query(s string) string {
	if s == "" {
		return ""
	}

	// Decompose accented characters (NFKD), then drop everything
	// outside ASCII. This strips the combining marks left behind.
	s = norm.NFKD.String(s)
	s = strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		return r
	}, s)

	s = strings.ToLower(s)
	s = punctuation.ReplaceAllString(s, "")

	return strings.TrimSpace(s)
}
