// Package metadata resolves bibliographic metadata for book titles by
// querying external providers and merging their partial results.
package metadata

import (
	"strings"
	"unicode"
)

// maxGenres limits how many genre labels a provider may contribute.
const maxGenres = 3

// Record is a partial bibliographic record produced by one provider.
// Any subset of fields may be empty.
type Record struct {
	Title    string
	Author   string
	Genres   string // comma-joined, up to maxGenres capitalized labels
	Pages    string // page count as text, may be blank
	Synopsis string
	CoverURL string
}

// IsEmpty reports whether every field of the record is empty.
func (r Record) IsEmpty() bool {
	return r == Record{}
}

// Merge combines two partial records field by field: for every field the
// value from a wins when non-empty, otherwise the value from b is used.
// Merge is deterministic given identical inputs.
func Merge(a, b Record) Record {
	return Record{
		Title:    firstNonEmpty(a.Title, b.Title),
		Author:   firstNonEmpty(a.Author, b.Author),
		Genres:   firstNonEmpty(a.Genres, b.Genres),
		Pages:    firstNonEmpty(a.Pages, b.Pages),
		Synopsis: firstNonEmpty(a.Synopsis, b.Synopsis),
		CoverURL: firstNonEmpty(a.CoverURL, b.CoverURL),
	}
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

// FormatGenres joins up to maxGenres labels into the stored genre string.
// Each label is trimmed and capitalized (first letter upper, rest lower).
func FormatGenres(labels []string) string {
	if len(labels) > maxGenres {
		labels = labels[:maxGenres]
	}
	parts := make([]string, 0, len(labels))
	for _, l := range labels {
		if c := capitalize(strings.TrimSpace(l)); c != "" {
			parts = append(parts, c)
		}
	}
	return strings.Join(parts, ", ")
}

// capitalize uppercases the first rune and lowercases the rest.
func capitalize(s string) string {
	if s == "" {
		return ""
	}
	runes := []rune(s)
	head := string(unicode.ToUpper(runes[0]))
	if len(runes) == 1 {
		return head
	}
	return head + strings.ToLower(string(runes[1:]))
}
