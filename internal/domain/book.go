// Package domain contains the core entities of the Estante catalog.
package domain

import "strings"

// Book is the persisted catalog entity.
//
// ID is assigned by the store on creation and is immutable, as is
// DateAdded. Notes is user-editable independently of the other fields;
// everything else is replaced wholesale by an edit.
type Book struct {
	ID        int64
	Title     string
	Author    string
	Genres    string // comma-joined list of up to 3 capitalized labels
	Pages     string // optional page count, may be blank
	Synopsis  string
	Notes     string
	DateAdded string // "02/01/2006 15:04", set once at creation
	CoverURL  string
}

// GenreList splits the comma-joined Genres field for display.
func (b *Book) GenreList() []string {
	if b.Genres == "" {
		return nil
	}
	parts := strings.Split(b.Genres, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
