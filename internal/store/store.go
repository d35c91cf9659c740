// Package store defines the persistence interface for the book catalog.
package store

import (
	"context"

	"github.com/estanteapp/estante-server/internal/domain"
	"github.com/estanteapp/estante-server/internal/errors"
)

// ErrNotFound is returned when a book id does not exist.
var ErrNotFound = errors.NotFound("book not found")

// BookParams carries the writable fields of a book. Empty optional
// fields are stored as NULL; Title is required on creation.
type BookParams struct {
	Title    string
	Author   string
	Genres   string
	Pages    string
	Synopsis string
	CoverURL string
}

// Catalog is the persistence contract for books. Every operation is
// atomic and immediately durable.
type Catalog interface {
	// CreateBook inserts a new book and returns its assigned id.
	// Fails with a validation error if Title is empty. Notes start
	// empty; DateAdded is set to the current local time.
	CreateBook(ctx context.Context, p BookParams) (int64, error)

	// GetBook returns the book with the given id, or ErrNotFound.
	GetBook(ctx context.Context, id int64) (*domain.Book, error)

	// UpdateBook replaces every field except id, notes, and dateAdded.
	// A missing id is a silent no-op; callers check existence first
	// when they care.
	UpdateBook(ctx context.Context, id int64, p BookParams) error

	// UpdateNotes replaces only the notes field.
	UpdateNotes(ctx context.Context, id int64, notes string) error

	// DeleteBook removes the book unconditionally. Missing ids are
	// not an error.
	DeleteBook(ctx context.Context, id int64) error

	// ListBooks returns books ordered most-recently-added first.
	// A non-empty search term filters by case-sensitive title
	// substring.
	ListBooks(ctx context.Context, search string) ([]domain.Book, error)
}
