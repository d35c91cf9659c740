package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/estanteapp/estante-server/internal/domain"
	apperrors "github.com/estanteapp/estante-server/internal/errors"
	"github.com/estanteapp/estante-server/internal/store"
)

// bookColumns is the ordered list of columns selected in book queries.
// Must match the scan order in scanBook.
const bookColumns = `id, titulo, autor, generos, paginas, sinopse, anotacoes, data_adicao, capa`

// scanBook scans a sql.Row (or sql.Rows via its Scan method) into a domain.Book.
func scanBook(scanner interface{ Scan(dest ...any) error }) (*domain.Book, error) {
	var (
		b         domain.Book
		author    sql.NullString
		genres    sql.NullString
		pages     sql.NullString
		synopsis  sql.NullString
		notes     sql.NullString
		dateAdded sql.NullString
		coverURL  sql.NullString
	)

	err := scanner.Scan(
		&b.ID,
		&b.Title,
		&author,
		&genres,
		&pages,
		&synopsis,
		&notes,
		&dateAdded,
		&coverURL,
	)
	if err != nil {
		return nil, err
	}

	b.Author = stringValue(author)
	b.Genres = stringValue(genres)
	b.Pages = stringValue(pages)
	b.Synopsis = stringValue(synopsis)
	b.Notes = stringValue(notes)
	b.DateAdded = stringValue(dateAdded)
	b.CoverURL = stringValue(coverURL)

	return &b, nil
}

// CreateBook inserts a new book and returns its assigned id.
func (s *Store) CreateBook(ctx context.Context, p store.BookParams) (int64, error) {
	if strings.TrimSpace(p.Title) == "" {
		return 0, apperrors.Validation("title is required")
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO livros (titulo, autor, generos, paginas, sinopse, anotacoes, data_adicao, capa)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Title,
		nullString(p.Author),
		nullString(p.Genres),
		nullString(p.Pages),
		nullString(p.Synopsis),
		"",
		time.Now().Format(dateAddedFormat),
		nullString(p.CoverURL),
	)
	if err != nil {
		return 0, fmt.Errorf("insert book: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}

	s.logger.Debug("book created", "id", id, "title", p.Title)
	return id, nil
}

// GetBook returns the book with the given id, or store.ErrNotFound.
func (s *Store) GetBook(ctx context.Context, id int64) (*domain.Book, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+bookColumns+" FROM livros WHERE id = ?", id)

	b, err := scanBook(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get book %d: %w", id, err)
	}
	return b, nil
}

// UpdateBook replaces every field except id, notes, and dateAdded.
// Missing ids are a silent no-op.
func (s *Store) UpdateBook(ctx context.Context, id int64, p store.BookParams) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE livros
		 SET titulo = ?, autor = ?, generos = ?, paginas = ?, sinopse = ?, capa = ?
		 WHERE id = ?`,
		p.Title,
		nullString(p.Author),
		nullString(p.Genres),
		nullString(p.Pages),
		nullString(p.Synopsis),
		nullString(p.CoverURL),
		id,
	)
	if err != nil {
		return fmt.Errorf("update book %d: %w", id, err)
	}
	return nil
}

// UpdateNotes replaces only the notes field.
func (s *Store) UpdateNotes(ctx context.Context, id int64, notes string) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE livros SET anotacoes = ? WHERE id = ?", notes, id)
	if err != nil {
		return fmt.Errorf("update notes %d: %w", id, err)
	}
	return nil
}

// DeleteBook removes the book unconditionally; missing ids are not an error.
func (s *Store) DeleteBook(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM livros WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete book %d: %w", id, err)
	}
	return nil
}

// ListBooks returns books ordered most-recently-added first (id DESC).
// A non-empty search term filters by case-sensitive title substring.
func (s *Store) ListBooks(ctx context.Context, search string) ([]domain.Book, error) {
	var (
		rows *sql.Rows
		err  error
	)

	if search != "" {
		rows, err = s.db.QueryContext(ctx,
			"SELECT "+bookColumns+" FROM livros WHERE titulo LIKE ? ORDER BY id DESC",
			"%"+search+"%")
	} else {
		rows, err = s.db.QueryContext(ctx,
			"SELECT "+bookColumns+" FROM livros ORDER BY id DESC")
	}
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()

	var books []domain.Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		books = append(books, *b)
	}
	return books, rows.Err()
}
