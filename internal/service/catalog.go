// Package service contains the application services behind the web layer.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/estanteapp/estante-server/internal/domain"
	"github.com/estanteapp/estante-server/internal/store"
	"github.com/estanteapp/estante-server/internal/validation"
)

// BookInput carries the user-editable fields of a book. Field names
// follow the form field names used by the web layer.
type BookInput struct {
	Title    string `json:"titulo" validate:"required"`
	Author   string `json:"autor"`
	Genres   string `json:"generos"`
	Pages    string `json:"paginas"`
	Synopsis string `json:"sinopse"`
	CoverURL string `json:"capa"`
}

// CatalogService manages the book catalog.
type CatalogService struct {
	store     store.Catalog
	validator *validation.Validator
	logger    *slog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(store store.Catalog, validator *validation.Validator, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		store:     store,
		validator: validator,
		logger:    logger,
	}
}

// Create validates the input and adds a new book to the catalog.
func (s *CatalogService) Create(ctx context.Context, input BookInput) (int64, error) {
	input = trimInput(input)
	if err := s.validator.Validate(input); err != nil {
		return 0, err
	}

	id, err := s.store.CreateBook(ctx, params(input))
	if err != nil {
		return 0, fmt.Errorf("create book: %w", err)
	}

	s.logger.Info("book added", "id", id, "title", input.Title)
	return id, nil
}

// Get returns a single book by id.
func (s *CatalogService) Get(ctx context.Context, id int64) (*domain.Book, error) {
	return s.store.GetBook(ctx, id)
}

// Update validates the input and replaces the book's editable fields.
// Notes and the added-on timestamp are preserved.
func (s *CatalogService) Update(ctx context.Context, id int64, input BookInput) error {
	input = trimInput(input)
	if err := s.validator.Validate(input); err != nil {
		return err
	}

	if _, err := s.store.GetBook(ctx, id); err != nil {
		return err
	}

	if err := s.store.UpdateBook(ctx, id, params(input)); err != nil {
		return fmt.Errorf("update book: %w", err)
	}

	s.logger.Info("book updated", "id", id, "title", input.Title)
	return nil
}

// SaveNotes replaces the personal notes of a book.
func (s *CatalogService) SaveNotes(ctx context.Context, id int64, notes string) error {
	if _, err := s.store.GetBook(ctx, id); err != nil {
		return err
	}

	if err := s.store.UpdateNotes(ctx, id, notes); err != nil {
		return fmt.Errorf("save notes: %w", err)
	}

	s.logger.Info("notes saved", "id", id)
	return nil
}

// Delete removes a book from the catalog. Missing ids are not an error.
func (s *CatalogService) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteBook(ctx, id); err != nil {
		return fmt.Errorf("delete book: %w", err)
	}

	s.logger.Info("book deleted", "id", id)
	return nil
}

// List returns the catalog newest first, optionally filtered by a
// title substring.
func (s *CatalogService) List(ctx context.Context, search string) ([]domain.Book, error) {
	return s.store.ListBooks(ctx, search)
}

func trimInput(in BookInput) BookInput {
	return BookInput{
		Title:    strings.TrimSpace(in.Title),
		Author:   strings.TrimSpace(in.Author),
		Genres:   strings.TrimSpace(in.Genres),
		Pages:    strings.TrimSpace(in.Pages),
		Synopsis: strings.TrimSpace(in.Synopsis),
		CoverURL: strings.TrimSpace(in.CoverURL),
	}
}

func params(in BookInput) store.BookParams {
	return store.BookParams{
		Title:    in.Title,
		Author:   in.Author,
		Genres:   in.Genres,
		Pages:    in.Pages,
		Synopsis: in.Synopsis,
		CoverURL: in.CoverURL,
	}
}
