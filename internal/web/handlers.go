package web

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/estanteapp/estante-server/internal/domain"
	"github.com/estanteapp/estante-server/internal/errors"
	"github.com/estanteapp/estante-server/internal/service"
)

// viewData carries everything the page templates can reference.
type viewData struct {
	Flashes []Flash
	Search  string
	Books   []domain.Book
	Book    *domain.Book
	Form    service.BookInput
}

// handleHealthCheck returns server health status.
func (s *Server) handleHealthCheck(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"healthy"}`))
}

// handleIndex lists the catalog, optionally filtered by the busca
// query parameter.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("busca")

	books, err := s.catalog.List(r.Context(), search)
	if err != nil {
		s.logger.Error("list books failed", "error", err)
		http.Error(w, "Erro interno", http.StatusInternalServerError)
		return
	}

	s.render(w, "index.html", viewData{
		Flashes: s.popFlashes(w, r),
		Search:  search,
		Books:   books,
	})
}

// handleAddForm shows an empty add form.
func (s *Server) handleAddForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, "adicionar.html", viewData{Flashes: s.popFlashes(w, r)})
}

// handleAdd creates a book from the submitted form.
func (s *Server) handleAdd(w http.ResponseWriter, r *http.Request) {
	form := formInput(r)

	_, err := s.catalog.Create(r.Context(), form)
	if errors.Is(err, errors.ErrValidation) {
		s.addFlash(w, r, "error", "Título é obrigatório para salvar!")
		s.render(w, "adicionar.html", viewData{
			Flashes: s.popFlashes(w, r),
			Form:    form,
		})
		return
	}
	if err != nil {
		s.logger.Error("add book failed", "error", err)
		http.Error(w, "Erro interno", http.StatusInternalServerError)
		return
	}

	s.addFlash(w, r, "success", "Livro adicionado com sucesso!")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleFetchInfo looks up metadata for the typed title and re-renders
// the add form pre-filled with whatever was found.
func (s *Server) handleFetchInfo(w http.ResponseWriter, r *http.Request) {
	title := strings.TrimSpace(r.FormValue("busca"))
	if title == "" {
		title = strings.TrimSpace(r.FormValue("titulo"))
	}
	if title == "" {
		s.addFlash(w, r, "error", "Digite um título para buscar!")
		http.Redirect(w, r, "/adicionar", http.StatusSeeOther)
		return
	}

	// Fresh lookup every time the button is pressed.
	s.enricher.InvalidateAll()

	rec := s.enricher.Resolve(r.Context(), title)
	if rec == nil {
		s.addFlash(w, r, "warning", "Nenhuma informação encontrada para este livro. Preencha os campos manualmente.")
		s.render(w, "adicionar.html", viewData{
			Flashes: s.popFlashes(w, r),
			Form:    service.BookInput{Title: title},
		})
		return
	}

	s.render(w, "adicionar.html", viewData{
		Flashes: s.popFlashes(w, r),
		Form: service.BookInput{
			Title:    rec.Title,
			Author:   rec.Author,
			Genres:   rec.Genres,
			Pages:    rec.Pages,
			Synopsis: rec.Synopsis,
			CoverURL: rec.CoverURL,
		},
	})
}

// handleDetails shows a single book with its notes.
func (s *Server) handleDetails(w http.ResponseWriter, r *http.Request) {
	id, ok := s.bookID(w, r)
	if !ok {
		return
	}

	book, err := s.catalog.Get(r.Context(), id)
	if errors.Is(err, errors.ErrNotFound) {
		s.addFlash(w, r, "error", "Livro não encontrado")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if err != nil {
		s.logger.Error("get book failed", "id", id, "error", err)
		http.Error(w, "Erro interno", http.StatusInternalServerError)
		return
	}

	s.render(w, "detalhes.html", viewData{
		Flashes: s.popFlashes(w, r),
		Book:    book,
	})
}

// handleSaveNotes updates the personal notes of a book.
func (s *Server) handleSaveNotes(w http.ResponseWriter, r *http.Request) {
	id, ok := s.bookID(w, r)
	if !ok {
		return
	}

	err := s.catalog.SaveNotes(r.Context(), id, r.FormValue("anotacoes"))
	if errors.Is(err, errors.ErrNotFound) {
		s.addFlash(w, r, "error", "Livro não encontrado")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if err != nil {
		s.logger.Error("save notes failed", "id", id, "error", err)
		http.Error(w, "Erro interno", http.StatusInternalServerError)
		return
	}

	s.addFlash(w, r, "success", "Anotações salvas com sucesso!")
	http.Redirect(w, r, "/detalhes/"+strconv.FormatInt(id, 10), http.StatusSeeOther)
}

// handleEditForm shows the edit form pre-filled with the book's fields.
func (s *Server) handleEditForm(w http.ResponseWriter, r *http.Request) {
	id, ok := s.bookID(w, r)
	if !ok {
		return
	}

	book, err := s.catalog.Get(r.Context(), id)
	if errors.Is(err, errors.ErrNotFound) {
		s.addFlash(w, r, "error", "Livro não encontrado")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if err != nil {
		s.logger.Error("get book failed", "id", id, "error", err)
		http.Error(w, "Erro interno", http.StatusInternalServerError)
		return
	}

	s.render(w, "editar.html", viewData{
		Flashes: s.popFlashes(w, r),
		Book:    book,
		Form: service.BookInput{
			Title:    book.Title,
			Author:   book.Author,
			Genres:   book.Genres,
			Pages:    book.Pages,
			Synopsis: book.Synopsis,
			CoverURL: book.CoverURL,
		},
	})
}

// handleEdit replaces the book's editable fields from the submitted form.
// Notes and the added-on timestamp are kept.
func (s *Server) handleEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := s.bookID(w, r)
	if !ok {
		return
	}

	form := formInput(r)

	err := s.catalog.Update(r.Context(), id, form)
	switch {
	case errors.Is(err, errors.ErrValidation):
		s.addFlash(w, r, "error", "Título é obrigatório para salvar!")
		s.render(w, "editar.html", viewData{
			Flashes: s.popFlashes(w, r),
			Book:    &domain.Book{ID: id},
			Form:    form,
		})
		return
	case errors.Is(err, errors.ErrNotFound):
		s.addFlash(w, r, "error", "Livro não encontrado")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	case err != nil:
		s.logger.Error("update book failed", "id", id, "error", err)
		http.Error(w, "Erro interno", http.StatusInternalServerError)
		return
	}

	s.addFlash(w, r, "success", "Livro atualizado com sucesso!")
	http.Redirect(w, r, "/detalhes/"+strconv.FormatInt(id, 10), http.StatusSeeOther)
}

// handleDelete removes a book. Deleting an already-removed book still
// reports success.
func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := s.bookID(w, r)
	if !ok {
		return
	}

	if err := s.catalog.Delete(r.Context(), id); err != nil {
		s.logger.Error("delete book failed", "id", id, "error", err)
		http.Error(w, "Erro interno", http.StatusInternalServerError)
		return
	}

	s.addFlash(w, r, "success", "Livro excluído com sucesso")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// bookID parses the {id} route parameter; non-numeric values are a 404.
func (s *Server) bookID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return 0, false
	}
	return id, true
}

// formInput reads the book form fields from the request.
func formInput(r *http.Request) service.BookInput {
	return service.BookInput{
		Title:    r.FormValue("titulo"),
		Author:   r.FormValue("autor"),
		Genres:   r.FormValue("generos"),
		Pages:    r.FormValue("paginas"),
		Synopsis: r.FormValue("sinopse"),
		CoverURL: r.FormValue("capa"),
	}
}
