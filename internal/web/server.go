// Package web provides the HTML frontend for the Estante catalog.
package web

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"

	"github.com/estanteapp/estante-server/internal/metadata"
	"github.com/estanteapp/estante-server/internal/service"
)

//go:embed templates/*.html
var templateFS embed.FS

// pages are the templates rendered inside the shared layout.
var pages = []string{"index.html", "adicionar.html", "detalhes.html", "editar.html"}

// Enricher looks up book metadata from external providers.
type Enricher interface {
	// Resolve returns merged metadata for a title, or nil when nothing
	// was found.
	Resolve(ctx context.Context, title string) *metadata.Record

	// InvalidateAll drops every cached lookup so the next Resolve hits
	// the providers again.
	InvalidateAll()
}

// Server holds dependencies for the HTML handlers.
type Server struct {
	catalog   *service.CatalogService
	enricher  Enricher
	sessions  *sessions.CookieStore
	templates map[string]*template.Template
	router    *chi.Mux
	logger    *slog.Logger
}

// NewServer creates a new web server with all routes configured.
func NewServer(catalog *service.CatalogService, enricher Enricher, sessionSecret string, logger *slog.Logger) (*Server, error) {
	templates, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	s := &Server{
		catalog:   catalog,
		enricher:  enricher,
		sessions:  sessions.NewCookieStore([]byte(sessionSecret)),
		templates: templates,
		router:    chi.NewRouter(),
		logger:    logger,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s, nil
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealthCheck)

	s.router.Get("/", s.handleIndex)
	s.router.Get("/adicionar", s.handleAddForm)
	s.router.Post("/adicionar", s.handleAdd)
	s.router.Post("/buscar-info", s.handleFetchInfo)
	s.router.Get("/detalhes/{id}", s.handleDetails)
	s.router.Post("/detalhes/{id}", s.handleSaveNotes)
	s.router.Get("/editar/{id}", s.handleEditForm)
	s.router.Post("/editar/{id}", s.handleEdit)
	s.router.Get("/excluir/{id}", s.handleDelete)
}

// parseTemplates builds one template set per page, each sharing the
// layout and its partials.
func parseTemplates() (map[string]*template.Template, error) {
	templates := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		t, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", page, err)
		}
		templates[page] = t
	}
	return templates, nil
}

// render executes a page template inside the shared layout.
func (s *Server) render(w http.ResponseWriter, page string, data any) {
	t, ok := s.templates[page]
	if !ok {
		s.logger.Error("unknown template", "page", page)
		http.Error(w, "Erro interno", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := t.ExecuteTemplate(w, "layout", data); err != nil {
		s.logger.Error("render failed", "page", page, "error", err)
	}
}
