package googlebooks

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLookupShapesRecord(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "intitle:Duna" {
			t.Errorf("q = %q, want %q", got, "intitle:Duna")
		}
		if got := r.URL.Query().Get("maxResults"); got != "1" {
			t.Errorf("maxResults = %q, want 1", got)
		}
		w.Write([]byte(`{
			"totalItems": 1,
			"items": [{
				"volumeInfo": {
					"title": "Dune",
					"authors": ["Frank Herbert"],
					"description": "Uma saga no deserto.",
					"pageCount": 680,
					"categories": ["fiction", "SCIENCE fiction", "epic", "extra"],
					"imageLinks": {
						"thumbnail": "http://books.google.com/books/content?id=x&img=1"
					}
				}
			}]
		}`))
	}))
	defer srv.Close()

	rec := New(srv.URL, testLogger()).Lookup(context.Background(), "Duna")

	// Title and author are intentionally not contributed by this client.
	if rec.Title != "" || rec.Author != "" {
		t.Errorf("Title/Author should be empty, got %q/%q", rec.Title, rec.Author)
	}
	if rec.Pages != "680" {
		t.Errorf("Pages = %q", rec.Pages)
	}
	if rec.Synopsis != "Uma saga no deserto." {
		t.Errorf("Synopsis = %q", rec.Synopsis)
	}
	if rec.Genres != "Fiction, Science fiction, Epic" {
		t.Errorf("Genres = %q", rec.Genres)
	}
	if want := "https://books.google.com/books/content?id=x&img=1"; rec.CoverURL != want {
		t.Errorf("CoverURL = %q, want %q", rec.CoverURL, want)
	}
}

func TestLookupMissingKeysTolerated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"totalItems": 1, "items": [{"volumeInfo": {"title": "Duna"}}]}`))
	}))
	defer srv.Close()

	rec := New(srv.URL, testLogger()).Lookup(context.Background(), "Duna")
	if !rec.IsEmpty() {
		t.Errorf("expected empty record from bare volumeInfo, got %+v", rec)
	}
}

func TestLookupNoItems(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"totalItems": 0}`))
	}))
	defer srv.Close()

	rec := New(srv.URL, testLogger()).Lookup(context.Background(), "nada")
	if !rec.IsEmpty() {
		t.Errorf("expected empty record, got %+v", rec)
	}
}

func TestLookupSwallowsFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	rec := New(srv.URL, testLogger()).Lookup(context.Background(), "duna")
	if !rec.IsEmpty() {
		t.Errorf("expected empty record on status error, got %+v", rec)
	}
}

func TestLookupMemoizesPerTitle(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.Write([]byte(`{"items": [{"volumeInfo": {"pageCount": 100}}]}`))
	}))
	defer srv.Close()

	c := New(srv.URL, testLogger())
	c.Lookup(context.Background(), "Duna")
	c.Lookup(context.Background(), "Duna")
	if calls.Load() != 1 {
		t.Errorf("search called %d times, want 1", calls.Load())
	}

	c.ClearCache()
	c.Lookup(context.Background(), "Duna")
	if calls.Load() != 2 {
		t.Errorf("search called %d times after ClearCache, want 2", calls.Load())
	}
}

func TestSecureURL(t *testing.T) {
	tests := []struct{ in, want string }{
		{"http://example.com/c.jpg", "https://example.com/c.jpg"},
		{"https://example.com/c.jpg", "https://example.com/c.jpg"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := secureURL(tt.in); got != tt.want {
			t.Errorf("secureURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
