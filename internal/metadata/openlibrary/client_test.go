package openlibrary

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
	var searchCalls, workCalls atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("/search.json", func(w http.ResponseWriter, r *http.Request) {
		searchCalls.Add(1)
		if got := r.URL.Query().Get("title"); got != "cafe e vida" {
			t.Errorf("search title = %q, want normalized %q", got, "cafe e vida")
		}
		if got := r.URL.Query().Get("limit"); got != "1" {
			t.Errorf("limit = %q, want 1", got)
		}
		w.Write([]byte(`{
			"numFound": 1,
			"docs": [{
				"key": "/works/OL123W",
				"title": "Café é Vida",
				"author_name": ["Autora Uma", "Autor Dois"],
				"subject": ["fiction", "BRAZILIAN literature", "coffee", "extra"],
				"number_of_pages_median": 208,
				"cover_i": 8739161
			}]
		}`))
	})
	mux.HandleFunc("/works/OL123W.json", func(w http.ResponseWriter, _ *http.Request) {
		workCalls.Add(1)
		w.Write([]byte(`{"description": {"type": "/type/text", "value": "Uma longa sinopse."}}`))
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := New(srv.URL, testLogger())
	rec := c.Lookup(context.Background(), "Café é Vida!")

	if rec.Title != "Café é Vida" {
		t.Errorf("Title = %q", rec.Title)
	}
	if rec.Author != "Autora Uma, Autor Dois" {
		t.Errorf("Author = %q", rec.Author)
	}
	// First three subjects, each capitalized.
	if rec.Genres != "Fiction, Brazilian literature, Coffee" {
		t.Errorf("Genres = %q", rec.Genres)
	}
	if rec.Pages != "208" {
		t.Errorf("Pages = %q", rec.Pages)
	}
	if rec.Synopsis != "Uma longa sinopse." {
		t.Errorf("Synopsis = %q", rec.Synopsis)
	}
	if want := coversBaseURL + "/b/id/8739161-M.jpg"; rec.CoverURL != want {
		t.Errorf("CoverURL = %q, want %q", rec.CoverURL, want)
	}

	if searchCalls.Load() != 1 || workCalls.Load() != 1 {
		t.Errorf("calls = %d search, %d work; want 1 each", searchCalls.Load(), workCalls.Load())
	}
}

func TestLookupPrefersEditionKeyCover(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/search.json", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"docs": [{"title": "Duna", "cover_edition_key": "OL7353617M", "cover_i": 42}]}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	rec := New(srv.URL, testLogger()).Lookup(context.Background(), "Duna")
	if want := coversBaseURL + "/b/olid/OL7353617M-M.jpg"; rec.CoverURL != want {
		t.Errorf("CoverURL = %q, want %q", rec.CoverURL, want)
	}
}

func TestLookupStringDescriptionAndExcerptFallback(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/search.json", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"docs": [{"key": "/works/OL9W", "title": "Duna"}]}`))
	})
	mux.HandleFunc("/works/OL9W.json", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"description": "Sinopse direta."}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	rec := New(srv.URL, testLogger()).Lookup(context.Background(), "Duna")
	if rec.Synopsis != "Sinopse direta." {
		t.Errorf("Synopsis = %q", rec.Synopsis)
	}

	mux2 := http.NewServeMux()
	mux2.HandleFunc("/search.json", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"docs": [{"key": "/works/OL10W", "title": "Duna"}]}`))
	})
	mux2.HandleFunc("/works/OL10W.json", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"excerpts": [{"text": "Primeiro trecho."}, {"text": "Segundo."}]}`))
	})
	srv2 := httptest.NewServer(mux2)
	defer srv2.Close()

	rec = New(srv2.URL, testLogger()).Lookup(context.Background(), "Duna")
	if rec.Synopsis != "Primeiro trecho." {
		t.Errorf("Synopsis from excerpt = %q", rec.Synopsis)
	}
}

func TestLookupNoResults(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/search.json", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"numFound": 0, "docs": []}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	rec := New(srv.URL, testLogger()).Lookup(context.Background(), "nada")
	if !rec.IsEmpty() {
		t.Errorf("expected empty record, got %+v", rec)
	}
}

func TestLookupSwallowsFailures(t *testing.T) {
	t.Run("server error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		rec := New(srv.URL, testLogger()).Lookup(context.Background(), "duna")
		if !rec.IsEmpty() {
			t.Errorf("expected empty record on server error, got %+v", rec)
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`{not json`))
		}))
		defer srv.Close()

		rec := New(srv.URL, testLogger()).Lookup(context.Background(), "duna")
		if !rec.IsEmpty() {
			t.Errorf("expected empty record on malformed body, got %+v", rec)
		}
	})

	t.Run("unreachable host", func(t *testing.T) {
		// Closed server: connection refused.
		srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		srv.Close()

		rec := New(srv.URL, testLogger()).Lookup(context.Background(), "duna")
		if !rec.IsEmpty() {
			t.Errorf("expected empty record on network error, got %+v", rec)
		}
	})
}

func TestLookupWorkFetchFailureKeepsRest(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/search.json", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"docs": [{"key": "/works/OL11W", "title": "Duna", "author_name": ["Frank Herbert"]}]}`))
	})
	mux.HandleFunc("/works/OL11W.json", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	rec := New(srv.URL, testLogger()).Lookup(context.Background(), "Duna")
	if rec.Title != "Duna" || rec.Author != "Frank Herbert" {
		t.Errorf("record lost fields on work failure: %+v", rec)
	}
	if rec.Synopsis != "" {
		t.Errorf("Synopsis = %q, want empty", rec.Synopsis)
	}
}

func TestLookupMemoizesPerTitle(t *testing.T) {
	var calls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/search.json", func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.Write([]byte(`{"docs": [{"title": "Duna"}]}`))
	})
	srv := httptest.NewServer(mux)
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
