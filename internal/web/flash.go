package web

import (
	"encoding/gob"
	"net/http"
)

// sessionName is the cookie holding flash messages.
const sessionName = "estante_session"

// Flash is a one-shot message shown on the next rendered page.
type Flash struct {
	Category string // success, error, warning
	Message  string
}

func init() {
	gob.Register(Flash{})
}

// addFlash queues a flash message in the session cookie.
func (s *Server) addFlash(w http.ResponseWriter, r *http.Request, category, message string) {
	session, _ := s.sessions.Get(r, sessionName)
	session.AddFlash(Flash{Category: category, Message: message})
	if err := session.Save(r, w); err != nil {
		s.logger.Warn("failed to save session", "error", err)
	}
}

// popFlashes drains queued flash messages, clearing them from the cookie.
func (s *Server) popFlashes(w http.ResponseWriter, r *http.Request) []Flash {
	session, _ := s.sessions.Get(r, sessionName)

	raw := session.Flashes()
	if len(raw) == 0 {
		return nil
	}
	if err := session.Save(r, w); err != nil {
		s.logger.Warn("failed to save session", "error", err)
	}

	flashes := make([]Flash, 0, len(raw))
	for _, f := range raw {
		if flash, ok := f.(Flash); ok {
			flashes = append(flashes, flash)
		}
	}
	return flashes
}
