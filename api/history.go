package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// withHistory rejects the request when no history store is configured.
func (s *Server) withHistory(w http.ResponseWriter) bool {
	if s.history == nil {
		writeError(w, http.StatusServiceUnavailable, "report history is disabled")
		return false
	}
	return true
}

func (s *Server) handleListHistory(w http.ResponseWriter, r *http.Request) {
	if !s.withHistory(w) {
		return
	}
	items, err := s.history.List(r.Context())
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: items})
}

func (s *Server) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	if !s.withHistory(w) {
		return
	}
	item, err := s.history.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: item})
}

func (s *Server) handleDeleteHistory(w http.ResponseWriter, r *http.Request) {
	if !s.withHistory(w) {
		return
	}
	if err := s.history.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeFailure(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	if !s.withHistory(w) {
		return
	}
	if err := s.history.Clear(r.Context()); err != nil {
		s.writeFailure(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
