package api

import (
	"net/http"

	"github.com/aurine/docgen/internal/config"
)

// handleGetConfig returns the running configuration.
// Secrets are excluded via json:"-" tags.
func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    s.cfg,
	})
}

// handleGetConfigSecrets returns the masked status of every secret.
func (s *Server) handleGetConfigSecrets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    config.CheckSecrets(s.cfg),
	})
}
