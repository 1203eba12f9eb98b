package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/edgard/tgidbot/internal/inbound"
)

// maxUpdateBytes caps the webhook request body.
const maxUpdateBytes = 1 << 20

// timestampLayout is ISO-8601 with millisecond precision.
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// HealthResponse is the body of a successful health check.
type HealthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

func (s *Server) webhook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	update, err := inbound.DecodeUpdate(http.MaxBytesReader(w, r.Body, maxUpdateBytes))
	if err != nil {
		s.logger.WarnContext(ctx, "Ignoring undecodable update", "error", err)
		respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
		return
	}

	if err := s.updates.HandleUpdate(ctx, update); err != nil {
		s.logger.ErrorContext(ctx, "Failed to handle update", "error", err, "update_id", update.ID)
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Service:   s.cfg.ServiceName,
		Timestamp: time.Now().UTC().Format(timestampLayout),
		Version:   s.cfg.Version,
	})
}

func preflight(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
