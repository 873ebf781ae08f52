package handlers

import (
	"net/http"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/sapore/internal/common"
	"github.com/ternarybob/sapore/internal/interfaces"
	"github.com/ternarybob/sapore/internal/services/assistant"
)

type APIHandler struct {
	sessions  *assistant.SessionManager
	storage   interfaces.StorageManager
	transport assistant.Transport
	logger    arbor.ILogger
}

func NewAPIHandler(sessions *assistant.SessionManager, storage interfaces.StorageManager, transport assistant.Transport, logger arbor.ILogger) *APIHandler {
	return &APIHandler{
		sessions:  sessions,
		storage:   storage,
		transport: transport,
		logger:    logger,
	}
}

// VersionHandler returns version information
func (h *APIHandler) VersionHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"version":    common.GetVersion(),
		"build":      common.GetBuild(),
		"git_commit": common.GetGitCommit(),
	})
}

// HealthHandler returns health check status
func (h *APIHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// StatusHandler returns runtime status details
func (h *APIHandler) StatusHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	profiles := 0
	if h.storage != nil {
		if count, err := h.storage.PreferenceStorage().CountProfiles(r.Context()); err == nil {
			profiles = count
		} else {
			h.logger.Warn().Err(err).Msg("Failed to count preference profiles")
		}
	}

	status := map[string]interface{}{
		"status":              "ok",
		"version":             common.GetVersion(),
		"sessions":            h.sessions.Count(),
		"preference_profiles": profiles,
	}
	if h.transport != nil {
		status["proxy_endpoint"] = h.transport.Endpoint()
	}

	WriteJSON(w, http.StatusOK, status)
}

// NotFoundHandler handles 404 errors with JSON response
func (h *APIHandler) NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusNotFound, map[string]interface{}{
		"error":   "Not Found",
		"path":    r.URL.Path,
		"message": "The requested endpoint does not exist",
	})
}
