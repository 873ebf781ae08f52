package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/sapore/internal/models"
	"github.com/ternarybob/sapore/internal/services/assistant"
)

// ChatRequest is the payload for POST /api/chat
type ChatRequest struct {
	SessionID          string                     `json:"session_id,omitempty"`
	Message            string                     `json:"message" validate:"required"`
	Recommendations    []models.ScoredPlace       `json:"recommendations,omitempty"`
	UserLocation       *models.Location           `json:"user_location,omitempty"`
	SelectedRestaurant *models.SelectedRestaurant `json:"selected_restaurant,omitempty"`
}

// ClearRequest is the payload for POST /api/chat/clear
type ClearRequest struct {
	SessionID string `json:"session_id" validate:"required"`
}

// ChatHandler handles chat-related HTTP requests
type ChatHandler struct {
	dispatcher *assistant.Dispatcher
	sessions   *assistant.SessionManager
	validate   *validator.Validate
	logger     arbor.ILogger
}

// NewChatHandler creates a new chat handler
func NewChatHandler(dispatcher *assistant.Dispatcher, sessions *assistant.SessionManager, logger arbor.ILogger) *ChatHandler {
	return &ChatHandler{
		dispatcher: dispatcher,
		sessions:   sessions,
		validate:   validator.New(),
		logger:     logger,
	}
}

// ChatHandler handles POST /api/chat requests. The reply is always a usable
// string; transport failures surface as assistant text, not HTTP errors.
func (h *ChatHandler) ChatHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error().Err(err).Msg("Failed to decode chat request")
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Message field is required")
		return
	}

	session := h.sessions.GetOrCreate(req.SessionID)

	h.logger.Info().
		Str("session_id", session.ID).
		Int("message_length", len(req.Message)).
		Int("recommendations", len(req.Recommendations)).
		Msg("Processing chat request")

	reply := h.dispatcher.Respond(r.Context(), session, req.Message, req.Recommendations, req.UserLocation, req.SelectedRestaurant)

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"session_id": session.ID,
		"response":   reply,
	})
}

// ClearHandler handles POST /api/chat/clear requests
func (h *ChatHandler) ClearHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req ClearRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error().Err(err).Msg("Failed to decode clear request")
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Session ID is required")
		return
	}

	h.sessions.Remove(req.SessionID)

	h.logger.Info().Str("session_id", req.SessionID).Msg("Conversation session cleared")

	WriteSuccess(w, "Conversation cleared")
}
