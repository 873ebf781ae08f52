package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/sapore/internal/interfaces"
	"github.com/ternarybob/sapore/internal/models"
)

// ProxyHandler implements the platform's own AI proxy endpoint. It forwards
// the assembled conversation to the configured model provider.
type ProxyHandler struct {
	llmService interfaces.LLMService
	validate   *validator.Validate
	logger     arbor.ILogger
}

// NewProxyHandler creates a new AI proxy handler
func NewProxyHandler(llmService interfaces.LLMService, logger arbor.ILogger) *ProxyHandler {
	return &ProxyHandler{
		llmService: llmService,
		validate:   validator.New(),
		logger:     logger,
	}
}

// ProxyHandler handles POST /api/ai-proxy requests
func (h *ProxyHandler) ProxyHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	if h.llmService == nil {
		WriteJSON(w, http.StatusServiceUnavailable, models.ProxyResponse{Error: "No model provider configured"})
		return
	}

	var req models.ProxyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error().Err(err).Msg("Failed to decode proxy request")
		WriteJSON(w, http.StatusBadRequest, models.ProxyResponse{Error: "Invalid request body"})
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		WriteJSON(w, http.StatusBadRequest, models.ProxyResponse{Error: "Messages are required"})
		return
	}

	messages := make([]interfaces.Message, len(req.Messages))
	for i, turn := range req.Messages {
		messages[i] = interfaces.Message{
			Role:    string(turn.Role),
			Content: turn.Content,
		}
	}

	h.logger.Info().
		Int("message_count", len(messages)).
		Int("conversation_length", req.Metadata.ConversationLength).
		Msg("Processing AI proxy request")

	reply, err := h.llmService.Chat(r.Context(), messages)
	if err != nil {
		h.logger.Error().Err(err).Msg("AI proxy completion failed")
		WriteJSON(w, http.StatusInternalServerError, models.ProxyResponse{Error: err.Error()})
		return
	}

	WriteJSON(w, http.StatusOK, models.ProxyResponse{Response: reply})
}
