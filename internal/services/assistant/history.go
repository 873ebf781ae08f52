// Package assistant implements the conversational layer: context building,
// bounded conversation history, per-session dispatch, and the transport to
// the assistant proxy endpoint.
package assistant

import (
	"sync"

	"github.com/ternarybob/sapore/internal/models"
)

// DefaultMaxHistoryLength is the default number of user/assistant pairs
// retained per session.
const DefaultMaxHistoryLength = 15

// ConversationHistory is a bounded append-only turn log. After any mutation
// the length never exceeds 2*maxLength entries; overflow drops the oldest
// entries. The trim is positional, not pair-aware, so it can strand a user
// turn without its reply at the boundary.
type ConversationHistory struct {
	mu        sync.Mutex
	turns     []models.ConversationTurn
	maxLength int
}

// NewConversationHistory creates a history capped at 2*maxLength turns
// (0 means DefaultMaxHistoryLength).
func NewConversationHistory(maxLength int) *ConversationHistory {
	if maxLength <= 0 {
		maxLength = DefaultMaxHistoryLength
	}
	return &ConversationHistory{
		maxLength: maxLength,
	}
}

// Append adds a turn, trimming the oldest entries when the cap is exceeded.
func (h *ConversationHistory) Append(role models.Role, content string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.turns = append(h.turns, models.ConversationTurn{Role: role, Content: content})

	limit := h.maxLength * 2
	if len(h.turns) > limit {
		h.turns = h.turns[len(h.turns)-limit:]
	}
}

// Snapshot returns a copy of the current turns in order.
func (h *ConversationHistory) Snapshot() []models.ConversationTurn {
	h.mu.Lock()
	defer h.mu.Unlock()

	snapshot := make([]models.ConversationTurn, len(h.turns))
	copy(snapshot, h.turns)
	return snapshot
}

// Len returns the current number of turns.
func (h *ConversationHistory) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.turns)
}

// Clear resets the history to empty.
func (h *ConversationHistory) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.turns = nil
}
