// Package llm provides the model providers behind the platform's AI proxy
// endpoint. Each provider turns a full conversation, system prompt included,
// into a single assistant reply.
package llm

import (
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/sapore/internal/common"
	"github.com/ternarybob/sapore/internal/interfaces"
)

// NewLLMService creates the configured provider implementation.
func NewLLMService(cfg *common.Config, logger arbor.ILogger) (interfaces.LLMService, error) {
	logger.Info().Str("provider", cfg.LLM.Provider).Msg("Initializing LLM service")

	switch cfg.LLM.Provider {
	case "claude":
		return NewClaudeService(&cfg.Claude, logger)
	case "gemini":
		return NewGeminiService(&cfg.Gemini, logger)
	default:
		return nil, fmt.Errorf("invalid LLM provider '%s': must be 'claude' or 'gemini'", cfg.LLM.Provider)
	}
}

// validateMessages checks the shape every provider requires: a non-empty
// conversation with at least one user turn.
func validateMessages(messages []interfaces.Message) error {
	if len(messages) == 0 {
		return fmt.Errorf("messages cannot be empty")
	}
	for _, msg := range messages {
		if msg.Role == "user" {
			return nil
		}
	}
	return fmt.Errorf("at least one message must have role 'user'")
}
