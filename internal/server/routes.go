package server

import (
	"net/http"
)

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// API routes - Recommendations
	mux.HandleFunc("/api/recommendations", s.app.RecommendHandler.RecommendationsHandler) // POST - score and rerank nearby restaurants
	mux.HandleFunc("/api/preferences/learn", s.app.RecommendHandler.LearnHandler)         // POST - fold a selection into stored preferences

	// API routes - Chat
	mux.HandleFunc("/api/chat", s.app.ChatHandler.ChatHandler)        // POST - run a conversational turn
	mux.HandleFunc("/api/chat/clear", s.app.ChatHandler.ClearHandler) // POST - drop a conversation session

	// API routes - AI proxy (platform endpoint backing the chat transport)
	mux.HandleFunc("/api/ai-proxy", s.app.ProxyHandler.ProxyHandler)

	// API routes - System
	mux.HandleFunc("/api/version", s.app.APIHandler.VersionHandler)
	mux.HandleFunc("/api/health", s.app.APIHandler.HealthHandler)
	mux.HandleFunc("/api/status", s.app.APIHandler.StatusHandler)

	// 404 handler for unmatched API routes
	mux.HandleFunc("/api/", s.app.APIHandler.NotFoundHandler)

	return mux
}
