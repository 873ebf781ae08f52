package app

import (
	"fmt"
	"net/http"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/sapore/internal/common"
	"github.com/ternarybob/sapore/internal/handlers"
	"github.com/ternarybob/sapore/internal/interfaces"
	"github.com/ternarybob/sapore/internal/services/assistant"
	"github.com/ternarybob/sapore/internal/services/llm"
	"github.com/ternarybob/sapore/internal/services/places"
	"github.com/ternarybob/sapore/internal/services/recommend"
	badgerstore "github.com/ternarybob/sapore/internal/storage/badger"
)

// App holds all application components and dependencies
type App struct {
	Config         *common.Config
	Logger         arbor.ILogger
	StorageManager interfaces.StorageManager

	// Domain services
	PlacesService  interfaces.PlacesService
	LLMService     interfaces.LLMService
	Recommender    *recommend.Recommender
	SessionManager *assistant.SessionManager
	Transport      assistant.Transport
	Dispatcher     *assistant.Dispatcher

	// HTTP handlers
	APIHandler       *handlers.APIHandler
	RecommendHandler *handlers.RecommendHandler
	ChatHandler      *handlers.ChatHandler
	ProxyHandler     *handlers.ProxyHandler
}

// New initializes the application with all dependencies
func New(cfg *common.Config, logger arbor.ILogger) (*App, error) {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	storageManager, err := badgerstore.NewManager(logger, &cfg.Storage.Badger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	app.StorageManager = storageManager

	app.PlacesService = places.NewClient(
		cfg.PlacesAPI.APIKey,
		places.WithLogger(logger),
		places.WithRateLimit(cfg.PlacesAPI.RateLimit),
		places.WithHTTPClient(&http.Client{Timeout: cfg.PlacesAPI.RequestTimeout}),
	)

	app.Recommender = recommend.NewRecommender(logger, cfg.Recommend.MaxResults)

	app.SessionManager = assistant.NewSessionManager(logger, cfg.Assistant.MaxHistoryLength)
	if err := app.SessionManager.StartPruning(cfg.Sessions.PruneSchedule, cfg.MaxSessionIdle()); err != nil {
		logger.Warn().Err(err).Str("schedule", cfg.Sessions.PruneSchedule).Msg("Session pruning disabled")
	}

	// The transport is resolved once: an external proxy when configured,
	// otherwise this server's own /api/ai-proxy endpoint. The model provider
	// only runs behind the platform endpoint.
	app.Transport = assistant.ResolveTransport(cfg.Assistant.ProxyURL, cfg.BaseURL())
	if cfg.Assistant.ProxyURL == "" {
		llmService, err := llm.NewLLMService(cfg, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize LLM service: %w", err)
		}
		app.LLMService = llmService
	} else {
		logger.Info().Str("proxy_url", cfg.Assistant.ProxyURL).Msg("Using external AI proxy")
	}

	app.Dispatcher = assistant.NewDispatcher(app.Transport, logger)

	app.APIHandler = handlers.NewAPIHandler(app.SessionManager, app.StorageManager, app.Transport, logger)
	app.RecommendHandler = handlers.NewRecommendHandler(app.Recommender, app.PlacesService, app.StorageManager.PreferenceStorage(), logger)
	app.ChatHandler = handlers.NewChatHandler(app.Dispatcher, app.SessionManager, logger)
	app.ProxyHandler = handlers.NewProxyHandler(app.LLMService, logger)

	logger.Info().
		Str("proxy_endpoint", app.Transport.Endpoint()).
		Str("llm_provider", cfg.LLM.Provider).
		Msg("Application initialized")

	return app, nil
}

// Close releases application resources
func (a *App) Close() error {
	if a.SessionManager != nil {
		a.SessionManager.StopPruning()
	}

	if a.LLMService != nil {
		if err := a.LLMService.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to close LLM service")
		}
	}

	if a.StorageManager != nil {
		if err := a.StorageManager.Close(); err != nil {
			return fmt.Errorf("failed to close storage: %w", err)
		}
	}

	return nil
}
