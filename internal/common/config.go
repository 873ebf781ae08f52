package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Environment string          `toml:"environment"` // "development" or "production"
	Server      ServerConfig    `toml:"server"`
	Logging     LoggingConfig   `toml:"logging"`
	Storage     StorageConfig   `toml:"storage"`
	PlacesAPI   PlacesAPIConfig `toml:"places_api"`
	Recommend   RecommendConfig `toml:"recommend"`
	Assistant   AssistantConfig `toml:"assistant"`
	Sessions    SessionsConfig  `toml:"sessions"`
	LLM         LLMConfig       `toml:"llm"`
	Claude      ClaudeConfig    `toml:"claude"`
	Gemini      GeminiConfig    `toml:"gemini"`
}

type ServerConfig struct {
	Port int    `toml:"port"`
	Host string `toml:"host"`
}

type LoggingConfig struct {
	Level  string   `toml:"level"`  // "debug", "info", "warn", "error"
	Format string   `toml:"format"` // "json" or "text"
	Output []string `toml:"output"` // "stdout", "file"
}

type StorageConfig struct {
	Badger BadgerConfig `toml:"badger"`
}

// BadgerConfig represents BadgerDB-specific configuration
type BadgerConfig struct {
	Path           string `toml:"path"`             // Database directory path
	ResetOnStartup bool   `toml:"reset_on_startup"` // Delete database on startup for clean test runs
}

// PlacesAPIConfig contains Google Places API configuration
type PlacesAPIConfig struct {
	APIKey         string        `toml:"api_key"`         // Google Places API key
	RateLimit      int           `toml:"rate_limit"`      // Maximum requests per second
	RequestTimeout time.Duration `toml:"request_timeout"` // HTTP request timeout
	SearchRadius   int           `toml:"search_radius"`   // Nearby search radius in meters
}

// RecommendConfig contains recommendation engine configuration
type RecommendConfig struct {
	MaxResults  int     `toml:"max_results"`  // Recommendations returned per search
	MaxDistance float64 `toml:"max_distance"` // Proximity normalization distance in meters
}

// AssistantConfig contains conversational assistant configuration
type AssistantConfig struct {
	ProxyURL         string `toml:"proxy_url"`          // External AI proxy URL; empty uses the platform endpoint
	MaxHistoryLength int    `toml:"max_history_length"` // Conversation pairs kept per session
}

// SessionsConfig contains conversation session lifecycle configuration
type SessionsConfig struct {
	MaxIdle       string `toml:"max_idle"`       // Idle duration before a session is pruned
	PruneSchedule string `toml:"prune_schedule"` // Cron schedule for the pruning sweep
}

// LLMConfig selects the AI provider behind the platform proxy endpoint
type LLMConfig struct {
	Provider string `toml:"provider"` // "claude" or "gemini"
}

// ClaudeConfig contains Anthropic Claude API configuration
type ClaudeConfig struct {
	APIKey      string  `toml:"api_key"`     // Anthropic API key
	Model       string  `toml:"model"`       // Model name (default: "claude-sonnet-4-20250514")
	MaxTokens   int     `toml:"max_tokens"`  // Maximum tokens in response (default: 4096)
	Timeout     string  `toml:"timeout"`     // Operation timeout as duration string
	Temperature float32 `toml:"temperature"` // Completion temperature
}

// GeminiConfig contains Google Gemini API configuration
type GeminiConfig struct {
	APIKey      string  `toml:"api_key"`     // Google Gemini API key
	Model       string  `toml:"model"`       // Model name (default: "gemini-2.0-flash")
	Timeout     string  `toml:"timeout"`     // Operation timeout as duration string
	Temperature float32 `toml:"temperature"` // Completion temperature
}

// NewDefaultConfig creates a configuration with default values.
// Only user-facing settings should be exposed in sapore.toml.
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Port: 8080,
			Host: "localhost",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: []string{"stdout", "file"},
		},
		Storage: StorageConfig{
			Badger: BadgerConfig{
				Path: "./data",
			},
		},
		PlacesAPI: PlacesAPIConfig{
			APIKey:         "", // User must provide API key in config file
			RateLimit:      10,
			RequestTimeout: 30 * time.Second,
			SearchRadius:   1000,
		},
		Recommend: RecommendConfig{
			MaxResults:  10,
			MaxDistance: 1000,
		},
		Assistant: AssistantConfig{
			ProxyURL:         "", // Empty resolves to the platform's own proxy endpoint
			MaxHistoryLength: 15,
		},
		Sessions: SessionsConfig{
			MaxIdle:       "1h",
			PruneSchedule: "*/10 * * * *", // Every 10 minutes
		},
		LLM: LLMConfig{
			Provider: "claude",
		},
		Claude: ClaudeConfig{
			APIKey:      "", // User must provide API key (ANTHROPIC_API_KEY or config)
			Model:       "claude-sonnet-4-20250514",
			MaxTokens:   4096,
			Timeout:     "1m",
			Temperature: 0.7,
		},
		Gemini: GeminiConfig{
			APIKey:      "", // User must provide API key (GOOGLE_API_KEY or config)
			Model:       "gemini-2.0-flash",
			Timeout:     "1m",
			Temperature: 0.7,
		},
	}
}

// LoadFromFile loads configuration with priority: defaults -> file -> env -> CLI
func LoadFromFile(path string) (*Config, error) {
	if path == "" {
		return LoadFromFiles()
	}
	return LoadFromFiles(path)
}

// LoadFromFiles loads configuration from multiple files. Later files override
// earlier files; environment variables override all files.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("SAPORE_ENV"); env != "" {
		config.Environment = env
	} else if env := os.Getenv("GO_ENV"); env != "" {
		config.Environment = env
	}

	// Server configuration
	if port := os.Getenv("SAPORE_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("SAPORE_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}

	// Logging configuration
	if level := os.Getenv("SAPORE_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if format := os.Getenv("SAPORE_LOG_FORMAT"); format != "" {
		config.Logging.Format = format
	}
	if output := os.Getenv("SAPORE_LOG_OUTPUT"); output != "" {
		outputs := []string{}
		for _, o := range strings.Split(output, ",") {
			if trimmed := strings.TrimSpace(o); trimmed != "" {
				outputs = append(outputs, trimmed)
			}
		}
		if len(outputs) > 0 {
			config.Logging.Output = outputs
		}
	}

	// Storage configuration
	if badgerPath := os.Getenv("SAPORE_BADGER_PATH"); badgerPath != "" {
		config.Storage.Badger.Path = badgerPath
	}

	// Places API configuration
	if apiKey := os.Getenv("SAPORE_PLACES_API_KEY"); apiKey != "" {
		config.PlacesAPI.APIKey = apiKey
	} else if apiKey := os.Getenv("GOOGLE_PLACES_API_KEY"); apiKey != "" {
		config.PlacesAPI.APIKey = apiKey
	}

	// Assistant configuration
	if proxyURL := os.Getenv("SAPORE_ASSISTANT_PROXY_URL"); proxyURL != "" {
		config.Assistant.ProxyURL = proxyURL
	}

	// LLM provider configuration
	if provider := os.Getenv("SAPORE_LLM_PROVIDER"); provider != "" {
		config.LLM.Provider = provider
	}
	if apiKey := os.Getenv("SAPORE_CLAUDE_API_KEY"); apiKey != "" {
		config.Claude.APIKey = apiKey
	} else if apiKey := os.Getenv("ANTHROPIC_API_KEY"); apiKey != "" {
		config.Claude.APIKey = apiKey
	}
	if apiKey := os.Getenv("SAPORE_GEMINI_API_KEY"); apiKey != "" {
		config.Gemini.APIKey = apiKey
	} else if apiKey := os.Getenv("GOOGLE_API_KEY"); apiKey != "" {
		config.Gemini.APIKey = apiKey
	}
}

// ApplyFlagOverrides applies CLI flag values to config (highest priority)
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port > 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}

// MaxSessionIdle parses the configured idle duration, falling back to one
// hour when unset or invalid.
func (c *Config) MaxSessionIdle() time.Duration {
	if d, err := time.ParseDuration(c.Sessions.MaxIdle); err == nil && d > 0 {
		return d
	}
	return time.Hour
}

// BaseURL returns the server's own HTTP address.
func (c *Config) BaseURL() string {
	return fmt.Sprintf("http://%s:%d", c.Server.Host, c.Server.Port)
}

// IsProduction returns true when running in production mode
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}
