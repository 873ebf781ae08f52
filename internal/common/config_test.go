package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, 10, cfg.Recommend.MaxResults)
	assert.Equal(t, 1000.0, cfg.Recommend.MaxDistance)
	assert.Equal(t, 15, cfg.Assistant.MaxHistoryLength)
	assert.Empty(t, cfg.Assistant.ProxyURL, "default transport is the platform endpoint")
	assert.Equal(t, "claude", cfg.LLM.Provider)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sapore.toml")
	content := `
environment = "production"

[server]
port = 9090

[recommend]
max_results = 5
max_distance = 2000.0

[assistant]
proxy_url = "https://proxy.example.com/ai"
max_history_length = 20

[llm]
provider = "gemini"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Environment)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Server.Host, "unset values keep defaults")
	assert.Equal(t, 5, cfg.Recommend.MaxResults)
	assert.Equal(t, 2000.0, cfg.Recommend.MaxDistance)
	assert.Equal(t, "https://proxy.example.com/ai", cfg.Assistant.ProxyURL)
	assert.Equal(t, 20, cfg.Assistant.MaxHistoryLength)
	assert.Equal(t, "gemini", cfg.LLM.Provider)
}

func TestLoadFromFiles_LaterFilesOverride(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "base.toml")
	override := filepath.Join(dir, "override.toml")

	require.NoError(t, os.WriteFile(base, []byte("[server]\nport = 9090\nhost = \"base\"\n"), 0644))
	require.NoError(t, os.WriteFile(override, []byte("[server]\nport = 7070\n"), 0644))

	cfg, err := LoadFromFiles(base, override)
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "base", cfg.Server.Host)
}

func TestLoadFromFile_MissingFile(t *testing.T) {
	_, err := LoadFromFile("/does/not/exist.toml")
	assert.Error(t, err)
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("SAPORE_SERVER_PORT", "6060")
	t.Setenv("SAPORE_LOG_LEVEL", "debug")
	t.Setenv("SAPORE_ASSISTANT_PROXY_URL", "https://env.example.com/ai")
	t.Setenv("SAPORE_LLM_PROVIDER", "gemini")

	cfg, err := LoadFromFiles()
	require.NoError(t, err)

	assert.Equal(t, 6060, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "https://env.example.com/ai", cfg.Assistant.ProxyURL)
	assert.Equal(t, "gemini", cfg.LLM.Provider)
}

func TestApplyFlagOverrides(t *testing.T) {
	cfg := NewDefaultConfig()

	ApplyFlagOverrides(cfg, 5050, "0.0.0.0")
	assert.Equal(t, 5050, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)

	ApplyFlagOverrides(cfg, 0, "")
	assert.Equal(t, 5050, cfg.Server.Port, "zero values must not override")
}

func TestMaxSessionIdle(t *testing.T) {
	cfg := NewDefaultConfig()
	assert.Equal(t, time.Hour, cfg.MaxSessionIdle())

	cfg.Sessions.MaxIdle = "30m"
	assert.Equal(t, 30*time.Minute, cfg.MaxSessionIdle())

	cfg.Sessions.MaxIdle = "garbage"
	assert.Equal(t, time.Hour, cfg.MaxSessionIdle())
}

func TestBaseURL(t *testing.T) {
	cfg := NewDefaultConfig()
	assert.Equal(t, "http://localhost:8080", cfg.BaseURL())
}
