package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("WARM_AGENT_CONFIG", "/nonexistent/config.json")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "60s", cfg.Database.QueryTimeout)
	assert.True(t, cfg.Database.ReadOnly)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, 4, cfg.Translator.MaxReasoningSteps)
	assert.Equal(t, 100, cfg.Translator.RowRenderLimit)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "stderr", cfg.Logging.Output)
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	t.Setenv("WARM_AGENT_CONFIG", "/nonexistent/config.json")
	t.Setenv("WARM_AGENT_DB_PATH", "/tmp/reporting.db")
	t.Setenv("WARM_AGENT_LLM_PROVIDER", "ollama")
	t.Setenv("WARM_AGENT_MAX_REASONING_STEPS", "2")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/reporting.db", cfg.Database.Path)
	assert.Equal(t, "ollama", cfg.LLM.Provider)
	assert.Equal(t, 2, cfg.Translator.MaxReasoningSteps)
}

func TestLoadConfig_ProviderKeyFallback(t *testing.T) {
	t.Setenv("WARM_AGENT_CONFIG", "/nonexistent/config.json")
	t.Setenv("WARM_AGENT_LLM_PROVIDER", "openai")
	t.Setenv("WARM_AGENT_LLM_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "sk-test", cfg.LLM.APIKey)
}

func TestLoadConfig_FlagOverrides(t *testing.T) {
	t.Setenv("WARM_AGENT_CONFIG", "/nonexistent/config.json")

	cfg, err := LoadConfigWithOverrides(map[string]interface{}{
		"db-path":   "/data/warm.db",
		"model":     "claude-3-5-haiku-latest",
		"provider":  "anthropic",
		"log-level": "debug",
	})
	require.NoError(t, err)

	assert.Equal(t, "/data/warm.db", cfg.Database.Path)
	assert.Equal(t, "claude-3-5-haiku-latest", cfg.LLM.Model)
	assert.Equal(t, "anthropic", cfg.LLM.Provider)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadConfig_Validation(t *testing.T) {
	tests := []struct {
		name    string
		envKey  string
		envVal  string
		wantErr string
	}{
		{"invalid log level", "WARM_AGENT_LOG_LEVEL", "verbose", "invalid log level"},
		{"invalid log format", "WARM_AGENT_LOG_FORMAT", "xml", "invalid log format"},
		{"invalid provider", "WARM_AGENT_LLM_PROVIDER", "bard", "invalid LLM provider"},
		{"invalid timeout", "WARM_AGENT_DB_QUERY_TIMEOUT", "soon", "invalid database query timeout"},
		{"non-positive steps", "WARM_AGENT_MAX_REASONING_STEPS", "0", "max reasoning steps must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("WARM_AGENT_CONFIG", "/nonexistent/config.json")
			t.Setenv(tt.envKey, tt.envVal)

			_, err := LoadConfig()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestQueryTimeoutDuration(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{QueryTimeout: "45s"}}
	assert.Equal(t, "45s", cfg.QueryTimeoutDuration().String())

	cfg.Database.QueryTimeout = "garbage"
	assert.Equal(t, "1m0s", cfg.QueryTimeoutDuration().String())
}
