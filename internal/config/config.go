package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config represents the application configuration
type Config struct {
	Database   DatabaseConfig   `json:"database"   envPrefix:"WARM_AGENT_"`
	LLM        LLMConfig        `json:"llm"        envPrefix:"WARM_AGENT_"`
	Translator TranslatorConfig `json:"translator" envPrefix:"WARM_AGENT_"`
	Logging    LoggingConfig    `json:"logging"    envPrefix:"WARM_AGENT_"`
}

// DatabaseConfig represents the reporting database configuration
type DatabaseConfig struct {
	Path         string `json:"path"          env:"DB_PATH"          envDefault:"~/.config/warm-agent/warm.db"`
	QueryTimeout string `json:"query_timeout" env:"DB_QUERY_TIMEOUT" envDefault:"60s"`
	ReadOnly     bool   `json:"read_only"     env:"DB_READ_ONLY"     envDefault:"true"`
}

// LLMConfig represents the model provider configuration
type LLMConfig struct {
	Provider string `json:"provider" env:"LLM_PROVIDER" envDefault:"openai"`
	Model    string `json:"model"    env:"LLM_MODEL"    envDefault:"gpt-4o-mini"`
	APIKey   string `json:"api_key"  env:"LLM_API_KEY"`
	BaseURL  string `json:"base_url" env:"LLM_BASE_URL"`
	Timeout  string `json:"timeout"  env:"LLM_TIMEOUT"  envDefault:"60s"`
}

// TranslatorConfig tunes the translation pipeline
type TranslatorConfig struct {
	MaxReasoningSteps int `json:"max_reasoning_steps" env:"MAX_REASONING_STEPS" envDefault:"4"`
	RowRenderLimit    int `json:"row_render_limit"    env:"ROW_LIMIT"           envDefault:"100"`
	ProbeRowLimit     int `json:"probe_row_limit"     env:"PROBE_ROW_LIMIT"     envDefault:"10"`
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level  string `json:"level"  env:"LOG_LEVEL"  envDefault:"info"`   // debug, info, warn, error
	Format string `json:"format" env:"LOG_FORMAT" envDefault:"text"`   // text, json
	Output string `json:"output" env:"LOG_OUTPUT" envDefault:"stderr"` // stdout, stderr, file
	File   string `json:"file"   env:"LOG_FILE"   envDefault:"~/.config/warm-agent/logs/agent.log"`
}

// LoadConfig loads configuration from .env, config file, and environment variables
func LoadConfig() (*Config, error) {
	return LoadConfigWithOverrides(nil)
}

// LoadConfigWithOverrides loads configuration with optional command-line flag overrides
func LoadConfigWithOverrides(flagOverrides map[string]interface{}) (*Config, error) {
	// Load .env from the working directory if present; real environment wins
	_ = godotenv.Load()

	config := &Config{}

	// Load from config file if it exists
	configPath := getConfigPath()
	if _, err := os.Stat(configPath); err == nil {
		if err := loadConfigFromFile(config, configPath); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	// Apply environment variable overrides using env library (also sets defaults);
	// the WARM_AGENT_ prefix comes from the envPrefix struct tags
	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("failed to parse environment variables: %w", err)
	}

	// Provider API keys follow the provider SDK conventions when not set directly
	if config.LLM.APIKey == "" {
		switch strings.ToLower(config.LLM.Provider) {
		case "openai":
			config.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		case "anthropic":
			config.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		}
	}

	// Apply command-line flag overrides
	if flagOverrides != nil {
		applyFlagOverrides(config, flagOverrides)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// loadConfigFromFile loads configuration from a JSON file
func loadConfigFromFile(config *Config, configPath string) error {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var fileConfig Config
	if err := json.Unmarshal(data, &fileConfig); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	mergeConfigs(config, &fileConfig)

	return nil
}

// applyFlagOverrides applies command-line flag overrides to configuration
func applyFlagOverrides(config *Config, overrides map[string]interface{}) {
	for key, value := range overrides {
		switch key {
		case "db-path":
			if str, ok := value.(string); ok && str != "" {
				config.Database.Path = str
			}
		case "model":
			if str, ok := value.(string); ok && str != "" {
				config.LLM.Model = str
			}
		case "provider":
			if str, ok := value.(string); ok && str != "" {
				config.LLM.Provider = str
			}
		case "log-level":
			if str, ok := value.(string); ok && str != "" {
				config.Logging.Level = str
			}
		}
	}
}

// mergeConfigs merges source configuration into target configuration
func mergeConfigs(target, source *Config) {
	var mergeValues func(t, s reflect.Value)
	mergeValues = func(t, s reflect.Value) {
		if t.Kind() != s.Kind() {
			return
		}

		if t.Kind() == reflect.Struct {
			for i := range s.NumField() {
				mergeValues(t.Field(i), s.Field(i))
			}
		} else if s.Kind() == reflect.Bool {
			t.Set(s)
		} else if !s.IsZero() {
			t.Set(s)
		}
	}

	mergeValues(reflect.ValueOf(target).Elem(), reflect.ValueOf(source).Elem())
}

// validateConfig validates the configuration for common errors
func validateConfig(config *Config) error {
	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[strings.ToLower(config.Logging.Level)] {
		return fmt.Errorf(
			"invalid log level: %s (must be debug, info, warn, or error)",
			config.Logging.Level,
		)
	}

	validLogFormats := map[string]bool{
		"text": true, "json": true,
	}
	if !validLogFormats[strings.ToLower(config.Logging.Format)] {
		return fmt.Errorf("invalid log format: %s (must be text or json)", config.Logging.Format)
	}

	validLogOutputs := map[string]bool{
		"stdout": true, "stderr": true, "file": true,
	}
	if !validLogOutputs[strings.ToLower(config.Logging.Output)] {
		return fmt.Errorf(
			"invalid log output: %s (must be stdout, stderr, or file)",
			config.Logging.Output,
		)
	}

	validProviders := map[string]bool{
		"openai": true, "anthropic": true, "ollama": true,
	}
	if !validProviders[strings.ToLower(config.LLM.Provider)] {
		return fmt.Errorf(
			"invalid LLM provider: %s (must be openai, anthropic, or ollama)",
			config.LLM.Provider,
		)
	}

	if _, err := time.ParseDuration(config.Database.QueryTimeout); err != nil {
		return fmt.Errorf("invalid database query timeout: %s", config.Database.QueryTimeout)
	}

	if _, err := time.ParseDuration(config.LLM.Timeout); err != nil {
		return fmt.Errorf("invalid LLM timeout: %s", config.LLM.Timeout)
	}

	if config.Translator.MaxReasoningSteps <= 0 {
		return fmt.Errorf(
			"max reasoning steps must be positive: %d",
			config.Translator.MaxReasoningSteps,
		)
	}

	if config.Translator.RowRenderLimit <= 0 {
		return fmt.Errorf("row render limit must be positive: %d", config.Translator.RowRenderLimit)
	}

	return nil
}

// QueryTimeoutDuration returns the parsed query timeout
func (c *Config) QueryTimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.Database.QueryTimeout)
	if err != nil {
		return 60 * time.Second
	}

	return d
}

// LLMTimeoutDuration returns the parsed model call timeout
func (c *Config) LLMTimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.LLM.Timeout)
	if err != nil {
		return 60 * time.Second
	}

	return d
}

// getConfigPath returns the path to the configuration file
func getConfigPath() string {
	if configPath := os.Getenv("WARM_AGENT_CONFIG"); configPath != "" {
		return expandPath(configPath)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./config.json"
	}

	return filepath.Join(homeDir, ".config", "warm-agent", "config.json")
}

// expandPath expands ~ to home directory in file paths
func expandPath(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	if path == "~" {
		return homeDir
	}

	if strings.HasPrefix(path, "~/") {
		return filepath.Join(homeDir, path[2:])
	}

	return path
}

// ExpandAllPaths expands all paths in the configuration
func (c *Config) ExpandAllPaths() {
	c.Database.Path = expandPath(c.Database.Path)
	c.Logging.File = expandPath(c.Logging.File)
}

// EnsureDirectories creates necessary directories for the configuration
func (c *Config) EnsureDirectories() error {
	dirs := []string{
		filepath.Dir(c.Database.Path),
		filepath.Dir(c.Logging.File),
	}

	for _, dir := range dirs {
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", dir, err)
			}
		}
	}

	return nil
}
