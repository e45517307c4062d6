package llm

import (
	"context"
	"time"
)

// Service defines the interface for model provider operations. Complete
// sends a fully rendered prompt and returns the model's free text; any
// SQL it contains is isolated downstream.
type Service interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Configure(config Config) error
}

// Config represents model provider configuration
type Config struct {
	Provider string        `json:"provider"` // openai, anthropic, ollama
	Model    string        `json:"model"`
	APIKey   string        `json:"api_key,omitempty"`
	BaseURL  string        `json:"base_url,omitempty"`
	Timeout  time.Duration `json:"timeout,omitempty"`
}

// Provider constants for supported providers
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderOllama    = "ollama"
)
