package quizgen

import (
	"context"
	"fmt"
	"net/http"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"

	"quizcraft/internal/config"
)

const (
	ProviderOllama   = "ollama"
	ProviderOpenAI   = "openai"
	ProviderGoogleAI = "googleai"

	defaultOllamaURL = "http://localhost:11434"
)

// NewModel builds the langchaingo client for the configured provider.
func NewModel(ctx context.Context, cfg config.LLMConfig) (llms.Model, error) {
	switch cfg.Provider {
	case ProviderOllama:
		serverURL := cfg.ServerURL
		if serverURL == "" {
			serverURL = defaultOllamaURL
		}
		httpClient := &http.Client{Timeout: cfg.Timeout}
		return ollama.New(
			ollama.WithServerURL(serverURL),
			ollama.WithModel(cfg.Model),
			ollama.WithHTTPClient(httpClient),
		)
	case ProviderOpenAI:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("openai api key is required")
		}
		opts := []openai.Option{openai.WithModel(cfg.Model), openai.WithToken(cfg.APIKey)}
		if cfg.ServerURL != "" {
			opts = append(opts, openai.WithBaseURL(cfg.ServerURL))
		}
		return openai.New(opts...)
	case ProviderGoogleAI:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("googleai api key is required")
		}
		return googleai.New(ctx, googleai.WithAPIKey(cfg.APIKey), googleai.WithDefaultModel(cfg.Model))
	default:
		return nil, fmt.Errorf("unsupported llm provider %q", cfg.Provider)
	}
}
