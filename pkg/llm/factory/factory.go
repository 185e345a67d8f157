package factory

import (
	"fmt"

	"lending-concierge-be/internal/config"
	"lending-concierge-be/pkg/llm"
	"lending-concierge-be/pkg/llm/ollama"
	"lending-concierge-be/pkg/llm/openai"
)

// NewProvider builds the configured LLM provider.
func NewProvider(cfg config.AIConfig) (llm.Provider, error) {
	switch cfg.Provider {
	case "ollama":
		return ollama.NewProvider(cfg.OllamaBaseURL, cfg.Model), nil
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("openai provider requires OPENAI_API_KEY")
		}
		return openai.NewProvider(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.Model), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}
