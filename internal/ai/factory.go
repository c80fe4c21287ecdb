package ai

import (
	"fmt"

	"wcag-reviewer/internal/config"
)

func NewProvider(cfg *config.Config) (Provider, error) {

	switch cfg.AIProvider {

	case "ollama":
		return NewOllama(
			cfg.OllamaURL,
			cfg.OllamaModel,
		), nil

	case "gemini":
		return NewGemini(
			cfg.GeminiAPIKey,
			cfg.GeminiModel,
		), nil

	case "openai", "":
		return NewOpenAI(
			cfg.OpenAIKey,
			cfg.OpenAIModel,
			cfg.OpenAIURL,
		), nil

	default:
		return nil, fmt.Errorf("unknown AI_PROVIDER %q (openai | gemini | ollama)", cfg.AIProvider)
	}
}
