package llm

import "fmt"

type ProviderConfig struct {
	Provider string
	APIKey   string
	Model    string
}

func NewClient(cfg ProviderConfig) (Client, error) {
	switch cfg.Provider {
	case "gemini":
		return NewGeminiClient(cfg.APIKey, cfg.Model), nil
	case "anthropic":
		return NewAnthropicClient(cfg.APIKey, cfg.Model), nil
	case "openai":
		return NewOpenAIClient(cfg.APIKey, cfg.Model), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s", cfg.Provider)
	}
}
