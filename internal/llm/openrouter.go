package llm

import "errors"

const openRouterURL = "https://openrouter.ai/api/v1"

// OpenRouterProvider is the chat completions adapter pointed at
// OpenRouter. Model ids use OpenRouter's vendor/model form and are sent
// as given.
type OpenRouterProvider struct {
	*OpenAIProvider
}

func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenRouterProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openrouter: API key is required")
	}
	base := cfg.BaseURL
	if base == "" {
		base = openRouterURL
	}
	return &OpenRouterProvider{newChatCompletionsProvider(cfg.APIKey, base, cfg.Model)}, nil
}
