package llm

import "fmt"

const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// OpenRouterProvider rides the OpenAI provider against OpenRouter's
// OpenAI-compatible endpoint. Model IDs are vendor-prefixed
// ("anthropic/claude-3-haiku") and never friendly-name mapped.
type OpenRouterProvider struct {
	*OpenAIProvider
}

// NewOpenRouterProvider builds the provider from config; the API key is
// mandatory and BaseURL defaults to the public OpenRouter endpoint.
func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenRouterProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openrouter API key is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultOpenRouterBaseURL
	}

	inner, err := newOpenAIProviderRaw(OpenAIConfig{
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
		BaseURL: baseURL,
	})
	if err != nil {
		return nil, err
	}
	return &OpenRouterProvider{OpenAIProvider: inner}, nil
}
