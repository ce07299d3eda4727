package llm

import (
	"fmt"
	"strings"

	"chatbots/internal/config"
)

// Factory creates LLM clients with consistent logic
type Factory struct {
	BaseURL          string
	OpenaiAPIKey     string
	YandexOAuthToken string
	YandexFolderID   string
}

func NewFactory(cfg *config.Assistant) *Factory {
	return &Factory{
		BaseURL:          cfg.LLMBaseURL,
		OpenaiAPIKey:     cfg.OpenAIAPIKey,
		YandexOAuthToken: cfg.YandexOAuthToken,
		YandexFolderID:   cfg.YandexFolderID,
	}
}

// CreateClient builds the backend for provider. Ollama is served through its
// OpenAI-compatible endpoint and needs no key.
func (f *Factory) CreateClient(provider config.LLMProvider) (Client, error) {
	switch config.LLMProvider(strings.ToLower(string(provider))) {
	case config.ProviderOllama:
		key := f.OpenaiAPIKey
		if key == "" {
			key = "ollama"
		}
		return NewOpenAI(key, f.BaseURL), nil
	case config.ProviderOpenAI:
		if f.OpenaiAPIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required for provider %s", provider)
		}
		baseURL := f.BaseURL
		if baseURL == defaultOllamaURL {
			baseURL = ""
		}
		return NewOpenAI(f.OpenaiAPIKey, baseURL), nil
	case config.ProviderYandex:
		return NewYandex(f.YandexOAuthToken, f.YandexFolderID)
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", provider)
	}
}
