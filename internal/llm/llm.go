package llm

import (
	"context"
	"fmt"
	"strings"
)

// Provider is the interface for LLM backends.
type Provider interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string, maxTokens int, temperature float64) (string, error)
}

// NewProvider is the factory for creating LLM providers. It is a package-level
// variable so tests can replace it with a mock without modifying the call site.
// Tests must restore the original value; use t.Cleanup to do so safely.
var NewProvider func(providerName, model, apiKey string) (Provider, error) = defaultNewProvider

// defaultNewProvider dispatches to the appropriate provider implementation.
func defaultNewProvider(providerName, model, apiKey string) (Provider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("llm: %s API key is required", providerName)
	}
	if model == "" {
		return nil, fmt.Errorf("llm: model name is required for provider %s", providerName)
	}
	switch strings.ToLower(providerName) {
	case ProviderAnthropic:
		return newAnthropicProvider(model, apiKey)
	case ProviderOpenAI:
		return newOpenAIProvider(model, apiKey)
	case ProviderGoogle:
		return newGoogleProvider(model, apiKey)
	default:
		return nil, fmt.Errorf("llm: unknown provider %q", providerName)
	}
}
