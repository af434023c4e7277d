// Package llm provides multi-provider LLM access for copy generation.
// Providers are tried in a fixed order (Anthropic, OpenAI, Google) until one
// succeeds, with per-provider retry on transient failures.
package llm

// ModelTier represents the capability level of a model
type ModelTier string

const (
	// TierStandard is the default tier for copy generation
	TierStandard ModelTier = "standard"
	// TierAdvanced is for high-value leads where output quality justifies the cost
	TierAdvanced ModelTier = "advanced"
)

// Provider name constants define the supported backends
const (
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
	ProviderGoogle    = "google"
)

// Config holds the model configuration for a single provider
type Config struct {
	Provider string
	Models   map[ModelTier]string
}

// DefaultConfig returns the default model configuration for a provider.
// Unknown providers fall back to the Anthropic defaults.
func DefaultConfig(provider string) *Config {
	models, ok := defaultModels[provider]
	if !ok {
		provider = ProviderAnthropic
		models = defaultModels[provider]
	}
	copied := make(map[ModelTier]string, len(models))
	for tier, model := range models {
		copied[tier] = model
	}
	return &Config{Provider: provider, Models: copied}
}

var defaultModels = map[string]map[ModelTier]string{
	ProviderAnthropic: {
		TierStandard: "claude-3-5-haiku-20241022",
		TierAdvanced: "claude-opus-4-5-20251101",
	},
	ProviderOpenAI: {
		TierStandard: "gpt-4o-mini",
		TierAdvanced: "gpt-4o",
	},
	ProviderGoogle: {
		TierStandard: "gemini-1.5-flash",
		TierAdvanced: "gemini-1.5-pro",
	},
}

// GetModel returns the model name for a given tier
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	// Fallback: unknown tiers use the standard model
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	return "" // No model configured
}

// WithModel returns a new Config with a specific model for a tier
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	newConfig := &Config{
		Provider: c.Provider,
		Models:   make(map[ModelTier]string),
	}
	for k, v := range c.Models {
		newConfig.Models[k] = v
	}
	newConfig.Models[tier] = model
	return newConfig
}
