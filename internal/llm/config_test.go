package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig(ProviderAnthropic)

	assert.Equal(t, ProviderAnthropic, config.Provider)
	assert.Equal(t, "claude-3-5-haiku-20241022", config.GetModel(TierStandard))
	assert.Equal(t, "claude-opus-4-5-20251101", config.GetModel(TierAdvanced))
}

func TestDefaultConfig_AllProviders(t *testing.T) {
	for _, provider := range []string{ProviderAnthropic, ProviderOpenAI, ProviderGoogle} {
		config := DefaultConfig(provider)
		assert.Equal(t, provider, config.Provider)
		assert.NotEmpty(t, config.GetModel(TierStandard))
		assert.NotEmpty(t, config.GetModel(TierAdvanced))
	}
}

func TestDefaultConfig_UnknownProvider(t *testing.T) {
	config := DefaultConfig("mystery")

	// Unknown providers fall back to the Anthropic defaults
	assert.Equal(t, ProviderAnthropic, config.Provider)
	assert.Equal(t, "claude-3-5-haiku-20241022", config.GetModel(TierStandard))
}

func TestGetModel_Fallback(t *testing.T) {
	config := &Config{
		Provider: ProviderAnthropic,
		Models: map[ModelTier]string{
			TierStandard: "fallback-model",
		},
	}

	// Unknown tier should fall back to TierStandard
	assert.Equal(t, "fallback-model", config.GetModel("unknown"))
}

func TestGetModel_EmptyConfig(t *testing.T) {
	config := &Config{
		Provider: ProviderAnthropic,
		Models:   map[ModelTier]string{},
	}

	// Empty config should return empty string
	assert.Equal(t, "", config.GetModel(TierAdvanced))
}

func TestWithModel(t *testing.T) {
	config := DefaultConfig(ProviderOpenAI)
	newConfig := config.WithModel(TierAdvanced, "custom-model")

	// Original should be unchanged
	assert.Equal(t, "gpt-4o", config.GetModel(TierAdvanced))

	// New config should have custom model
	assert.Equal(t, "custom-model", newConfig.GetModel(TierAdvanced))

	// Other tiers should be copied
	assert.Equal(t, "gpt-4o-mini", newConfig.GetModel(TierStandard))
}

func TestDefaultConfig_ReturnsCopy(t *testing.T) {
	first := DefaultConfig(ProviderGoogle)
	first.Models[TierStandard] = "mutated"

	second := DefaultConfig(ProviderGoogle)
	assert.Equal(t, "gemini-1.5-flash", second.GetModel(TierStandard))
}

func TestModelTierConstants(t *testing.T) {
	assert.Equal(t, ModelTier("standard"), TierStandard)
	assert.Equal(t, ModelTier("advanced"), TierAdvanced)
}
