package llm

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
)

const (
	maxAttempts = 3
	retryDelay  = time.Second
)

// ErrNoProviders is returned by Chain.Complete when no provider could be
// initialized. Callers should fall back to deterministic copy.
var ErrNoProviders = errors.New("llm: no providers configured")

// Keys holds the API keys for the supported providers. Empty keys disable
// the corresponding provider.
type Keys struct {
	Anthropic string
	OpenAI    string
	Google    string
}

type chainEntry struct {
	name      string
	providers map[ModelTier]Provider
	models    map[ModelTier]string
}

// Chain tries providers in a fixed order until one returns usable content.
// Each provider carries a model per tier so callers can promote individual
// requests to a stronger model.
type Chain struct {
	entries []chainEntry
}

// NewChain builds a provider chain from the configured keys. Providers are
// tried in order: Anthropic, OpenAI, Google. A chain with no entries is
// valid; Complete then returns ErrNoProviders.
func NewChain(keys Keys) *Chain {
	chain := &Chain{}
	candidates := []struct {
		name string
		key  string
	}{
		{ProviderAnthropic, keys.Anthropic},
		{ProviderOpenAI, keys.OpenAI},
		{ProviderGoogle, keys.Google},
	}

	for _, c := range candidates {
		if c.key == "" {
			continue
		}
		config := DefaultConfig(c.name)
		entry := chainEntry{
			name:      c.name,
			providers: make(map[ModelTier]Provider, 2),
			models:    make(map[ModelTier]string, 2),
		}
		initialized := true
		for _, tier := range []ModelTier{TierStandard, TierAdvanced} {
			model := config.GetModel(tier)
			provider, err := NewProvider(c.name, model, c.key)
			if err != nil {
				log.Printf("[LLM] skipping provider %s: %v", c.name, err)
				initialized = false
				break
			}
			entry.providers[tier] = provider
			entry.models[tier] = model
		}
		if !initialized {
			continue
		}
		chain.entries = append(chain.entries, entry)
		log.Printf("[LLM] provider %s initialized (standard=%s advanced=%s)",
			c.name, entry.models[TierStandard], entry.models[TierAdvanced])
	}

	if len(chain.entries) == 0 {
		log.Printf("[LLM] no providers configured, generated copy will use fallbacks")
	}
	return chain
}

// Available reports whether at least one provider was initialized.
func (c *Chain) Available() bool {
	return len(c.entries) > 0
}

// Providers returns the names of the initialized providers in fallback order.
func (c *Chain) Providers() []string {
	names := make([]string, 0, len(c.entries))
	for _, e := range c.entries {
		names = append(names, e.name)
	}
	return names
}

// Complete tries each provider in order until one returns non-empty content.
// The returned string pair is (content, provider name). All-provider failure
// wraps the last error seen.
func (c *Chain) Complete(
	ctx context.Context,
	tier ModelTier,
	systemPrompt, userPrompt string,
	maxTokens int,
	temperature float64,
) (string, string, error) {
	if len(c.entries) == 0 {
		return "", "", ErrNoProviders
	}

	var lastErr error
	for _, entry := range c.entries {
		provider, ok := entry.providers[tier]
		if !ok {
			provider = entry.providers[TierStandard]
		}
		text, err := completeWithRetry(ctx, provider, systemPrompt, userPrompt, maxTokens, temperature)
		if err == nil {
			return text, entry.name, nil
		}
		lastErr = err
		log.Printf("[LLM] provider %s failed: %v", entry.name, err)
		if ctx.Err() != nil {
			break
		}
	}
	return "", "", fmt.Errorf("llm: all providers failed: %w", lastErr)
}

// completeWithRetry retries a single provider on transient failures with a
// linear backoff. Non-retryable errors abort immediately.
func completeWithRetry(
	ctx context.Context,
	provider Provider,
	systemPrompt, userPrompt string,
	maxTokens int,
	temperature float64,
) (string, error) {
	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(retryDelay * time.Duration(attempt)):
			}
		}

		text, err := provider.Complete(ctx, systemPrompt, userPrompt, maxTokens, temperature)
		if err == nil {
			if strings.TrimSpace(text) == "" {
				lastErr = errors.New("llm: empty response")
				continue
			}
			return text, nil
		}
		if !isRetryable(err) {
			return "", err
		}
		lastErr = err
	}
	return "", lastErr
}

// isRetryable reports whether an error looks transient. The SDKs do not share
// a typed error surface, so rate-limit and overload conditions are matched on
// the message.
func isRetryable(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range []string{"429", "503", "rate limit", "overloaded", "timeout", "temporarily unavailable"} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
