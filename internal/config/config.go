// Package config provides configuration loading and validation for the CLI
// and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/lead-enricher/internal/llm"
	"github.com/jonathan/lead-enricher/internal/providers"
)

// Config represents the application configuration that can be loaded from a
// JSON file. All fields are optional; missing values fall back to environment
// variables and defaults.
type Config struct {
	// Enrichment provider credentials. Any missing key switches that
	// provider to deterministic mock data.
	ApolloAPIKey   string `json:"apollo_api_key,omitempty"`
	PDLAPIKey      string `json:"pdl_api_key,omitempty"`
	HunterAPIKey   string `json:"hunter_api_key,omitempty"`
	GNewsAPIKey    string `json:"gnews_api_key,omitempty"`
	ZoomInfoAPIKey string `json:"zoominfo_api_key,omitempty"`

	// LLM provider credentials, tried in this order.
	AnthropicAPIKey string `json:"anthropic_api_key,omitempty"`
	OpenAIAPIKey    string `json:"openai_api_key,omitempty"`
	GoogleAPIKey    string `json:"google_api_key,omitempty"`

	// Delivery
	ResendAPIKey string `json:"resend_api_key,omitempty"`
	ResendFrom   string `json:"resend_from,omitempty"`

	// Storage. Empty means the in-memory store.
	DatabaseURL string `json:"database_url,omitempty"`

	// Server
	Port int `json:"port,omitempty"`

	// Behavior
	Verbose bool `json:"verbose,omitempty"` // Print detailed debug information
	Mock    bool `json:"mock,omitempty"`    // Force mock providers and in-memory storage
}

// DefaultPort is used when neither config nor flags set one.
const DefaultPort = 8080

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.Mock && c.DatabaseURL != "" {
		return fmt.Errorf("config error: 'mock' and 'database_url' are mutually exclusive")
	}
	return nil
}

// MergeWithEnv returns a new Config with empty fields filled from environment
// variables. Explicit config file values always win.
func (c *Config) MergeWithEnv() Config {
	result := *c

	fill := func(target *string, envKey string) {
		if *target == "" {
			*target = os.Getenv(envKey)
		}
	}

	fill(&result.ApolloAPIKey, "APOLLO_API_KEY")
	fill(&result.PDLAPIKey, "PDL_API_KEY")
	fill(&result.HunterAPIKey, "HUNTER_API_KEY")
	fill(&result.GNewsAPIKey, "GNEWS_API_KEY")
	fill(&result.ZoomInfoAPIKey, "ZOOMINFO_API_KEY")
	fill(&result.AnthropicAPIKey, "ANTHROPIC_API_KEY")
	fill(&result.OpenAIAPIKey, "OPENAI_API_KEY")
	fill(&result.GoogleAPIKey, "GOOGLE_API_KEY")
	fill(&result.ResendAPIKey, "RESEND_API_KEY")
	fill(&result.ResendFrom, "RESEND_FROM")
	fill(&result.DatabaseURL, "DATABASE_URL")

	if result.Port == 0 {
		result.Port = DefaultPort
	}

	return result
}

// ProviderKeys assembles the enrichment credential set. Mock mode blanks all
// keys so every provider serves deterministic data.
func (c *Config) ProviderKeys() providers.Keys {
	if c.Mock {
		return providers.Keys{}
	}
	return providers.Keys{
		Apollo:   c.ApolloAPIKey,
		PDL:      c.PDLAPIKey,
		Hunter:   c.HunterAPIKey,
		GNews:    c.GNewsAPIKey,
		ZoomInfo: c.ZoomInfoAPIKey,
	}
}

// LLMKeys assembles the language model credential set.
func (c *Config) LLMKeys() llm.Keys {
	if c.Mock {
		return llm.Keys{}
	}
	return llm.Keys{
		Anthropic: c.AnthropicAPIKey,
		OpenAI:    c.OpenAIAPIKey,
		Google:    c.GoogleAPIKey,
	}
}
