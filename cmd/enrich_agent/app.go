package main

import (
	"context"
	"fmt"
	"log"

	"github.com/jonathan/lead-enricher/internal/config"
	"github.com/jonathan/lead-enricher/internal/delivery"
	"github.com/jonathan/lead-enricher/internal/enrich"
	"github.com/jonathan/lead-enricher/internal/llm"
	"github.com/jonathan/lead-enricher/internal/personalize"
	"github.com/jonathan/lead-enricher/internal/pipeline"
	"github.com/jonathan/lead-enricher/internal/store"
)

// loadAppConfig resolves the effective configuration: optional JSON file,
// then environment fill-in, then validation.
func loadAppConfig(configPath string, mock bool) (config.Config, error) {
	var cfg config.Config
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}
	if mock {
		cfg.Mock = true
		cfg.DatabaseURL = ""
	}

	merged := cfg.MergeWithEnv()
	if merged.Mock {
		merged.DatabaseURL = ""
	}
	if err := merged.Validate(); err != nil {
		return merged, err
	}
	return merged, nil
}

// buildRunner assembles the pipeline from configuration. The returned store
// must be closed by the caller.
func buildRunner(ctx context.Context, cfg config.Config) (*pipeline.Runner, store.Store, error) {
	var st store.Store
	if cfg.DatabaseURL == "" {
		if !cfg.Mock {
			log.Printf("[APP] no database configured, using in-memory store")
		}
		st = store.NewMemory()
	} else {
		pg, err := store.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		st = pg
	}

	var sender delivery.Sender
	if cfg.ResendAPIKey != "" && !cfg.Mock {
		sender = delivery.NewResend(cfg.ResendAPIKey, cfg.ResendFrom)
	} else {
		sender = delivery.NewMock()
	}

	enricher := enrich.New(cfg.ProviderKeys(), st)
	generator := personalize.New(llm.NewChain(cfg.LLMKeys()))
	return pipeline.New(enricher, generator, st, sender), st, nil
}
