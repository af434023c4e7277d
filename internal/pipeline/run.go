// Package pipeline provides the high-level orchestration for enriching a
// contact and producing its personalized copy: enrich, apply user overrides,
// generate, compliance-check, persist, and optionally deliver.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/jonathan/lead-enricher/internal/compliance"
	"github.com/jonathan/lead-enricher/internal/delivery"
	"github.com/jonathan/lead-enricher/internal/enrich"
	"github.com/jonathan/lead-enricher/internal/personalize"
	"github.com/jonathan/lead-enricher/internal/store"
	"github.com/jonathan/lead-enricher/internal/types"
)

// Ebook sections run longer than the short outreach copy.
const (
	maxEbookHookLength = 200
	maxEbookCTALength  = 350

	defaultBatchConcurrency = 5
)

// Runner wires the enrichment, personalization, compliance, and storage
// stages together. Both the CLI and the HTTP server drive it.
type Runner struct {
	enricher     *enrich.Enricher
	generator    *personalize.Generator
	shortChecker *compliance.Checker
	ebookChecker *compliance.Checker
	store        store.Store
	sender       delivery.Sender
}

// New builds a Runner. sender may be nil when delivery is not configured.
func New(enricher *enrich.Enricher, generator *personalize.Generator, st store.Store, sender delivery.Sender) *Runner {
	return &Runner{
		enricher:     enricher,
		generator:    generator,
		shortChecker: compliance.NewChecker(),
		ebookChecker: compliance.NewCheckerWithLimits(maxEbookHookLength, maxEbookCTALength),
		store:        st,
		sender:       sender,
	}
}

// Run executes the full flow for one contact. Enrichment and generation never
// fail the run (they degrade to mocks and fallback copy); the only
// user-visible error is a failed finalized upsert.
func (r *Runner) Run(ctx context.Context, req *types.EnrichRequest) (*types.FinalizedRecord, error) {
	// Canonical contact identity: everything downstream (cache, upsert,
	// delivery) keys on the lowercased, trimmed address.
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if !req.ForceRefresh {
		cached, err := r.store.GetFinalized(ctx, email)
		if err != nil {
			log.Printf("[PIPELINE] cache lookup failed for %s: %v", email, err)
		} else if cached != nil {
			log.Printf("[PIPELINE] cache hit for %s", email)
			return cached, nil
		}
	}

	profile, _ := r.enricher.Enrich(ctx, email, req.Domain)
	userCtx := req.UserContext()
	applyOverrides(profile, userCtx)

	var companyNews string
	if profile.CompanyNews != nil {
		companyNews = profile.CompanyNews.Context
	}

	ebook := r.generator.GenerateEbook(ctx, profile, userCtx, companyNews)
	short := r.generator.Generate(ctx, profile, userCtx)

	shortResult := r.shortChecker.Check(short.IntroHook, short.CTA, true)
	intro, cta := finalCopy(shortResult, profile.FirstName)

	ebookResult := r.ebookChecker.Check(ebook.PersonalizedHook, ebook.PersonalizedCTA, true)
	ebook.PersonalizedHook, ebook.PersonalizedCTA = finalCopy(ebookResult, profile.FirstName)

	normalized, err := normalizedData(profile, ebook, userCtx)
	if err != nil {
		return nil, fmt.Errorf("pipeline: failed to build normalized data: %w", err)
	}

	record := &types.FinalizedRecord{
		Email:                email,
		NormalizedData:       normalized,
		PersonalizationIntro: intro,
		PersonalizationCTA:   cta,
		DataSources:          profile.DataSources,
		ResolvedAt:           profile.ResolvedAt,
	}

	if err := r.store.UpsertFinalized(ctx, record); err != nil {
		return nil, fmt.Errorf("pipeline: failed to persist %s: %w", email, err)
	}
	log.Printf("[PIPELINE] finalized %s: sources=%d quality=%.2f model=%s",
		email, len(profile.DataSources), profile.DataQualityScore, short.ModelUsed)

	if req.Deliver && r.sender != nil {
		msg := delivery.ComposeEbookEmail(email, profile.FirstName, profile.CompanyName, intro, cta)
		if err := r.sender.Send(ctx, msg); err != nil {
			// Delivery failure never invalidates the stored record
			log.Printf("[PIPELINE] delivery to %s failed: %v", email, err)
		}
	}

	return record, nil
}

// BatchResult is the per-email outcome of a batch run.
type BatchResult struct {
	Email  string
	Record *types.FinalizedRecord
	Err    error
}

// RunBatch enriches multiple emails with bounded concurrency. Results come
// back in input order; individual failures do not stop the batch.
func (r *Runner) RunBatch(ctx context.Context, emails []string, concurrency int64) []BatchResult {
	if concurrency < 1 {
		concurrency = defaultBatchConcurrency
	}
	sem := semaphore.NewWeighted(concurrency)
	results := make([]BatchResult, len(emails))

	var wg sync.WaitGroup
	for i, email := range emails {
		if err := sem.Acquire(ctx, 1); err != nil {
			results[i] = BatchResult{Email: email, Err: err}
			continue
		}
		wg.Add(1)
		go func(i int, email string) {
			defer wg.Done()
			defer sem.Release(1)
			record, err := r.Run(ctx, &types.EnrichRequest{Email: email})
			results[i] = BatchResult{Email: email, Record: record, Err: err}
		}(i, email)
	}
	wg.Wait()
	return results
}

// applyOverrides lets caller-supplied context win over enriched values.
func applyOverrides(profile *types.NormalizedProfile, userCtx types.UserContext) {
	if userCtx.FirstName != "" {
		profile.FirstName = userCtx.FirstName
	}
	if userCtx.LastName != "" {
		profile.LastName = userCtx.LastName
	}
	if userCtx.CompanyName != "" {
		profile.CompanyName = userCtx.CompanyName
	}
	if userCtx.Industry != "" {
		profile.Industry = userCtx.Industry
	}
	if userCtx.CompanySize != "" {
		profile.CompanySize = userCtx.CompanySize
	}
}

// finalCopy picks the copy pair to persist from a compliance result. Terminal
// failures fall back to the always-safe pair.
func finalCopy(result compliance.Result, firstName string) (string, string) {
	if !result.Passed {
		return compliance.SafeIntro(firstName), compliance.SafeCTA()
	}
	intro, cta := result.OriginalIntro, result.OriginalCTA
	if result.CorrectedIntro != "" {
		intro = result.CorrectedIntro
	}
	if result.CorrectedCTA != "" {
		cta = result.CorrectedCTA
	}
	return intro, cta
}

// normalizedData flattens the profile to a JSON map and embeds the ebook copy
// and user context alongside it.
func normalizedData(profile *types.NormalizedProfile, ebook *types.EbookCopy, userCtx types.UserContext) (map[string]any, error) {
	payload, err := json.Marshal(profile)
	if err != nil {
		return nil, err
	}
	var data map[string]any
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, err
	}
	data["ebook_personalization"] = ebook
	data["user_context"] = userCtx
	return data, nil
}
