// Package personalize generates landing page and ebook copy from enriched
// profiles. Copy comes from the LLM provider chain when credentials are
// configured, with a deterministic fallback built from the prompt context
// tables otherwise.
package personalize

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jonathan/lead-enricher/internal/llm"
	"github.com/jonathan/lead-enricher/internal/prompts"
	"github.com/jonathan/lead-enricher/internal/types"
)

const (
	shortMaxTokens = 500
	ebookMaxTokens = 1000
	temperature    = 0.7

	// Parse ladder: plain retry, then a fix prompt embedding the bad reply
	maxParseAttempts = 3

	maxHookLength     = 200
	maxFramingLength  = 400
	maxEbookCTALength = 350

	newsContextLimit = 500
)

// vipDomains always get the advanced model tier regardless of quality score.
var vipDomains = map[string]bool{
	"google.com":    true,
	"microsoft.com": true,
	"apple.com":     true,
	"amazon.com":    true,
}

// Generator produces personalized copy for enriched leads.
type Generator struct {
	chain *llm.Chain
}

// New returns a Generator backed by the given provider chain.
func New(chain *llm.Chain) *Generator {
	return &Generator{chain: chain}
}

// tierFor promotes high-value leads to the advanced model tier.
func tierFor(profile *types.NormalizedProfile) llm.ModelTier {
	if profile.DataQualityScore >= 0.8 || vipDomains[profile.Domain] {
		return llm.TierAdvanced
	}
	return llm.TierStandard
}

// Generate produces the intro hook and CTA for a lead. It never returns an
// error: with no providers or after exhausted retries it falls back to
// deterministic copy with ModelUsed "fallback".
func (g *Generator) Generate(ctx context.Context, profile *types.NormalizedProfile, userCtx types.UserContext) *types.PersonalizedCopy {
	if !g.chain.Available() {
		return fallbackShort(profile, userCtx)
	}

	start := time.Now()
	systemPrompt := prompts.MustGet("personalization.json", "short-system")
	userPrompt := buildShortPrompt(profile, userCtx)

	content, provider, err := g.completeWithParseRetry(
		ctx, tierFor(profile), systemPrompt, userPrompt, "short-fix", shortMaxTokens,
		func(raw string) error { _, err := parseShort(raw); return err },
	)
	if err != nil {
		log.Printf("[PERSONALIZE] short copy generation failed: %v", err)
		return fallbackShort(profile, userCtx)
	}

	parsed, err := parseShort(content)
	if err != nil {
		// completeWithParseRetry already validated; this is unreachable in practice
		log.Printf("[PERSONALIZE] short copy reparse failed: %v", err)
		return fallbackShort(profile, userCtx)
	}

	latency := time.Since(start).Milliseconds()
	log.Printf("[PERSONALIZE] generated short copy: provider=%s latency=%dms", provider, latency)
	return &types.PersonalizedCopy{
		IntroHook: parsed.IntroHook,
		CTA:       parsed.CTA,
		ModelUsed: provider,
		LatencyMS: latency,
	}
}

// GenerateEbook produces the three ebook sections. companyNews is the news
// summary attached by enrichment; it is clipped before prompting. Like
// Generate, it degrades to deterministic fallback copy rather than failing.
func (g *Generator) GenerateEbook(ctx context.Context, profile *types.NormalizedProfile, userCtx types.UserContext, companyNews string) *types.EbookCopy {
	if !g.chain.Available() {
		return fallbackEbook(profile, userCtx)
	}

	start := time.Now()
	systemPrompt := prompts.MustGet("personalization.json", "ebook-system")
	userPrompt := buildEbookPrompt(profile, userCtx, companyNews)

	content, provider, err := g.completeWithParseRetry(
		ctx, llm.TierStandard, systemPrompt, userPrompt, "ebook-fix", ebookMaxTokens,
		func(raw string) error { _, err := parseEbook(raw); return err },
	)
	if err != nil {
		log.Printf("[PERSONALIZE] ebook copy generation failed: %v", err)
		return fallbackEbook(profile, userCtx)
	}

	parsed, err := parseEbook(content)
	if err != nil {
		log.Printf("[PERSONALIZE] ebook copy reparse failed: %v", err)
		return fallbackEbook(profile, userCtx)
	}

	latency := time.Since(start).Milliseconds()
	log.Printf("[PERSONALIZE] generated ebook copy: provider=%s latency=%dms", provider, latency)
	return &types.EbookCopy{
		PersonalizedHook: parsed.PersonalizedHook,
		CaseStudyFraming: parsed.CaseStudyFraming,
		PersonalizedCTA:  parsed.PersonalizedCTA,
		ModelUsed:        provider,
		LatencyMS:        latency,
	}
}

// completeWithParseRetry runs the completion-and-parse ladder: a plain retry
// after the first unparseable reply, then a fix prompt embedding the
// malformed reply. Transport failures inside the chain are not retried here;
// the chain handles those itself.
func (g *Generator) completeWithParseRetry(
	ctx context.Context,
	tier llm.ModelTier,
	systemPrompt, userPrompt, fixKey string,
	maxTokens int,
	parse func(string) error,
) (string, string, error) {
	var lastErr error
	prompt := userPrompt

	for attempt := 0; attempt < maxParseAttempts; attempt++ {
		content, provider, err := g.chain.Complete(ctx, tier, systemPrompt, prompt, maxTokens, temperature)
		if err != nil {
			return "", "", err
		}

		if err := parse(content); err == nil {
			return content, provider, nil
		} else {
			lastErr = err
			log.Printf("[PERSONALIZE] parse attempt %d failed: %v", attempt+1, err)
		}

		if attempt == maxParseAttempts-2 {
			// Last attempt gets a fix prompt with the malformed reply embedded
			template := prompts.MustGet("personalization.json", fixKey)
			prompt = prompts.Format(template, map[string]string{"FailedResponse": content})
		}
	}

	return "", "", fmt.Errorf("personalize: response unparseable after %d attempts: %w", maxParseAttempts, lastErr)
}
