// Package compliance validates generated personalization copy before it is
// stored or served. It checks length constraints, banned terms, and
// unsupported claims, and can auto-correct or fall back to safe content.
package compliance

import (
	"fmt"
	"log"
	"math/rand"
	"regexp"
	"strings"

	"github.com/jonathan/lead-enricher/internal/prompts"
	"github.com/jonathan/lead-enricher/internal/text"
)

// Length constraints
const (
	MaxIntroLength = 200
	MaxCTALength   = 150

	// Corrected copy shorter than this is not worth keeping
	minIntroLength = 20
	minCTALength   = 10

	// Beyond this many issues, correction is hopeless; use fallback copy
	maxCorrectableIssues = 3
)

// bannedTerms should never appear in generated copy
var bannedTerms = []string{
	// Unsubstantiated claims
	"guaranteed", "guarantee", "guarantees",
	"proven", "scientifically proven",
	"100%", "100 percent",
	"best in class", "best-in-class",
	"world's best", "world's leading",
	"industry leading", "industry-leading",
	"market leading", "market-leading",
	"#1", "number one", "number 1",
	"top rated", "top-rated",
	"award winning", "award-winning",
	"certified", "accredited",

	// Urgency/pressure tactics
	"act now", "limited time", "don't miss out",
	"once in a lifetime", "last chance",
	"expires soon", "hurry",

	// Exaggeration
	"revolutionary", "groundbreaking",
	"game-changing", "game changer",
	"unprecedented", "unparalleled",
	"unmatched", "unbeatable",

	// Absolute claims
	"always", "never", "everyone",
	"all companies", "every business",
	"no one else", "only solution",

	// Competitive attacks
	"unlike competitors", "better than",
	"competitors can't", "others fail",
}

// superlativePatterns flag evidence-free superlatives
var superlativePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bmost\s+\w+\b`),
	regexp.MustCompile(`(?i)\bbest\s+\w+\b`),
	regexp.MustCompile(`(?i)\beasiest\b`),
	regexp.MustCompile(`(?i)\bfastest\b`),
	regexp.MustCompile(`(?i)\bcheapest\b`),
	regexp.MustCompile(`(?i)\bsmartest\b`),
	regexp.MustCompile(`(?i)\bstrongest\b`),
	regexp.MustCompile(`(?i)\bbiggest\b`),
	regexp.MustCompile(`(?i)\blargest\b`),
	regexp.MustCompile(`(?i)\bfirst\s+ever\b`),
	regexp.MustCompile(`(?i)\bonly\s+(way|solution|choice)\b`),
}

// allowedPhrases are context-appropriate superlatives that pass
var allowedPhrases = []string{
	"best practices",
	"best fit",
	"best suited",
	"most common",
	"most important",
}

type claimPattern struct {
	re   *regexp.Regexp
	desc string
}

// claimPatterns flag quantified claims that need evidence
var claimPatterns = []claimPattern{
	{regexp.MustCompile(`(?i)\d+%\s+(increase|decrease|improvement|reduction|growth)`), "percentage claim"},
	{regexp.MustCompile(`(?i)\d+x\s+(faster|better|more|improvement)`), "multiplier claim"},
	{regexp.MustCompile(`(?i)save\s+\$?\d+`), "savings claim"},
	{regexp.MustCompile(`(?i)in\s+just\s+\d+\s+(days?|weeks?|months?)`), "time claim"},
	{regexp.MustCompile(`(?i)over\s+\d+\s+(customers?|clients?|companies)`), "customer count claim"},
}

// Result holds the outcome of a compliance check.
type Result struct {
	Passed         bool
	Issues         []string
	OriginalIntro  string
	OriginalCTA    string
	CorrectedIntro string
	CorrectedCTA   string
}

// Checker validates personalization copy. The zero value is not usable;
// construct with NewChecker.
type Checker struct {
	maxIntroLength int
	maxCTALength   int
	bannedTerms    []string
}

// NewChecker returns a Checker with the default limits. Extra banned terms
// are appended to the built-in list.
func NewChecker(customBannedTerms ...string) *Checker {
	return NewCheckerWithLimits(MaxIntroLength, MaxCTALength, customBannedTerms...)
}

// NewCheckerWithLimits returns a Checker with custom length limits, used for
// the longer ebook copy sections.
func NewCheckerWithLimits(maxIntroLength, maxCTALength int, customBannedTerms ...string) *Checker {
	terms := make([]string, 0, len(bannedTerms)+len(customBannedTerms))
	terms = append(terms, bannedTerms...)
	terms = append(terms, customBannedTerms...)
	return &Checker{
		maxIntroLength: maxIntroLength,
		maxCTALength:   maxCTALength,
		bannedTerms:    terms,
	}
}

// Check validates an intro hook and CTA pair. When autoCorrect is set and
// issues are found, it attempts a correction pass and re-checks the result;
// uncorrectable copy is replaced with safe fallback content.
func (c *Checker) Check(introHook, cta string, autoCorrect bool) Result {
	result := Result{
		Passed:        true,
		OriginalIntro: introHook,
		OriginalCTA:   cta,
	}

	result.Issues = append(result.Issues, c.checkLength(introHook, "intro", c.maxIntroLength)...)
	result.Issues = append(result.Issues, c.checkContent(introHook, "intro")...)
	result.Issues = append(result.Issues, c.checkLength(cta, "cta", c.maxCTALength)...)
	result.Issues = append(result.Issues, c.checkContent(cta, "cta")...)

	if len(result.Issues) == 0 {
		return result
	}
	result.Passed = false

	if autoCorrect {
		correctedIntro, correctedCTA := c.autoCorrect(introHook, cta, result.Issues)
		result.CorrectedIntro = correctedIntro
		result.CorrectedCTA = correctedCTA

		if len(c.checkContent(correctedIntro, "intro")) == 0 &&
			len(c.checkContent(correctedCTA, "cta")) == 0 &&
			len(c.checkLength(correctedIntro, "intro", c.maxIntroLength)) == 0 &&
			len(c.checkLength(correctedCTA, "cta", c.maxCTALength)) == 0 {
			result.Passed = true
			log.Printf("[COMPLIANCE] content auto-corrected and passed")
		}
	}

	log.Printf("[COMPLIANCE] check: passed=%t issues=%d", result.Passed, len(result.Issues))
	return result
}

func (c *Checker) checkLength(content, contentType string, max int) []string {
	if len(content) > max {
		return []string{fmt.Sprintf("%s exceeds max length (%d/%d)", contentType, len(content), max)}
	}
	return nil
}

// checkContent returns the issues found in a single piece of copy.
func (c *Checker) checkContent(content, contentType string) []string {
	var issues []string

	if strings.TrimSpace(content) == "" {
		return []string{fmt.Sprintf("%s: content is empty", contentType)}
	}

	contentLower := strings.ToLower(content)

	for _, term := range c.bannedTerms {
		if strings.Contains(contentLower, strings.ToLower(term)) {
			issues = append(issues, fmt.Sprintf("%s: contains banned term %q", contentType, term))
		}
	}

	for _, pattern := range superlativePatterns {
		for _, match := range pattern.FindAllString(content, -1) {
			if !isAllowedSuperlative(content) {
				issues = append(issues, fmt.Sprintf("%s: contains superlative %q", contentType, match))
			}
		}
	}

	for _, claim := range claimPatterns {
		if claim.re.MatchString(content) {
			issues = append(issues, fmt.Sprintf("%s: contains unsupported %s", contentType, claim.desc))
		}
	}

	return issues
}

// isAllowedSuperlative reports whether the content uses one of the
// context-appropriate phrases like "best practices".
func isAllowedSuperlative(content string) bool {
	contentLower := strings.ToLower(content)
	for _, phrase := range allowedPhrases {
		if strings.Contains(contentLower, phrase) {
			return true
		}
	}
	return false
}

// autoCorrect strips banned terms and truncates overlong copy. Copy with too
// many issues, or copy left too short after correction, is replaced with
// fallback content.
func (c *Checker) autoCorrect(intro, cta string, issues []string) (string, string) {
	if len(issues) > maxCorrectableIssues {
		log.Printf("[COMPLIANCE] too many issues (%d), using fallback content", len(issues))
		return fallbackContent()
	}

	correctedIntro := intro
	correctedCTA := cta

	for _, term := range c.bannedTerms {
		if strings.Contains(strings.ToLower(correctedIntro), strings.ToLower(term)) {
			correctedIntro = removeTerm(correctedIntro, term)
		}
		if strings.Contains(strings.ToLower(correctedCTA), strings.ToLower(term)) {
			correctedCTA = removeTerm(correctedCTA, term)
		}
	}

	if len(correctedIntro) > c.maxIntroLength {
		correctedIntro = text.TruncateEllipsis(correctedIntro, c.maxIntroLength)
	}
	if len(correctedCTA) > c.maxCTALength {
		correctedCTA = text.TruncateEllipsis(correctedCTA, c.maxCTALength)
	}

	if len(strings.TrimSpace(correctedIntro)) < minIntroLength ||
		len(strings.TrimSpace(correctedCTA)) < minCTALength {
		return fallbackContent()
	}

	return correctedIntro, correctedCTA
}

var (
	whitespaceRe         = regexp.MustCompile(`\s+`)
	orphanPunctuationRe  = regexp.MustCompile(`\s+([,.])`)
	doubledPunctuationRe = regexp.MustCompile(`([,.])\s*[,.]`)
)

// removeTerm removes a term from content while preserving readability.
func removeTerm(content, term string) string {
	pattern := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(term) + `\b`)
	result := pattern.ReplaceAllString(content, "")

	result = whitespaceRe.ReplaceAllString(result, " ")
	result = orphanPunctuationRe.ReplaceAllString(result, "$1")
	result = doubledPunctuationRe.ReplaceAllString(result, "$1")

	return strings.TrimSpace(result)
}

// fallbackContent picks a safe intro/CTA pair from the embedded pools.
func fallbackContent() (string, string) {
	intro := prompts.MustGet("fallbacks.json", fmt.Sprintf("intro-%d", rand.Intn(3)))
	cta := prompts.MustGet("fallbacks.json", fmt.Sprintf("cta-%d", rand.Intn(3)))
	return intro, cta
}

// SafeIntro returns an intro that always passes compliance, lightly
// personalized with the first name when available.
func SafeIntro(firstName string) string {
	if firstName != "" {
		return fmt.Sprintf("Hi %s, this guide was designed to help professionals like you.", firstName)
	}
	return prompts.MustGet("fallbacks.json", "intro-0")
}

// SafeCTA returns a CTA that always passes compliance.
func SafeCTA() string {
	return prompts.MustGet("fallbacks.json", "cta-0")
}
