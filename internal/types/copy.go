package types

import "time"

// PersonalizedCopy is the short-form output: a one-line opener and a call to
// action suitable for outreach email templates.
type PersonalizedCopy struct {
	IntroHook string `json:"intro_hook"`
	CTA       string `json:"cta"`
	ModelUsed string `json:"model_used"`
	LatencyMS int64  `json:"latency_ms,omitempty"`
}

// EbookCopy is the long-form output used to personalize gated ebook content.
type EbookCopy struct {
	PersonalizedHook string `json:"personalized_hook"`
	CaseStudyFraming string `json:"case_study_framing"`
	PersonalizedCTA  string `json:"personalized_cta"`
	ModelUsed        string `json:"model_used"`
	LatencyMS        int64  `json:"latency_ms,omitempty"`
}

// FinalizedRecord is the row shape persisted once a profile has been enriched,
// personalized, and compliance-checked. NormalizedData holds the full profile
// plus the embedded ebook copy and user context.
type FinalizedRecord struct {
	Email                string         `json:"email"`
	NormalizedData       map[string]any `json:"normalized_data"`
	PersonalizationIntro string         `json:"personalization_intro"`
	PersonalizationCTA   string         `json:"personalization_cta"`
	DataSources          []string       `json:"data_sources"`
	ResolvedAt           time.Time      `json:"resolved_at"`
}
