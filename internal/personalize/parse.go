package personalize

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/lead-enricher/internal/compliance"
	"github.com/jonathan/lead-enricher/internal/llm"
	"github.com/jonathan/lead-enricher/internal/schemas"
	"github.com/jonathan/lead-enricher/internal/text"
	copyschemas "github.com/jonathan/lead-enricher/schemas"
)

type shortCopy struct {
	IntroHook string `json:"intro_hook"`
	CTA       string `json:"cta"`
}

type ebookCopy struct {
	PersonalizedHook string `json:"personalized_hook"`
	CaseStudyFraming string `json:"case_study_framing"`
	PersonalizedCTA  string `json:"personalized_cta"`
}

// extractPayload strips markdown and prose around the JSON payload and
// schema-validates it, attempting an escape-sequence repair before giving up.
func extractPayload(content, schema string) (string, error) {
	raw := llm.CleanJSONBlock(content)
	if err := schemas.ValidateJSONString(schema, raw); err != nil {
		fixed := llm.FixInvalidJSONEscapes(raw)
		if err2 := schemas.ValidateJSONString(schema, fixed); err2 != nil {
			return "", err
		}
		raw = fixed
	}
	return raw, nil
}

// parseShort extracts intro_hook and cta from a raw LLM response.
// Overlong values are truncated rather than rejected.
func parseShort(content string) (*shortCopy, error) {
	raw, err := extractPayload(content, copyschemas.ShortCopy)
	if err != nil {
		return nil, fmt.Errorf("short copy response invalid: %w", err)
	}

	var parsed shortCopy
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, fmt.Errorf("short copy response unmarshal: %w", err)
	}

	parsed.IntroHook = strings.TrimSpace(parsed.IntroHook)
	parsed.CTA = strings.TrimSpace(parsed.CTA)
	if parsed.IntroHook == "" || parsed.CTA == "" {
		return nil, fmt.Errorf("short copy response missing content")
	}

	if len(parsed.IntroHook) > compliance.MaxIntroLength {
		parsed.IntroHook = text.TruncateEllipsis(parsed.IntroHook, compliance.MaxIntroLength)
	}
	if len(parsed.CTA) > compliance.MaxCTALength {
		parsed.CTA = text.TruncateEllipsis(parsed.CTA, compliance.MaxCTALength)
	}

	return &parsed, nil
}

// parseEbook extracts the three ebook sections from a raw LLM response.
func parseEbook(content string) (*ebookCopy, error) {
	raw, err := extractPayload(content, copyschemas.EbookCopy)
	if err != nil {
		return nil, fmt.Errorf("ebook copy response invalid: %w", err)
	}

	var parsed ebookCopy
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, fmt.Errorf("ebook copy response unmarshal: %w", err)
	}

	parsed.PersonalizedHook = strings.TrimSpace(parsed.PersonalizedHook)
	parsed.CaseStudyFraming = strings.TrimSpace(parsed.CaseStudyFraming)
	parsed.PersonalizedCTA = strings.TrimSpace(parsed.PersonalizedCTA)
	if parsed.PersonalizedHook == "" || parsed.CaseStudyFraming == "" || parsed.PersonalizedCTA == "" {
		return nil, fmt.Errorf("ebook copy response missing content")
	}

	if len(parsed.PersonalizedHook) > maxHookLength {
		parsed.PersonalizedHook = text.TruncateEllipsis(parsed.PersonalizedHook, maxHookLength)
	}
	if len(parsed.CaseStudyFraming) > maxFramingLength {
		parsed.CaseStudyFraming = text.TruncateEllipsis(parsed.CaseStudyFraming, maxFramingLength)
	}
	if len(parsed.PersonalizedCTA) > maxEbookCTALength {
		parsed.PersonalizedCTA = text.TruncateEllipsis(parsed.PersonalizedCTA, maxEbookCTALength)
	}

	return &parsed, nil
}
