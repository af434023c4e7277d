package providers

import (
	"context"
	"log"
	"net/url"
	"strings"
	"time"
)

const hunterBaseURL = "https://api.hunter.io/v2"

// Hunter is the Hunter.io email verification client.
type Hunter struct {
	apiKey  string
	baseURL string
}

// NewHunter creates a Hunter client. An empty key switches it to mock mode.
func NewHunter(apiKey string) *Hunter {
	if apiKey == "" {
		log.Printf("[HUNTER] API key not configured, using mock data")
	}
	return &Hunter{apiKey: apiKey, baseURL: hunterBaseURL}
}

// SourceName returns the provider identifier.
func (h *Hunter) SourceName() string { return SourceHunter }

type hunterVerifyResponse struct {
	Data struct {
		Status     string `json:"status"` // valid, invalid, accept_all, webmail, disposable, unknown
		Result     string `json:"result"` // deliverable, undeliverable, risky, unknown
		Score      int    `json:"score"`
		Regexp     bool   `json:"regexp"`
		Gibberish  bool   `json:"gibberish"`
		Disposable bool   `json:"disposable"`
		Webmail    bool   `json:"webmail"`
		MXRecords  bool   `json:"mx_records"`
		SMTPServer bool   `json:"smtp_server"`
		SMTPCheck  bool   `json:"smtp_check"`
		AcceptAll  bool   `json:"accept_all"`
		Block      bool   `json:"block"`
	} `json:"data"`
}

// Enrich verifies an email address.
func (h *Hunter) Enrich(ctx context.Context, email, _ string) Response {
	if h.apiKey == "" {
		return h.mockResponse(email)
	}

	var parsed hunterVerifyResponse
	apiErr := doJSON(ctx, SourceHunter, "GET", h.baseURL+"/email-verifier", requestOptions{
		Query: url.Values{"email": {email}, "api_key": {h.apiKey}},
	}, &parsed)
	if apiErr != nil {
		log.Printf("[HUNTER] verify failed for %s: %v", email, apiErr)
		return Response{Source: SourceHunter, FetchedAt: time.Now().UTC(), Err: apiErr}
	}

	d := parsed.Data
	return Response{
		Source:    SourceHunter,
		FetchedAt: time.Now().UTC(),
		Fields: map[string]any{
			"email":       email,
			"status":      d.Status,
			"result":      d.Result,
			"score":       d.Score,
			"regexp":      d.Regexp,
			"gibberish":   d.Gibberish,
			"disposable":  d.Disposable,
			"webmail":     d.Webmail,
			"mx_records":  d.MXRecords,
			"smtp_server": d.SMTPServer,
			"smtp_check":  d.SMTPCheck,
			"accept_all":  d.AcceptAll,
			"block":       d.Block,
		},
	}
}

func (h *Hunter) mockResponse(email string) Response {
	webmail := strings.Contains(email, "@gmail") ||
		strings.Contains(email, "@yahoo") ||
		strings.Contains(email, "@hotmail")

	return Response{
		Source:    SourceHunter,
		Mock:      true,
		FetchedAt: time.Now().UTC(),
		Fields: map[string]any{
			"email":      email,
			"status":     "valid",
			"result":     "deliverable",
			"score":      90,
			"disposable": false,
			"webmail":    webmail,
		},
	}
}
