package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	resendEndpoint = "https://api.resend.com/emails"
	resendTimeout  = 15 * time.Second

	defaultFrom = "AI Readiness Guide <guide@updates.example.com>"
)

// Resend sends email through the Resend transactional API.
type Resend struct {
	apiKey  string
	from    string
	baseURL string
	client  *http.Client
}

// NewResend returns a Resend-backed sender. from may be empty to use the
// default sending identity.
func NewResend(apiKey, from string) *Resend {
	if from == "" {
		from = defaultFrom
	}
	return &Resend{
		apiKey:  apiKey,
		from:    from,
		baseURL: resendEndpoint,
		client:  &http.Client{Timeout: resendTimeout},
	}
}

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

func (r *Resend) Send(ctx context.Context, msg Message) error {
	payload, err := json.Marshal(resendRequest{
		From:    r.from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		HTML:    msg.HTML,
	})
	if err != nil {
		return fmt.Errorf("delivery: failed to encode message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("delivery: failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+r.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("delivery: send failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, 200))
		return fmt.Errorf("delivery: resend returned %d: %s", resp.StatusCode, string(excerpt))
	}
	return nil
}
