package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// defaultUserAgent is sent on every outbound enrichment request.
const defaultUserAgent = "Mozilla/5.0 (compatible; LeadEnricher/1.0)"

// requestOptions configures a single provider HTTP call.
type requestOptions struct {
	Timeout time.Duration
	Headers map[string]string
	Query   url.Values
	Body    any
}

// doJSON performs an HTTP request and decodes the JSON response body into out.
// Failures are classified into provider Error kinds so callers can report them
// uniformly without unwrapping net/http internals.
func doJSON(ctx context.Context, source, method, urlStr string, opts requestOptions, out any) *Error {
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}

	if len(opts.Query) > 0 {
		urlStr = urlStr + "?" + opts.Query.Encode()
	}

	var bodyReader io.Reader
	if opts.Body != nil {
		payload, err := json.Marshal(opts.Body)
		if err != nil {
			return &Error{Source: source, Kind: KindTransport, Message: "failed to encode request body", Cause: err}
		}
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, urlStr, bodyReader)
	if err != nil {
		return &Error{Source: source, Kind: KindTransport, Message: "failed to create request", Cause: err}
	}

	req.Header.Set("User-Agent", defaultUserAgent)
	if opts.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range opts.Headers {
		req.Header.Set(key, value)
	}

	client := &http.Client{Timeout: opts.Timeout}
	resp, err := client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			return &Error{Source: source, Kind: KindTimeout, Message: "request timeout", Cause: err}
		}
		return &Error{Source: source, Kind: KindTransport, Message: "request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Include a capped body excerpt so upstream error messages stay useful.
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, 200))
		return &Error{
			Source:     source,
			Kind:       KindHTTPStatus,
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("API returned %d: %s", resp.StatusCode, string(excerpt)),
		}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &Error{Source: source, Kind: KindDecode, Message: "failed to decode response", Cause: err}
		}
	}

	return nil
}

// isTimeout reports whether err is a network-level timeout.
func isTimeout(err error) bool {
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}
