// Package providers implements the upstream enrichment API clients.
// Each client speaks to one external service and normalizes its response
// into a flat field map; merging across sources happens in the enrich package.
package providers

import (
	"context"
	"fmt"
	"time"
)

// Source names used across the pipeline. SourcePDLCompany is a virtual
// source: it shares the PDL credential but runs as a separate deep lookup.
const (
	SourceApollo     = "apollo"
	SourcePDL        = "pdl"
	SourceHunter     = "hunter"
	SourceGNews      = "gnews"
	SourceZoomInfo   = "zoominfo"
	SourcePDLCompany = "pdl_company"
)

// DefaultTimeout is the per-request timeout for standard enrichment calls.
const DefaultTimeout = 45 * time.Second

// DeepTimeout is the extended timeout for deep company enrichment and the
// multi-query news fan-out.
const DeepTimeout = 60 * time.Second

// Client is the contract every enrichment provider implements.
type Client interface {
	// SourceName returns the stable identifier for this provider.
	SourceName() string
	// Enrich looks up the given email/domain. It never returns a Go error;
	// failures are carried inside the Response so that one failing source
	// cannot abort the fan-out.
	Enrich(ctx context.Context, email, domain string) Response
}

// Response is the uniform envelope for a single provider call.
type Response struct {
	Source    string         `json:"source"`
	Fields    map[string]any `json:"fields,omitempty"`
	Mock      bool           `json:"mock,omitempty"`
	FetchedAt time.Time      `json:"fetched_at"`
	Err       *Error         `json:"error,omitempty"`
}

// OK reports whether the call produced usable data (mock data included).
func (r Response) OK() bool {
	return r.Err == nil
}

// Str returns a string field from the response, or "" when absent.
func (r Response) Str(key string) string {
	if s, ok := r.Fields[key].(string); ok {
		return s
	}
	return ""
}

// ErrorKind classifies a provider failure.
type ErrorKind string

const (
	// KindTimeout means the request exceeded its deadline.
	KindTimeout ErrorKind = "timeout"
	// KindTransport means the request could not be completed (DNS, TLS, conn reset).
	KindTransport ErrorKind = "transport"
	// KindHTTPStatus means the service answered with a non-2xx status.
	KindHTTPStatus ErrorKind = "http_status"
	// KindDecode means the response body was not parseable.
	KindDecode ErrorKind = "decode"
)

// Error represents a failure from a single enrichment provider.
type Error struct {
	Source     string    `json:"source"`
	Kind       ErrorKind `json:"kind"`
	Message    string    `json:"message"`
	StatusCode int       `json:"status_code,omitempty"`
	Cause      error     `json:"-"`
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Source, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Source, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Keys holds the API credentials for all providers. Empty values switch the
// corresponding client into mock mode.
type Keys struct {
	Apollo   string
	PDL      string
	Hunter   string
	GNews    string
	ZoomInfo string
}

// All constructs the full provider set from the given credentials.
func All(keys Keys) []Client {
	return []Client{
		NewApollo(keys.Apollo),
		NewPDL(keys.PDL),
		NewHunter(keys.Hunter),
		NewGNews(keys.GNews),
		NewZoomInfo(keys.ZoomInfo),
	}
}
