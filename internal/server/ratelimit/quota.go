package ratelimit

import (
	"os"
	"strings"
	"time"
)

// Quota bounds one route. Requests refill continuously over Per; Burst is the
// bucket capacity (defaults to Requests when zero). A Requests of zero means
// the route is unlimited.
type Quota struct {
	Route    string
	Method   string
	Requests int
	Per      time.Duration
	Burst    int
}

// rate returns the refill rate in tokens per second.
func (q Quota) rate() float64 {
	if q.Per <= 0 {
		return 0
	}
	return float64(q.Requests) / q.Per.Seconds()
}

func (q Quota) capacity() int {
	if q.Burst > 0 {
		return q.Burst
	}
	return q.Requests
}

// EnrichQuotas returns the per-route quotas for the enrichment API. The
// single-contact route fans out to paid provider APIs and LLMs on every miss,
// and the batch route multiplies that, so both are far tighter than the
// read-path fallback.
func EnrichQuotas() []Quota {
	return []Quota{
		{Route: "/rad/enrich", Method: "POST", Requests: 60, Per: time.Minute, Burst: 10},
		{Route: "/rad/batch", Method: "POST", Requests: 10, Per: time.Hour, Burst: 2},
		{Route: "/health", Method: "GET", Requests: 0},
	}
}

// quotaFor resolves the quota for a request. Exact route+method match wins;
// quotas whose route ends in "/" match by prefix (profile lookups carry the
// email in the path). Unmatched requests fall back to the limiter default.
func quotaFor(route, method string, quotas []Quota) (Quota, bool) {
	for _, q := range quotas {
		if q.Route == route && q.Method == method {
			return q, true
		}
	}
	for _, q := range quotas {
		if q.Method == method && strings.HasSuffix(q.Route, "/") && strings.HasPrefix(route, q.Route) {
			return q, true
		}
	}
	return Quota{}, false
}

// OptionsFromEnv builds limiter options from the environment: RATE_LIMITS_OFF
// disables limiting entirely, RATE_LIMIT_EXEMPT_IPS and RATE_LIMIT_BLOCKED_IPS
// take comma-separated addresses.
func OptionsFromEnv() Options {
	return Options{
		Disabled: os.Getenv("RATE_LIMITS_OFF") == "true",
		Quotas:   EnrichQuotas(),
		Exempt:   splitIPs(os.Getenv("RATE_LIMIT_EXEMPT_IPS")),
		Blocked:  splitIPs(os.Getenv("RATE_LIMIT_BLOCKED_IPS")),
	}
}

func splitIPs(list string) []string {
	var out []string
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			out = append(out, ip)
		}
	}
	return out
}
