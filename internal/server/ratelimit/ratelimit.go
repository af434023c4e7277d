// Package ratelimit protects the enrichment API with per-client token
// buckets. Every enrich request that misses the cache costs real money in
// provider and LLM calls, so the write routes get tight per-route quotas
// while reads ride on a lenient default.
package ratelimit

import (
	"sync"
	"time"
)

const (
	defaultFallbackRequests = 1000
	defaultSweepEvery       = 5 * time.Minute
	bucketIdleExpiry        = time.Hour
)

// Decision is the outcome of a quota check, with the values the HTTP layer
// needs for X-RateLimit-* and Retry-After headers.
type Decision struct {
	Allowed    bool
	Limit      int
	Remaining  int
	Reset      time.Time
	RetryAfter time.Duration
}

// bucket is a continuously-refilling token bucket.
type bucket struct {
	level    float64
	cap      float64
	perSec   float64
	refilled time.Time
}

func (b *bucket) refill(now time.Time) {
	b.level += now.Sub(b.refilled).Seconds() * b.perSec
	if b.level > b.cap {
		b.level = b.cap
	}
	b.refilled = now
}

// take consumes one token if available and reports the post-take state.
func (b *bucket) take(now time.Time) (allowed bool, remaining int, reset time.Time) {
	b.refill(now)
	if b.level >= 1 {
		b.level--
		allowed = true
	}
	remaining = int(b.level)
	reset = now
	if b.level < b.cap {
		reset = now.Add(time.Duration((b.cap - b.level) / b.perSec * float64(time.Second)))
	}
	return allowed, remaining, reset
}

// Options configures a Limiter.
type Options struct {
	Disabled bool
	Quotas   []Quota
	// Fallback applies to routes with no quota entry. Zero value means
	// defaultFallbackRequests per minute.
	Fallback Quota
	Exempt   []string
	Blocked  []string
	// SweepEvery is how often idle buckets are dropped. Zero means
	// defaultSweepEvery; negative disables the sweeper (tests).
	SweepEvery time.Duration
}

// Limiter tracks one token bucket per client+route+method triple.
type Limiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	touched map[string]time.Time

	disabled bool
	quotas   []Quota
	fallback Quota
	exempt   map[string]bool
	blocked  map[string]bool

	sweeper *time.Ticker
	done    chan struct{}
}

// New builds a Limiter and starts its idle-bucket sweeper. Callers must
// Close it on shutdown.
func New(opts Options) *Limiter {
	fallback := opts.Fallback
	if fallback.Requests == 0 {
		fallback = Quota{Requests: defaultFallbackRequests, Per: time.Minute}
	}

	l := &Limiter{
		buckets:  make(map[string]*bucket),
		touched:  make(map[string]time.Time),
		disabled: opts.Disabled,
		quotas:   opts.Quotas,
		fallback: fallback,
		exempt:   toSet(opts.Exempt),
		blocked:  toSet(opts.Blocked),
	}

	sweepEvery := opts.SweepEvery
	if sweepEvery == 0 {
		sweepEvery = defaultSweepEvery
	}
	if !opts.Disabled && sweepEvery > 0 {
		l.sweeper = time.NewTicker(sweepEvery)
		l.done = make(chan struct{})
		go l.sweep()
	}

	return l
}

// Check decides whether one request from clientIP against route+method may
// proceed. Exempt clients and unlimited routes always pass; blocked clients
// never do.
func (l *Limiter) Check(clientIP, route, method string) Decision {
	if l.disabled || l.exempt[clientIP] {
		return Decision{Allowed: true}
	}
	if l.blocked[clientIP] {
		return Decision{Allowed: false}
	}

	quota, ok := quotaFor(route, method, l.quotas)
	if !ok {
		quota = l.fallback
	}
	if quota.Requests <= 0 {
		return Decision{Allowed: true}
	}

	key := clientIP + " " + method + " " + route
	now := time.Now()

	l.mu.Lock()
	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{
			level:    float64(quota.capacity()),
			cap:      float64(quota.capacity()),
			perSec:   quota.rate(),
			refilled: now,
		}
		l.buckets[key] = b
	}
	l.touched[key] = now
	allowed, remaining, reset := b.take(now)
	l.mu.Unlock()

	d := Decision{
		Allowed:   allowed,
		Limit:     quota.Requests,
		Remaining: remaining,
		Reset:     reset,
	}
	if !allowed {
		if d.RetryAfter = time.Until(reset); d.RetryAfter < 0 {
			d.RetryAfter = 0
		}
	}
	return d
}

func (l *Limiter) sweep() {
	for {
		select {
		case <-l.sweeper.C:
			l.dropIdle(time.Now().Add(-bucketIdleExpiry))
		case <-l.done:
			return
		}
	}
}

// dropIdle forgets buckets untouched since the cutoff so one-off clients do
// not accumulate forever.
func (l *Limiter) dropIdle(cutoff time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for key, last := range l.touched {
		if last.Before(cutoff) {
			delete(l.buckets, key)
			delete(l.touched, key)
		}
	}
}

// Close stops the sweeper goroutine.
func (l *Limiter) Close() {
	if l.sweeper != nil {
		l.sweeper.Stop()
		close(l.done)
	}
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}
