package enrich

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/lead-enricher/internal/providers"
	"github.com/jonathan/lead-enricher/internal/types"
)

// RawStore receives raw provider payloads for audit storage. Failures here
// are never fatal to an enrichment run.
type RawStore interface {
	StoreRaw(ctx context.Context, email, source string, payload any) error
}

// Enricher fans out to all providers and merges the results.
type Enricher struct {
	clients []providers.Client
	pdl     *providers.PDL
	store   RawStore
}

// New builds an Enricher from provider credentials. store may be nil when raw
// persistence is not wanted (e.g. CLI dry runs).
func New(keys providers.Keys, store RawStore) *Enricher {
	e := &Enricher{
		clients: providers.All(keys),
		store:   store,
	}
	// The PDL client is held separately for the second-phase deep company
	// lookup.
	for _, c := range e.clients {
		if pdl, ok := c.(*providers.PDL); ok {
			e.pdl = pdl
		}
	}
	return e
}

// sourceOrder fixes the reporting order of data_sources entries.
var sourceOrder = []string{
	providers.SourceApollo,
	providers.SourcePDL,
	providers.SourceHunter,
	providers.SourceGNews,
	providers.SourceZoomInfo,
	providers.SourcePDLCompany,
}

// Enrich runs the full enrichment for one email address. It always returns a
// profile; when every provider fails the profile is minimal (identity fields,
// empty sources, zero quality). The raw response map is returned alongside
// for callers that need per-source detail.
func (e *Enricher) Enrich(ctx context.Context, email, domain string) (*types.NormalizedProfile, map[string]providers.Response) {
	email = strings.ToLower(strings.TrimSpace(email))
	if domain == "" {
		if at := strings.LastIndex(email, "@"); at >= 0 {
			domain = email[at+1:]
		}
	}

	log.Printf("[ENRICH] starting enrichment for %s", email)
	raw := e.fetchAllSources(ctx, email, domain)

	// Raw persistence is best effort: a storage failure must not lose the
	// enrichment work already done.
	if e.store != nil {
		for source, resp := range raw {
			if !resp.OK() {
				continue
			}
			if err := e.store.StoreRaw(ctx, email, source, resp); err != nil {
				log.Printf("[ENRICH] failed to store raw %s data for %s: %v", source, email, err)
			}
		}
	}

	profile := buildProfile(email, domain, raw)
	profile.DataSources = dataSources(raw)
	profile.DataQualityScore = qualityScore(raw)
	profile.ResolvedAt = time.Now().UTC()

	log.Printf("[ENRICH] enrichment complete for %s: %d sources, quality %.2f",
		email, len(profile.DataSources), profile.DataQualityScore)
	return profile, raw
}

// fetchAllSources runs the provider fan-out. Phase one queries the five
// standard providers in parallel; phase two runs the deep company lookup,
// which depends only on the domain.
func (e *Enricher) fetchAllSources(ctx context.Context, email, domain string) map[string]providers.Response {
	raw := make(map[string]providers.Response, totalSources)
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for _, client := range e.clients {
		g.Go(func() error {
			resp := client.Enrich(gctx, email, domain)
			mu.Lock()
			raw[client.SourceName()] = resp
			mu.Unlock()
			return nil
		})
	}
	// Client errors travel inside Response, so Wait only reflects ctx state.
	_ = g.Wait()

	raw[providers.SourcePDLCompany] = e.pdl.EnrichCompany(ctx, domain)

	for source, resp := range raw {
		if !resp.OK() {
			log.Printf("[ENRICH] %s failed for %s: %v", source, email, resp.Err)
		}
	}
	return raw
}

// dataSources lists every source that answered, in stable order. Mock
// responses are listed too; they carried data even if it was synthetic.
func dataSources(raw map[string]providers.Response) []string {
	sources := make([]string, 0, len(raw))
	for _, source := range sourceOrder {
		if resp, ok := raw[source]; ok && resp.OK() {
			sources = append(sources, source)
		}
	}
	return sources
}
