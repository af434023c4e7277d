package enrich

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/lead-enricher/internal/providers"
)

// recordingStore captures StoreRaw calls for assertions.
type recordingStore struct {
	mu      sync.Mutex
	sources []string
}

func (s *recordingStore) StoreRaw(_ context.Context, _, source string, _ any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sources = append(s.sources, source)
	return nil
}

func TestEnricher_AllMockMode(t *testing.T) {
	store := &recordingStore{}
	e := New(providers.Keys{}, store)

	profile, raw := e.Enrich(context.Background(), "Jane.Doe@Acme.com ", "")

	// Email is normalized, domain derived.
	assert.Equal(t, "jane.doe@acme.com", profile.Email)
	assert.Equal(t, "acme.com", profile.Domain)

	// All six sources answer in mock mode and count as data sources.
	assert.Equal(t, []string{"apollo", "pdl", "hunter", "gnews", "zoominfo", "pdl_company"},
		profile.DataSources)
	require.Len(t, raw, 6)
	for source, resp := range raw {
		assert.True(t, resp.Mock, "source %s should be mock", source)
	}

	// Mock data merges into the profile but never counts toward quality.
	assert.Equal(t, "Jane", profile.FirstName)
	assert.Zero(t, profile.DataQualityScore)
	assert.False(t, profile.ResolvedAt.IsZero())

	// Raw payloads were persisted for all six sources.
	assert.Len(t, store.sources, 6)
}

func TestEnricher_NilStoreTolerated(t *testing.T) {
	e := New(providers.Keys{}, nil)

	profile, _ := e.Enrich(context.Background(), "jane@acme.com", "")

	assert.Equal(t, "acme.com", profile.Domain)
}

func TestEnricher_ExplicitDomainWins(t *testing.T) {
	e := New(providers.Keys{}, nil)

	profile, _ := e.Enrich(context.Background(), "jane@acme.com", "other.io")

	assert.Equal(t, "other.io", profile.Domain)
}

func TestQualityScore(t *testing.T) {
	count := 10
	base := func() map[string]providers.Response {
		return map[string]providers.Response{
			providers.SourceApollo:     failed(providers.SourceApollo),
			providers.SourcePDL:        failed(providers.SourcePDL),
			providers.SourceHunter:     failed(providers.SourceHunter),
			providers.SourceGNews:      failed(providers.SourceGNews),
			providers.SourceZoomInfo:   failed(providers.SourceZoomInfo),
			providers.SourcePDLCompany: failed(providers.SourcePDLCompany),
		}
	}

	t.Run("all failed", func(t *testing.T) {
		assert.Zero(t, qualityScore(base()))
	})

	t.Run("mocks excluded", func(t *testing.T) {
		raw := base()
		raw[providers.SourceApollo] = mock(providers.SourceApollo, map[string]any{"first_name": "J"})
		assert.Zero(t, qualityScore(raw))
	})

	t.Run("coverage plus priority bonus", func(t *testing.T) {
		raw := base()
		raw[providers.SourceApollo] = ok(providers.SourceApollo, map[string]any{"first_name": "J"})
		// 1/6 coverage + 0.1 apollo bonus
		assert.InDelta(t, 1.0/6.0+0.1, qualityScore(raw), 1e-9)
	})

	t.Run("news bonuses", func(t *testing.T) {
		raw := base()
		raw[providers.SourceGNews] = ok(providers.SourceGNews, map[string]any{
			"result_count": 7,
			"themes":       []string{"AI adoption"},
		})
		// 1/6 coverage + 0.05 article volume + 0.05 themes
		assert.InDelta(t, 1.0/6.0+0.1, qualityScore(raw), 1e-9)
	})

	t.Run("thin news earns no bonus", func(t *testing.T) {
		raw := base()
		raw[providers.SourceGNews] = ok(providers.SourceGNews, map[string]any{
			"result_count": 2,
		})
		assert.InDelta(t, 1.0/6.0, qualityScore(raw), 1e-9)
	})

	t.Run("capped at one", func(t *testing.T) {
		raw := map[string]providers.Response{
			providers.SourceApollo: ok(providers.SourceApollo, map[string]any{"a": "b"}),
			providers.SourcePDL:    ok(providers.SourcePDL, map[string]any{"a": "b"}),
			providers.SourceHunter: ok(providers.SourceHunter, map[string]any{"a": "b"}),
			providers.SourceGNews: ok(providers.SourceGNews, map[string]any{
				"result_count": 9, "themes": []string{"x"},
			}),
			providers.SourceZoomInfo: ok(providers.SourceZoomInfo, map[string]any{
				"employee_count": &count,
			}),
			providers.SourcePDLCompany: ok(providers.SourcePDLCompany, map[string]any{"a": "b"}),
		}
		assert.Equal(t, 1.0, qualityScore(raw))
	})

	t.Run("more sources never lowers the score", func(t *testing.T) {
		raw := base()
		raw[providers.SourcePDL] = ok(providers.SourcePDL, map[string]any{"a": "b"})
		one := qualityScore(raw)
		raw[providers.SourceHunter] = ok(providers.SourceHunter, map[string]any{"a": "b"})
		two := qualityScore(raw)
		assert.GreaterOrEqual(t, two, one)
	})
}
