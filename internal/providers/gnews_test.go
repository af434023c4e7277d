package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGNews_MockMode(t *testing.T) {
	client := NewGNews("")

	resp := client.Enrich(context.Background(), "ceo@acme.com", "")

	require.True(t, resp.OK())
	assert.True(t, resp.Mock)
	assert.Equal(t, "acme", resp.Str("company_name"))
	assert.Equal(t, 2, resp.Fields["result_count"])
	assert.Contains(t, resp.Fields["themes"], "AI adoption")
}

func TestGNews_Enrich_DeduplicatesAcrossQueries(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "en", r.URL.Query().Get("lang"))

		// Every query returns the same article plus one unique per query.
		// The exact-company query carries literal quotes, so the payload is
		// marshaled rather than interpolated.
		q := r.URL.Query().Get("q")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"articles": []map[string]string{
				{"title": "Shared story", "url": "https://news.example/shared",
					"description": "acme announces growth and expansion"},
				{"title": "Unique " + q, "url": "https://news.example/" + url.QueryEscape(q),
					"description": "acme invests in artificial intelligence"},
			},
		})
	}))
	defer srv.Close()

	client := NewGNews("test-key")
	client.baseURL = srv.URL

	resp := client.Enrich(context.Background(), "ceo@acme.com", "acme.com")

	require.True(t, resp.OK())
	assert.EqualValues(t, 5, atomic.LoadInt32(&calls))

	// 5 queries x 2 articles, but the shared URL collapses to one entry.
	assert.Equal(t, 6, resp.Fields["result_count"])

	themes := resp.Fields["themes"].([]string)
	assert.Contains(t, themes, "AI adoption")
	assert.Contains(t, themes, "Growth & expansion")

	sentiment := resp.Fields["sentiment_indicators"].(map[string]int)
	assert.Greater(t, sentiment["positive"], 0)
}

func TestGNews_PartialQueryFailureNonFatal(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&calls, 1)
		if n%2 == 0 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"articles": [{"title": "ok", "url": "https://news.example/` +
			r.URL.Query().Get("q") + `"}]}`))
	}))
	defer srv.Close()

	client := NewGNews("test-key")
	client.baseURL = srv.URL

	resp := client.Enrich(context.Background(), "ceo@acme.com", "acme.com")

	require.True(t, resp.OK())
	count := resp.Fields["result_count"].(int)
	assert.Greater(t, count, 0)
	assert.Less(t, count, 5)
}

func TestGNews_AllQueriesFailed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewGNews("test-key")
	client.baseURL = srv.URL

	resp := client.Enrich(context.Background(), "ceo@acme.com", "acme.com")

	require.False(t, resp.OK())
	assert.Equal(t, KindHTTPStatus, resp.Err.Kind)
}

func TestBuildNewsSummary(t *testing.T) {
	articles := []Article{
		{Title: "Acme grows", QueryCategory: "growth"},
		{Title: "Acme ships AI", QueryCategory: "ai_technology"},
	}

	summary := buildNewsSummary("acme", articles)

	assert.Contains(t, summary, "Recent news coverage for acme")
	assert.Contains(t, summary, "AI/Tech: Acme ships AI")
	assert.Contains(t, summary, "Growth: Acme grows")

	assert.Equal(t, "No recent news found for acme.", buildNewsSummary("acme", nil))
}

func TestExtractThemes_CapsAtFive(t *testing.T) {
	articles := []Article{{
		Title:   "ai cloud digital data growth partnership innovation security hiring esg",
		Content: "",
	}}

	themes := extractThemes(articles)

	assert.LessOrEqual(t, len(themes), 5)
	assert.NotEmpty(t, themes)
}

func TestCategorizeArticles_UnknownCategoryFallsBackToGeneral(t *testing.T) {
	articles := []Article{{Title: "x", URL: "u", QueryCategory: "weird"}}

	categorized := categorizeArticles(articles)

	assert.Len(t, categorized["general"], 1)
}
