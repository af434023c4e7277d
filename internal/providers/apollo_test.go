package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApollo_MockMode(t *testing.T) {
	client := NewApollo("")

	resp := client.Enrich(context.Background(), "jane.doe@acme.com", "")

	require.True(t, resp.OK())
	assert.True(t, resp.Mock)
	assert.Equal(t, SourceApollo, resp.Source)
	assert.Equal(t, "Jane", resp.Str("first_name"))
	assert.Equal(t, "Doe", resp.Str("last_name"))
	assert.Equal(t, "Company at acme.com", resp.Str("company_name"))
	assert.Equal(t, "acme.com", resp.Str("domain"))
}

func TestApollo_MockMode_Deterministic(t *testing.T) {
	client := NewApollo("")

	first := client.Enrich(context.Background(), "bob@initech.com", "")
	second := client.Enrich(context.Background(), "bob@initech.com", "")

	assert.Equal(t, first.Fields, second.Fields)
}

func TestApollo_Enrich(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/people/match", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"person": {
				"first_name": "Ada",
				"last_name": "Lovelace",
				"title": "VP Engineering",
				"seniority": "vp",
				"city": "London",
				"country": "UK",
				"organization": {
					"name": "Analytical Engines",
					"primary_domain": "analyticalengines.com",
					"industry": "Computing",
					"estimated_num_employees": 250
				}
			}
		}`))
	}))
	defer srv.Close()

	client := NewApollo("test-key")
	client.baseURL = srv.URL

	resp := client.Enrich(context.Background(), "ada@analyticalengines.com", "")

	require.True(t, resp.OK())
	assert.False(t, resp.Mock)
	assert.Equal(t, "Ada", resp.Str("first_name"))
	assert.Equal(t, "VP Engineering", resp.Str("title"))
	assert.Equal(t, "Analytical Engines", resp.Str("company_name"))
	assert.Equal(t, "200-500", resp.Str("company_size"))
}

func TestApollo_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error": "invalid key"}`))
	}))
	defer srv.Close()

	client := NewApollo("bad-key")
	client.baseURL = srv.URL

	resp := client.Enrich(context.Background(), "ada@example.com", "")

	require.False(t, resp.OK())
	assert.Equal(t, KindHTTPStatus, resp.Err.Kind)
	assert.Equal(t, http.StatusForbidden, resp.Err.StatusCode)
	assert.Contains(t, resp.Err.Error(), "403")
}

func TestMapEmployeeCountToRange(t *testing.T) {
	tests := []struct {
		count int
		want  string
	}{
		{0, "Unknown"},
		{5, "1-10"},
		{49, "11-50"},
		{150, "50-200"},
		{400, "200-500"},
		{900, "500-1000"},
		{5000, "1000+"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, mapEmployeeCountToRange(tt.count))
	}
}
