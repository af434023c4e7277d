package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/lead-enricher/internal/enrich"
	"github.com/jonathan/lead-enricher/internal/llm"
	"github.com/jonathan/lead-enricher/internal/personalize"
	"github.com/jonathan/lead-enricher/internal/pipeline"
	"github.com/jonathan/lead-enricher/internal/providers"
	"github.com/jonathan/lead-enricher/internal/store"
	"github.com/jonathan/lead-enricher/internal/types"
)

// newTestServer builds a server over a fully mocked pipeline.
func newTestServer(t *testing.T) (*Server, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()
	enricher := enrich.New(providers.Keys{}, mem)
	generator := personalize.New(llm.NewChain(llm.Keys{}))
	runner := pipeline.New(enricher, generator, mem, nil)
	return New(Config{Port: 0}, runner, mem), mem
}

func postJSON(t *testing.T, s *Server, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, req)
	return rec
}

func TestHandleHealth(t *testing.T) {
	s, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status": "ok"}`, rec.Body.String())
}

func TestHandleEnrich(t *testing.T) {
	s, mem := newTestServer(t)

	rec := postJSON(t, s, "/rad/enrich", map[string]any{
		"email":    "jane.doe@acme.io",
		"goal":     "evaluating",
		"persona":  "executive",
		"industry": "technology",
	})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp enrichResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.JobID)
	assert.Equal(t, "completed", resp.Status)
	require.NotNil(t, resp.Record)
	assert.Equal(t, "jane.doe@acme.io", resp.Record.Email)
	assert.NotEmpty(t, resp.Record.PersonalizationIntro)

	stored, err := mem.GetFinalized(context.Background(), "jane.doe@acme.io")
	require.NoError(t, err)
	assert.NotNil(t, stored)
}

func TestHandleEnrich_MissingEmail(t *testing.T) {
	s, _ := newTestServer(t)

	rec := postJSON(t, s, "/rad/enrich", map[string]any{"goal": "exploring"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "validation failed")
}

func TestHandleEnrich_InvalidEnum(t *testing.T) {
	s, _ := newTestServer(t)

	rec := postJSON(t, s, "/rad/enrich", map[string]any{
		"email": "jane.doe@acme.io",
		"goal":  "world_domination",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleEnrich_UnknownField(t *testing.T) {
	s, _ := newTestServer(t)

	rec := postJSON(t, s, "/rad/enrich", map[string]any{
		"email":      "jane.doe@acme.io",
		"eval_order": 66,
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid JSON body")
}

func TestHandleProfile(t *testing.T) {
	s, mem := newTestServer(t)
	record := &types.FinalizedRecord{
		Email:                "jane.doe@acme.io",
		PersonalizationIntro: "Hi Jane",
		PersonalizationCTA:   "Read the guide",
		ResolvedAt:           time.Now(),
	}
	require.NoError(t, mem.UpsertFinalized(context.Background(), record))

	req := httptest.NewRequest(http.MethodGet, "/rad/profile/jane.doe@acme.io", nil)
	rec := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var got types.FinalizedRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "Hi Jane", got.PersonalizationIntro)
}

func TestHandleProfile_NotFound(t *testing.T) {
	s, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/rad/profile/nobody@example.com", nil)
	rec := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleBatch(t *testing.T) {
	s, _ := newTestServer(t)

	rec := postJSON(t, s, "/rad/batch", map[string]any{
		"emails": []string{"a@one.com", "b@two.com"},
	})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp batchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Requested)
	assert.Equal(t, 2, resp.Succeeded)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, "a@one.com", resp.Results[0].Email)
	assert.True(t, resp.Results[0].OK)
}

func TestHandleBatch_EmptyEmails(t *testing.T) {
	s, _ := newTestServer(t)

	rec := postJSON(t, s, "/rad/batch", map[string]any{"emails": []string{}})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleBatch_InvalidEmail(t *testing.T) {
	s, _ := newTestServer(t)

	rec := postJSON(t, s, "/rad/batch", map[string]any{"emails": []string{"not-an-email"}})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid email")
}

func TestRateLimitHeaders(t *testing.T) {
	s, _ := newTestServer(t)

	rec := postJSON(t, s, "/rad/enrich", map[string]any{"email": "jane.doe@acme.io"})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-RateLimit-Limit"))
	assert.NotEmpty(t, rec.Header().Get("X-RateLimit-Remaining"))
}

func TestCORSPreflight(t *testing.T) {
	s, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/rad/enrich", nil)
	rec := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
