package server

import (
	"encoding/json"
	"log"
	"net/http"
	"net/mail"

	"github.com/google/uuid"

	"github.com/jonathan/lead-enricher/internal/types"
)

const maxRequestBody = 1 << 20 // 1 MB

// enrichResponse is the body returned by POST /rad/enrich.
type enrichResponse struct {
	JobID  string                 `json:"job_id"`
	Status string                 `json:"status"`
	Record *types.FinalizedRecord `json:"record"`
}

// handleEnrich runs the full enrichment pipeline for a single contact.
func (s *Server) handleEnrich(w http.ResponseWriter, r *http.Request) {
	var req types.EnrichRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "validation failed: "+err.Error())
		return
	}

	jobID := uuid.New()
	log.Printf("[SERVER] enrich job %s: email=%s force_refresh=%t", jobID, req.Email, req.ForceRefresh)

	record, err := s.runner.Run(r.Context(), &req)
	if err != nil {
		log.Printf("[SERVER] enrich job %s failed: %v", jobID, err)
		s.errorResponse(w, http.StatusInternalServerError, "enrichment failed")
		return
	}

	s.jsonResponse(w, http.StatusOK, enrichResponse{
		JobID:  jobID.String(),
		Status: "completed",
		Record: record,
	})
}

// batchRequest is the body accepted by POST /rad/batch.
type batchRequest struct {
	Emails      []string `json:"emails"`
	Concurrency int64    `json:"concurrency,omitempty"`
}

type batchItemResult struct {
	Email string `json:"email"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

type batchResponse struct {
	JobID     string            `json:"job_id"`
	Requested int               `json:"requested"`
	Succeeded int               `json:"succeeded"`
	Results   []batchItemResult `json:"results"`
}

// handleBatch enriches a list of emails with bounded concurrency.
func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	if len(req.Emails) == 0 {
		s.errorResponse(w, http.StatusBadRequest, "emails is required")
		return
	}
	for _, email := range req.Emails {
		if _, err := mail.ParseAddress(email); err != nil {
			s.errorResponse(w, http.StatusBadRequest, "invalid email: "+email)
			return
		}
	}

	jobID := uuid.New()
	log.Printf("[SERVER] batch job %s: %d emails", jobID, len(req.Emails))

	results := s.runner.RunBatch(r.Context(), req.Emails, req.Concurrency)

	resp := batchResponse{
		JobID:     jobID.String(),
		Requested: len(results),
		Results:   make([]batchItemResult, 0, len(results)),
	}
	for _, result := range results {
		item := batchItemResult{Email: result.Email, OK: result.Err == nil}
		if result.Err != nil {
			item.Error = result.Err.Error()
		} else {
			resp.Succeeded++
		}
		resp.Results = append(resp.Results, item)
	}

	s.jsonResponse(w, http.StatusOK, resp)
}

// handleProfile returns the stored finalized record for an email.
func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	email := r.PathValue("email")
	if email == "" {
		s.errorResponse(w, http.StatusBadRequest, "email is required")
		return
	}

	record, err := s.store.GetFinalized(r.Context(), email)
	if err != nil {
		log.Printf("[SERVER] profile lookup failed for %s: %v", email, err)
		s.errorResponse(w, http.StatusInternalServerError, "profile lookup failed")
		return
	}
	if record == nil {
		s.errorResponse(w, http.StatusNotFound, "profile not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, record)
}

// decodeJSON decodes a request body with a size cap and strict field checking.
func decodeJSON(w http.ResponseWriter, r *http.Request, out any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(out)
}
