// Package server provides the HTTP REST API for lead enrichment.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonathan/lead-enricher/internal/pipeline"
	"github.com/jonathan/lead-enricher/internal/server/ratelimit"
	"github.com/jonathan/lead-enricher/internal/store"
)

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	runner      *pipeline.Runner
	store       store.Store
	rateLimiter *ratelimit.Limiter
}

// Config holds server configuration
type Config struct {
	Port int
}

// New creates a new server instance
func New(cfg Config, runner *pipeline.Runner, st store.Store) *Server {
	s := &Server{
		runner: runner,
		store:  st,
	}

	s.rateLimiter = ratelimit.New(ratelimit.OptionsFromEnv())

	mux := http.NewServeMux()
	mux.HandleFunc("POST /rad/enrich", s.handleEnrich)
	mux.HandleFunc("POST /rad/batch", s.handleBatch)
	mux.HandleFunc("GET /rad/profile/{email}", s.handleProfile)
	mux.HandleFunc("GET /health", s.handleHealth)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(mux))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 180 * time.Second, // Enrichment fans out to slow upstream APIs
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.rateLimiter != nil {
		s.rateLimiter.Close()
	}

	s.store.Close()
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		decision := s.rateLimiter.Check(clientID, r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, decision)
		if !decision.Allowed {
			s.rateLimitResponse(w, decision)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// extractClientID extracts the client identifier from the request.
// For MVP, this uses the IP address from RemoteAddr.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, d ratelimit.Decision) {
	if d.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", d.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", d.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", d.Reset.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, d ratelimit.Decision) {
	response := map[string]interface{}{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     d.Limit,
		"remaining": d.Remaining,
		"reset_at":  d.Reset.Format(time.RFC3339),
	}

	if d.RetryAfter > 0 {
		response["retry_after"] = int(d.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(d.RetryAfter.Seconds())))
	}

	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d Reset=%s",
		d.Limit, d.Remaining, d.Reset.Format(time.RFC3339))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
