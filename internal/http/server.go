package http

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"spendwise/internal/log"
)

type appMetrics struct {
	startedAt           time.Time
	totalRequests       int64
	transactionsCreated int64
}

// Server wires the REST API over storage and the summary services.
type Server struct {
	http.Server

	store     Store
	summaries Summarizer
	overview  OverviewProvider
	logger    *log.Logger

	rateLimiter  *rateLimiter
	metrics      appMetrics
	shutdownOnce sync.Once

	// now is swapped out in tests to pin the evaluation date
	now func() time.Time
}

func NewServer(addr string, store Store, summaries Summarizer, overview OverviewProvider, logger *log.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		},
		store:       store,
		summaries:   summaries,
		overview:    overview,
		logger:      logger.WithComponent(log.ComponentHTTP),
		rateLimiter: newRateLimiter(),
		metrics:     appMetrics{startedAt: time.Now()},
		now:         time.Now,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.HandleFunc("GET /metrics", s.handleMetrics)

	mux.HandleFunc("GET /api/categories", s.protect(s.handleListCategories))
	mux.HandleFunc("POST /api/categories", s.protect(s.handleCreateCategory))
	mux.HandleFunc("PUT /api/categories/{id}", s.protect(s.handleUpdateCategory))
	mux.HandleFunc("DELETE /api/categories/{id}", s.protect(s.handleDeleteCategory))

	mux.HandleFunc("GET /api/cards", s.protect(s.handleListCards))
	mux.HandleFunc("POST /api/cards", s.protect(s.handleCreateCard))
	mux.HandleFunc("GET /api/cards/{id}", s.protect(s.handleGetCard))
	mux.HandleFunc("PUT /api/cards/{id}", s.protect(s.handleUpdateCard))
	mux.HandleFunc("DELETE /api/cards/{id}", s.protect(s.handleDeleteCard))

	mux.HandleFunc("GET /api/cards/{id}/transactions", s.protect(s.handleListTransactions))
	mux.HandleFunc("POST /api/cards/{id}/transactions", s.protect(s.handleCreateTransaction))
	mux.HandleFunc("PUT /api/transactions/{id}", s.protect(s.handleUpdateTransaction))
	mux.HandleFunc("DELETE /api/transactions/{id}", s.protect(s.handleDeleteTransaction))

	mux.HandleFunc("GET /api/cards/{id}/policies", s.protect(s.handleListPolicies))
	mux.HandleFunc("POST /api/cards/{id}/policies", s.protect(s.handleCreatePolicy))
	mux.HandleFunc("PUT /api/policies/{id}", s.protect(s.handleUpdatePolicy))
	mux.HandleFunc("DELETE /api/policies/{id}", s.protect(s.handleDeletePolicy))

	mux.HandleFunc("GET /api/cards/{id}/summary", s.protect(s.handleCardSummary))
	mux.HandleFunc("GET /api/statistics/overview", s.protect(s.handleYearOverview))
	mux.HandleFunc("GET /api/notifications", s.protect(s.handleListNotifications))

	return s
}

// protect adds security headers, rate limiting, request IDs, and access
// logging to a handler.
func (s *Server) protect(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		atomic.AddInt64(&s.metrics.totalRequests, 1)

		setSecurityHeaders(w)

		clientIP := extractClientIP(r)
		if !s.rateLimiter.allow(clientIP) {
			s.logger.WarnContext(r.Context(), "Rate limit exceeded",
				log.FieldClientIP, clientIP,
				log.FieldPath, r.URL.Path)
			respondError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}

		requestID := generateRequestID()
		reqLogger := s.logger.With(log.FieldRequestID, requestID)
		ctx := log.WithLogger(r.Context(), reqLogger)
		w.Header().Set("X-Request-ID", requestID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r.WithContext(ctx))

		reqLogger.InfoContext(ctx, "Request handled",
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path,
			log.FieldStatusCode, rec.status,
			log.FieldDuration, time.Since(start).Milliseconds(),
			log.FieldClientIP, clientIP)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Shutdown stops the cleanup goroutines and the HTTP listener.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.rateLimiter.stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}
