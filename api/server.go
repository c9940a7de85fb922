// Package api - Thin HTTP layer over the quote engine
// The API is ONLY responsible for: input decoding, engine calls, output serialization.
// The API NEVER performs pricing logic.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"gym-cost/core/output"
	"gym-cost/core/pricing"
	"gym-cost/internal/errors"
	"gym-cost/internal/logging"
)

// maxBodyBytes caps POST bodies
const maxBodyBytes = 64 << 10

// Server is the API server
type Server struct {
	engine   *pricing.Engine
	mux      *http.ServeMux
	version  string
	registry *prometheus.Registry
	metrics  *Metrics
	log      *zap.Logger
}

// NewServer creates a new API server. A nil registry gets a fresh one.
func NewServer(engine *pricing.Engine, version string, registry *prometheus.Registry) *Server {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	s := &Server{
		engine:   engine,
		mux:      http.NewServeMux(),
		version:  version,
		registry: registry,
		metrics:  NewMetrics(registry),
		log:      logging.Named("api"),
	}

	s.registerRoutes()
	return s
}

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	s.handle("POST /quote", s.handleQuote)
	s.handle("GET /catalog", s.handleCatalog)
	s.handle("GET /health", s.handleHealth)
	s.handle("GET /version", s.handleVersion)

	s.mux.Handle("GET /metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
}

func (s *Server) handle(pattern string, h http.HandlerFunc) {
	s.mux.HandleFunc(pattern, s.metrics.instrument(pattern, h))
}

// handleQuote handles POST /quote
func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	var req QuoteRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, "INVALID_JSON", err.Error(), http.StatusBadRequest)
		return
	}

	planLabel := req.Plan
	if _, ok := s.engine.Catalog().Plan(req.Plan); !ok {
		planLabel = "unknown"
	}

	b, err := s.engine.Quote(req.toPricing())
	if err != nil {
		s.metrics.QuotesTotal.WithLabelValues(planLabel, string(errors.TypeOf(err))).Inc()
		status := http.StatusInternalServerError
		if errors.IsValidation(err) {
			status = http.StatusBadRequest
		}
		s.log.Debug("quote rejected", zap.String("plan", req.Plan), zap.Error(err))
		s.writeError(w, string(errors.TypeOf(err)), err.Error(), status)
		return
	}

	result := output.NewQuoteResult(b)
	s.metrics.QuotesTotal.WithLabelValues(planLabel, "ok").Inc()
	s.metrics.QuoteTotalAmount.WithLabelValues(planLabel).Observe(b.Total.InexactFloat64())
	s.log.Info("quote priced",
		zap.String("id", result.ID),
		zap.String("plan", b.Plan),
		zap.Int("members", b.Members),
		zap.String("total", b.Total.StringFixed(pricing.CurrencyPlaces)),
	)

	s.writeJSON(w, output.NewView(result), http.StatusOK)
}

// handleCatalog handles GET /catalog
func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, newCatalogResponse(s.engine.Catalog()), http.StatusOK)
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]interface{}{
		"status":  "healthy",
		"version": s.version,
		"time":    time.Now().UTC().Format(time.RFC3339),
	}, http.StatusOK)
}

// handleVersion handles GET /version
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{
		"version": s.version,
		"engine":  "gym-cost",
	}, http.StatusOK)
}

func (s *Server) writeJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Warn("failed to write response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, code, message string, status int) {
	s.writeJSON(w, ErrorResponse{Error: ErrorDetail{Code: code, Message: message}}, status)
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
