// Package api exposes the deduction engine and budget planner over HTTP.
package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rgehrsitz/cadpay/internal/budget"
	"github.com/rgehrsitz/cadpay/internal/calculation"
	"github.com/rgehrsitz/cadpay/internal/domain"
)

// Server wires the HTTP routes to an engine and a shared budget planner
type Server struct {
	Engine      *calculation.Engine
	Planner     *budget.Planner
	DefaultYear domain.TaxYear
	Logger      *slog.Logger

	metrics  *Metrics
	gatherer prometheus.Gatherer
}

// Options configures a Server
type Options struct {
	// Registry receives the API collectors and backs /metrics. A fresh
	// registry is used when nil.
	Registry *prometheus.Registry
	Logger   *slog.Logger
}

// NewServer creates a server; the default year is the latest in the
// engine's tables
func NewServer(engine *calculation.Engine, planner *budget.Planner, opts Options) *Server {
	reg := opts.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		Engine:      engine,
		Planner:     planner,
		DefaultYear: engine.Tables.Latest(),
		Logger:      logger,
		metrics:     NewMetrics(reg),
		gatherer:    reg,
	}
}

// Routes builds the chi router
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.instrument)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/years", s.handleYears)
		r.Get("/jurisdictions", s.handleJurisdictions)
		r.Post("/deductions", s.handleDeductions)
		r.Post("/income", s.handleIncome)
		r.Post("/compare", s.handleCompare)
		r.Post("/breakeven", s.handleBreakeven)

		r.Route("/budget", func(r chi.Router) {
			r.Get("/", s.handleBudget)
			r.Put("/total", s.handleBudgetTotal)
			r.Post("/categories", s.handleAddCategory)
			r.Delete("/categories", s.handleResetCategories)
			r.Delete("/categories/{name}", s.handleRemoveCategory)
		})
	})
	return r
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// unmatchedRoute is the route label for requests no pattern matched; raw
// paths never become label values
const unmatchedRoute = "unmatched"

// instrument logs each request and records it under its route pattern
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)

		route := unmatchedRoute
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		elapsed := time.Since(start)
		s.metrics.httpRequests.WithLabelValues(r.Method, route, strconv.Itoa(recorder.status)).Inc()
		s.metrics.httpDuration.WithLabelValues(r.Method, route).Observe(elapsed.Seconds())

		s.Logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", recorder.status,
			"durationMs", elapsed.Milliseconds(),
			"requestId", middleware.GetReqID(r.Context()),
		)
	})
}
