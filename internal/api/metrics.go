package api

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "cadpay"

// Metrics holds the API's Prometheus collectors
type Metrics struct {
	calculations    *prometheus.CounterVec
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
	budgetAllocated prometheus.Gauge
}

// NewMetrics creates and registers the collectors on reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		calculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "calculations_total",
			Help:      "Payroll deduction calculations by jurisdiction and tax year.",
		}, []string{"jurisdiction", "year"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		budgetAllocated: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "budget_allocated_dollars",
			Help:      "Amount currently allocated to budget categories.",
		}),
	}
	reg.MustRegister(m.calculations, m.httpRequests, m.httpDuration, m.budgetAllocated)
	return m
}
