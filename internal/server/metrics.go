package server

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the server's Prometheus instruments.
type Metrics struct {
	requests     *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	calculations *prometheus.CounterVec
}

// NewMetrics registers the server instruments on registerer. A nil registerer uses the default one.
func NewMetrics(registerer prometheus.Registerer) *Metrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "netsalary_http_requests_total",
		Help: "HTTP requests by route and status code.",
	}, []string{"route", "status"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "netsalary_http_request_duration_seconds",
		Help:    "HTTP request latency by route.",
		Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	}, []string{"route"})
	calculations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "netsalary_calculations_total",
		Help: "Salary calculations by employment type and result.",
	}, []string{"employment_type", "result"})

	registerer.MustRegister(requests, duration, calculations)
	return &Metrics{requests: requests, duration: duration, calculations: calculations}
}

// ObserveRequest records one finished request.
func (m *Metrics) ObserveRequest(route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(route).Observe(elapsed.Seconds())
}

// RecordCalculation counts one calculation. result is "ok" or a low-cardinality failure reason.
func (m *Metrics) RecordCalculation(employmentType, result string) {
	if m == nil {
		return
	}
	if employmentType == "" {
		employmentType = "employee"
	}
	m.calculations.WithLabelValues(employmentType, result).Inc()
}
