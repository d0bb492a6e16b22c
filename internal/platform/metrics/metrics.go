package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	PagesServed     prometheus.Counter
	ViewRequests    *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		PagesServed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "mortalidad_pages_served_total",
			Help: "Total number of dashboard page loads served",
		}),
		ViewRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "mortalidad_view_requests_total",
			Help: "Total number of aggregated-view API requests, by view name",
		}, []string{"view"}),
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mortalidad_request_duration_seconds",
			Help:    "HTTP request latency by route pattern",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
	}
}

// IncPagesServed increments the dashboard page counter by 1.
func (m *Metrics) IncPagesServed() {
	m.PagesServed.Inc()
}

// IncViewRequests increments the request counter for a named view.
func (m *Metrics) IncViewRequests(view string) {
	m.ViewRequests.WithLabelValues(view).Inc()
}

// ObserveRequest records one request latency sample for a route.
func (m *Metrics) ObserveRequest(route string, seconds float64) {
	m.RequestDuration.WithLabelValues(route).Observe(seconds)
}
