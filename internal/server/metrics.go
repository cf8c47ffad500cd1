package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Prometheus collectors are global singletons; registering them at
// package level keeps NewMetrics safe to call repeatedly (tests do).
var (
	activeRequests = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "mpcalc_active_requests",
		Help: "Number of HTTP requests currently being served.",
	})
	totalRequests = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mpcalc_requests_total",
		Help: "Total number of HTTP requests served.",
	})
)

// Metrics bundles the request-tracking collectors with the Prometheus
// exposition handler.
type Metrics struct {
	handler http.Handler
}

// NewMetrics creates a Metrics backed by the default Prometheus
// registry, so the exposition includes the Go runtime collectors and
// the calculator's engine counters alongside the request metrics.
func NewMetrics() *Metrics {
	return &Metrics{handler: promhttp.Handler()}
}

// IncrementActiveRequests records the start of a request.
func (m *Metrics) IncrementActiveRequests() {
	activeRequests.Inc()
	totalRequests.Inc()
}

// DecrementActiveRequests records the end of a request.
func (m *Metrics) DecrementActiveRequests() {
	activeRequests.Dec()
}

// WritePrometheus serves the metrics in Prometheus exposition format.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}
