package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metric collectors for reqtimer.
type Metrics struct {
	Registry         *prometheus.Registry
	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	InFlight         prometheus.Gauge
	DroppedLogsTotal prometheus.Counter
}

// New creates and registers a new Metrics instance using a dedicated registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		Registry: reg,

		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "reqtimer_requests_total",
			Help: "Total number of handled requests.",
		}, []string{"method", "path", "status_code"}),

		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "reqtimer_request_duration_seconds",
			Help:    "Time spent inside the request handler, in seconds.",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		}, []string{"method", "path"}),

		InFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "reqtimer_requests_in_flight",
			Help: "Number of requests currently being served.",
		}),

		DroppedLogsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "reqtimer_dropped_logs_total",
			Help: "Total number of dropped log records due to full buffer.",
		}),
	}

	reg.MustRegister(
		m.RequestsTotal,
		m.RequestDuration,
		m.InFlight,
		m.DroppedLogsTotal,
	)

	return m
}

// ObserveLatency records a handler duration measured by the timing interceptor.
func (m *Metrics) ObserveLatency(r *http.Request, d time.Duration) {
	m.RequestDuration.WithLabelValues(MethodLabel(r), RouteLabel(r)).Observe(d.Seconds())
}

// Handler returns the Prometheus HTTP handler for the /metrics endpoint
// using the metrics instance's dedicated registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
