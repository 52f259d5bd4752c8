// Package metrics exposes Prometheus instrumentation for the HTTP surface,
// lifecycle transitions, registrations and notification delivery.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private registry so that tests can build as many as they
// like.
type Metrics struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	transitions     *prometheus.CounterVec
	redemptions     *prometheus.CounterVec
	notifications   *prometheus.CounterVec
	queueDepth      prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5},
			},
			[]string{"method", "path"},
		),
		transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bureau_consultation_transitions_total",
				Help: "Consultation status transitions applied",
			},
			[]string{"from", "to"},
		),
		redemptions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bureau_registration_redemptions_total",
				Help: "Registration token redemption attempts by outcome",
			},
			[]string{"result"},
		),
		notifications: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bureau_notifications_total",
				Help: "Best-effort notifications by kind and outcome",
			},
			[]string{"kind", "result"},
		),
		queueDepth: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "bureau_notify_queue_depth",
				Help: "Jobs waiting in the notification queue",
			},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requestsTotal,
		m.requestDuration,
		m.transitions,
		m.redemptions,
		m.notifications,
		m.queueDepth,
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Middleware records request counts and latencies. The path label is the
// matched route pattern, never the raw URL, to keep cardinality bounded.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rw, r)

		path := r.Pattern
		if path == "" {
			path = "unmatched"
		}
		m.requestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(rw.status)).Inc()
		m.requestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}

func (m *Metrics) ObserveTransition(from, to string) {
	m.transitions.WithLabelValues(from, to).Inc()
}

// ObserveRedemption counts a redemption attempt; result is "success" or an
// error code such as "token_already_used".
func (m *Metrics) ObserveRedemption(result string) {
	m.redemptions.WithLabelValues(result).Inc()
}

// ObserveNotification counts a notification job; kind is "email" or "event",
// result is "sent", "failed" or "dropped".
func (m *Metrics) ObserveNotification(kind, result string) {
	m.notifications.WithLabelValues(kind, result).Inc()
}

func (m *Metrics) SetQueueDepth(n int) {
	m.queueDepth.Set(float64(n))
}

type statusRecorder struct {
	http.ResponseWriter

	status int
}

func (rw *statusRecorder) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}
