// Package metrics holds the Prometheus collectors of the printer-event
// worker. They live on their own registry so the worker exposes only what it
// records.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcomes of a processed printer event.
const (
	OutcomeApplied  = "applied"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

type WorkerMetrics struct {
	registry *prometheus.Registry

	eventsTotal   *prometheus.CounterVec
	eventDuration *prometheus.HistogramVec
	inFlight      prometheus.Gauge
}

func NewWorkerMetrics(service string) *WorkerMetrics {
	registry := prometheus.NewRegistry()

	eventsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   "printshop",
			Subsystem:   "worker",
			Name:        "printer_events_total",
			Help:        "Printer events processed, by target status and outcome.",
			ConstLabels: prometheus.Labels{"service": service},
		},
		[]string{"status", "outcome"},
	)
	eventDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   "printshop",
			Subsystem:   "worker",
			Name:        "printer_event_duration_seconds",
			Help:        "Time spent applying a printer event, by outcome.",
			ConstLabels: prometheus.Labels{"service": service},
			Buckets:     prometheus.DefBuckets,
		},
		[]string{"outcome"},
	)
	inFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace:   "printshop",
			Subsystem:   "worker",
			Name:        "printer_events_in_flight",
			Help:        "Printer events currently being applied.",
			ConstLabels: prometheus.Labels{"service": service},
		},
	)

	registry.MustRegister(eventsTotal, eventDuration, inFlight)

	return &WorkerMetrics{
		registry:      registry,
		eventsTotal:   eventsTotal,
		eventDuration: eventDuration,
		inFlight:      inFlight,
	}
}

func (m *WorkerMetrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *WorkerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *WorkerMetrics) StartEvent() {
	m.inFlight.Inc()
}

func (m *WorkerMetrics) FinishEvent(status, outcome string, duration time.Duration) {
	m.inFlight.Dec()
	m.eventsTotal.WithLabelValues(status, outcome).Inc()
	m.eventDuration.WithLabelValues(outcome).Observe(duration.Seconds())
}
