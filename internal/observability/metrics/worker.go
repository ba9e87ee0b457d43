package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// WorkerMetrics instruments the processed-event consumer.
type WorkerMetrics struct {
	registry *prometheus.Registry

	eventsConsumedTotal *prometheus.CounterVec
	consumeLag          *prometheus.HistogramVec
}

func NewWorkerMetrics(service string) *WorkerMetrics {
	registry := prometheus.NewRegistry()

	eventsConsumedTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "intake",
			Subsystem: "worker",
			Name:      "events_consumed_total",
			Help:      "Total processed-document events consumed, by format and status.",
		},
		[]string{"service", "format", "status"},
	)
	consumeLag := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "intake",
			Subsystem: "worker",
			Name:      "consume_lag_seconds",
			Help:      "Delay between event publication and consumption.",
			Buckets:   []float64{0.001, 0.01, 0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"service"},
	)

	registry.MustRegister(eventsConsumedTotal, consumeLag)

	return &WorkerMetrics{
		registry:            registry,
		eventsConsumedTotal: eventsConsumedTotal,
		consumeLag:          consumeLag,
	}
}

func (m *WorkerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *WorkerMetrics) RecordEvent(service, format string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	m.eventsConsumedTotal.WithLabelValues(service, format, status).Inc()
}

func (m *WorkerMetrics) ObserveLag(service string, lag time.Duration) {
	if lag < 0 {
		return
	}
	m.consumeLag.WithLabelValues(service).Observe(lag.Seconds())
}
