// Package metric provides prometheus instruments for federation-adapter
// evaluations.
package metric

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics contains all adapter-level metrics.
type Metrics struct {
	EvaluationsTotal   *prometheus.CounterVec
	EvaluationDuration *prometheus.HistogramVec
	RowsStreamed       *prometheus.CounterVec
	ErrorsTotal        *prometheus.CounterVec
}

// NewMetrics creates a new Metrics instance with all adapter metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		EvaluationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "semfed",
				Subsystem: "evaluations",
				Name:      "total",
				Help:      "Total number of service evaluations",
			},
			[]string{"service", "status"},
		),

		EvaluationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "semfed",
				Subsystem: "evaluations",
				Name:      "duration_seconds",
				Help:      "Service evaluation duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"service"},
		),

		RowsStreamed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "semfed",
				Subsystem: "results",
				Name:      "rows_total",
				Help:      "Total number of solution rows parsed from remote results",
			},
			[]string{"service"},
		),

		ErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "semfed",
				Subsystem: "errors",
				Name:      "total",
				Help:      "Total number of evaluation errors by kind",
			},
			[]string{"service", "kind"},
		),
	}
}

// Register registers all metrics with the given registerer.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{
		m.EvaluationsTotal,
		m.EvaluationDuration,
		m.RowsStreamed,
		m.ErrorsTotal,
	} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// RecordEvaluation increments the evaluation counter with its outcome.
func (m *Metrics) RecordEvaluation(service, status string) {
	m.EvaluationsTotal.WithLabelValues(service, status).Inc()
}

// RecordEvaluationDuration records how long one evaluation took.
func (m *Metrics) RecordEvaluationDuration(service string, duration time.Duration) {
	m.EvaluationDuration.WithLabelValues(service).Observe(duration.Seconds())
}

// RecordRows adds the number of rows parsed from one remote result set.
func (m *Metrics) RecordRows(service string, rows int) {
	m.RowsStreamed.WithLabelValues(service).Add(float64(rows))
}

// RecordError increments the error counter for an error kind.
func (m *Metrics) RecordError(service, kind string) {
	m.ErrorsTotal.WithLabelValues(service, kind).Inc()
}
