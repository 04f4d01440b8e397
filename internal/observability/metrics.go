package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/tally/tally/internal/logging"
)

type Metrics struct {
	reg          *prometheus.Registry
	jobsTotal    *prometheus.CounterVec
	recordsTotal *prometheus.CounterVec
	resultValue  *prometheus.GaugeVec
	jobDuration  *prometheus.HistogramVec
}

func NewMetrics(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		reg: reg,
		jobsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "tally_jobs_total", Help: "Total job runs"},
			[]string{"job", "kind", "status"},
		),
		recordsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "tally_records_total", Help: "Total input records by outcome"},
			[]string{"job", "kind", "outcome"},
		),
		resultValue: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{Name: "tally_result", Help: "Result of the last successful job run"},
			[]string{"job", "kind"},
		),
		jobDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tally_job_duration_seconds",
				Help:    "Job duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"job", "kind"},
		),
	}

	if m.reg == nil {
		m.reg = prometheus.NewRegistry()
	}
	m.reg.MustRegister(
		m.jobsTotal,
		m.recordsTotal,
		m.resultValue,
		m.jobDuration,
	)

	return m
}

func (m *Metrics) Observe(outcome logging.Outcome) {
	if m == nil {
		return
	}

	job := outcome.Job
	kind := outcome.Kind

	m.jobsTotal.WithLabelValues(job, kind, outcome.Status).Inc()
	m.jobDuration.WithLabelValues(job, kind).Observe((time.Duration(outcome.DurationMS) * time.Millisecond).Seconds())

	if outcome.Status != logging.StatusOK {
		return
	}

	m.recordsTotal.WithLabelValues(job, kind, "valid").Add(float64(outcome.Valid))
	m.recordsTotal.WithLabelValues(job, kind, "invalid").Add(float64(outcome.Records - outcome.Valid))
	m.recordsTotal.WithLabelValues(job, kind, "malformed").Add(float64(outcome.Malformed))
	m.resultValue.WithLabelValues(job, kind).Set(float64(outcome.Result))
}

// WriteTextfile writes the registry in the text exposition format, for
// collection by node_exporter's textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.reg)
}

func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.reg
}
