package observability

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// TournamentMetrics records service activity.
type TournamentMetrics interface {
	RecordOperationAttempt(ctx context.Context, operation, service string)
	RecordOperationFailure(ctx context.Context, operation, service string)
	RecordOperationDuration(ctx context.Context, operation, service string, d time.Duration)
	RecordImport(ctx context.Context, kind, format string, teams int)
	RecordPersistFailure(ctx context.Context)
}

// PrometheusMetrics implements TournamentMetrics on a Prometheus registry.
type PrometheusMetrics struct {
	registry    *prometheus.Registry
	attempts    *prometheus.CounterVec
	failures    *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	imports     *prometheus.CounterVec
	importTeams *prometheus.GaugeVec
	persistFail prometheus.Counter
}

// NewPrometheusMetrics registers the tournament collectors on a new registry.
func NewPrometheusMetrics() *PrometheusMetrics {
	m := &PrometheusMetrics{
		registry: prometheus.NewRegistry(),
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "olympics",
			Name:      "operation_attempts_total",
			Help:      "Service operations started.",
		}, []string{"operation", "service"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "olympics",
			Name:      "operation_failures_total",
			Help:      "Service operations that returned an error.",
		}, []string{"operation", "service"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "olympics",
			Name:      "operation_duration_seconds",
			Help:      "Service operation latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation", "service"}),
		imports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "olympics",
			Name:      "imports_total",
			Help:      "Files imported by kind and format.",
		}, []string{"kind", "format"}),
		importTeams: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "olympics",
			Name:      "imported_teams",
			Help:      "Teams in the last imported file.",
		}, []string{"kind"}),
		persistFail: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "olympics",
			Name:      "persist_failures_total",
			Help:      "Snapshots that could not be written.",
		}),
	}
	m.registry.MustRegister(m.attempts, m.failures, m.duration, m.imports, m.importTeams, m.persistFail)
	return m
}

// Registry exposes the underlying registry.
func (m *PrometheusMetrics) Registry() *prometheus.Registry { return m.registry }

func (m *PrometheusMetrics) RecordOperationAttempt(_ context.Context, operation, service string) {
	m.attempts.WithLabelValues(operation, service).Inc()
}

func (m *PrometheusMetrics) RecordOperationFailure(_ context.Context, operation, service string) {
	m.failures.WithLabelValues(operation, service).Inc()
}

func (m *PrometheusMetrics) RecordOperationDuration(_ context.Context, operation, service string, d time.Duration) {
	m.duration.WithLabelValues(operation, service).Observe(d.Seconds())
}

func (m *PrometheusMetrics) RecordImport(_ context.Context, kind, format string, teams int) {
	m.imports.WithLabelValues(kind, format).Inc()
	m.importTeams.WithLabelValues(kind).Set(float64(teams))
}

func (m *PrometheusMetrics) RecordPersistFailure(_ context.Context) {
	m.persistFail.Inc()
}

// WriteTextfile dumps every collected metric to path in the Prometheus text
// format, for pickup by a node exporter textfile collector.
func (m *PrometheusMetrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}

// NoOpMetrics discards everything.
type NoOpMetrics struct{}

func (NoOpMetrics) RecordOperationAttempt(context.Context, string, string)                {}
func (NoOpMetrics) RecordOperationFailure(context.Context, string, string)                {}
func (NoOpMetrics) RecordOperationDuration(context.Context, string, string, time.Duration) {}
func (NoOpMetrics) RecordImport(context.Context, string, string, int)                     {}
func (NoOpMetrics) RecordPersistFailure(context.Context)                                  {}
