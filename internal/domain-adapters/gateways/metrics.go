package gateways

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusMetrics implements MetricsSink with a prometheus histogram
// of signing-call durations
type PrometheusMetrics struct {
	signDuration prometheus.Histogram
}

// NewPrometheusMetrics creates the metrics sink and registers its
// collectors on the given registerer
func NewPrometheusMetrics(reg prometheus.Registerer) *PrometheusMetrics {
	m := &PrometheusMetrics{
		signDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "waxseal",
			Subsystem: "signing",
			Name:      "submit_duration_seconds",
			Help:      "Duration of signing authority submissions.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(m.signDuration)
	return m
}

// ObserveSigningDuration records one signing-call duration
func (m *PrometheusMetrics) ObserveSigningDuration(d time.Duration) {
	m.signDuration.Observe(d.Seconds())
}

// NoOpMetrics is a metrics sink that discards observations (useful for
// tests and metric-less deployments)
type NoOpMetrics struct{}

// ObserveSigningDuration does nothing (no-op implementation)
func (n *NoOpMetrics) ObserveSigningDuration(_ time.Duration) {}
