package metrics

import "github.com/prometheus/client_golang/prometheus"

// Prometheus holds the collectors of one pipeline run.
type Prometheus struct {
	Rows      *prometheus.GaugeVec
	Durations *prometheus.HistogramVec
}

// NewPrometheusMetrics creates the pipeline collectors.
func NewPrometheusMetrics() Prometheus {
	return Prometheus{
		Rows: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "stockcast",
				Name:      "rows",
				Help:      "rows flowing through each pipeline stage",
			}, []string{"symbol", "stage"}),
		Durations: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "stockcast",
				Name:      "stage_duration_seconds",
				Help:      "wall time spent per pipeline stage",
				Buckets:   prometheus.ExponentialBuckets(0.01, 4, 8),
			}, []string{"symbol", "stage"}),
	}
}
