package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Observer is the process-wide metrics sink for the pipeline stages.
var Observer = &Metrics{
	mutex:      new(sync.RWMutex),
	prometheus: NewPrometheusMetrics(),
}

func init() {
	prometheus.MustRegister(Observer.prometheus.Rows, Observer.prometheus.Durations)
}

type Metrics struct {
	mutex      *sync.RWMutex
	prometheus Prometheus
}

// Rows records the number of rows leaving a pipeline stage.
func (m *Metrics) Rows(symbol, stage string, n int) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.prometheus.Rows.WithLabelValues(symbol, stage).Set(float64(n))
}

// Track times a stage; call the returned func when the stage finishes.
func (m *Metrics) Track(symbol, stage string) func() {
	start := time.Now()
	return func() {
		m.mutex.Lock()
		defer m.mutex.Unlock()
		m.prometheus.Durations.WithLabelValues(symbol, stage).Observe(time.Since(start).Seconds())
	}
}
