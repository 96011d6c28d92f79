package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initSystemMetrics() {
	r.RunsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "artnet_runs_total",
			Help: "Total number of pipeline runs",
		},
		[]string{"status"},
	)

	r.LastRunTimestamp = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "artnet_last_run_timestamp_seconds",
			Help: "Unix time the last pipeline run finished",
		},
	)

	r.GoRoutines = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "artnet_goroutines",
			Help: "Number of goroutines",
		},
	)

	r.MemoryAllocBytes = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "artnet_memory_alloc_bytes",
			Help: "Bytes of allocated heap objects",
		},
	)
}
