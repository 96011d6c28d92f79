package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initExportMetrics() {
	r.SnapshotsWrittenTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "artnet_snapshots_written_total",
			Help: "Total number of graph snapshots handed to a sink",
		},
		[]string{"sink", "status"},
	)

	r.SnapshotBytesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "artnet_snapshot_bytes_total",
			Help: "Total bytes of snapshot payload written",
		},
		[]string{"sink"},
	)
}
