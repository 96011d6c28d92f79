package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initBuildMetrics() {
	r.GraphsBuiltTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "artnet_graphs_built_total",
			Help: "Total number of co-occurrence graphs built",
		},
		[]string{"scope"}, // overall, decade
	)

	r.GraphBuildDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "artnet_graph_build_duration_seconds",
			Help:    "Duration of co-occurrence graph construction in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0005, 4, 8),
		},
		[]string{"scope"},
	)

	r.GraphNodes = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "artnet_graph_nodes",
			Help: "Number of artists in the most recent graph per decade",
		},
		[]string{"decade"},
	)

	r.GraphEdges = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "artnet_graph_edges",
			Help: "Number of co-occurrence edges in the most recent graph per decade",
		},
		[]string{"decade"},
	)
}
