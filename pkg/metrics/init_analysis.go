package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initAnalysisMetrics() {
	r.StageDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "artnet_stage_duration_seconds",
			Help:    "Duration of pipeline stages in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
		},
		[]string{"stage"}, // metrics, series, normalize, communities, export
	)

	r.DecadesProcessedTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "artnet_decades_processed_total",
			Help: "Total number of decade slices processed",
		},
		[]string{"status"}, // ok, failed, canceled
	)

	r.CommunitiesDetected = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "artnet_communities_detected",
			Help: "Number of communities found in the most recent run per decade",
		},
		[]string{"decade"},
	)

	r.Modularity = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "artnet_modularity",
			Help: "Modularity of the detected partition per decade",
		},
		[]string{"decade"},
	)

	r.DegenerateSeriesTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "artnet_degenerate_series_total",
			Help: "Metric columns whose normalization range collapsed to a single value",
		},
	)
}
