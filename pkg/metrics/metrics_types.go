package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the application
type Registry struct {
	// Build Metrics
	GraphsBuiltTotal   *prometheus.CounterVec
	GraphBuildDuration *prometheus.HistogramVec
	GraphNodes         *prometheus.GaugeVec
	GraphEdges         *prometheus.GaugeVec

	// Analysis Metrics
	StageDuration         *prometheus.HistogramVec
	DecadesProcessedTotal *prometheus.CounterVec
	CommunitiesDetected   *prometheus.GaugeVec
	Modularity            *prometheus.GaugeVec
	DegenerateSeriesTotal prometheus.Counter

	// Export Metrics
	SnapshotsWrittenTotal *prometheus.CounterVec
	SnapshotBytesTotal    *prometheus.CounterVec

	// Run / System Metrics
	RunsTotal        *prometheus.CounterVec
	LastRunTimestamp prometheus.Gauge
	GoRoutines       prometheus.Gauge
	MemoryAllocBytes prometheus.Gauge

	registry *prometheus.Registry
}

var (
	// Global registry instance
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the global metrics registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry: reg,
	}

	// Initialize all metrics
	r.initBuildMetrics()
	r.initAnalysisMetrics()
	r.initExportMetrics()
	r.initSystemMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
