package metrics

import (
	"fmt"
	"runtime"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// OverallLabel is the decade label used for the all-years graph
const OverallLabel = "all"

// DecadeLabel formats a decade for use as a label value
func DecadeLabel(decade int) string {
	return strconv.Itoa(decade)
}

// RecordGraphBuild records a graph construction with its size
func (r *Registry) RecordGraphBuild(scope, decade string, nodes, edges int, duration time.Duration) {
	r.RecordGraphSize(scope, decade, nodes, edges)
	r.GraphBuildDuration.WithLabelValues(scope).Observe(duration.Seconds())
}

// RecordGraphSize records a built graph whose construction was not timed on its own
func (r *Registry) RecordGraphSize(scope, decade string, nodes, edges int) {
	r.GraphsBuiltTotal.WithLabelValues(scope).Inc()
	r.GraphNodes.WithLabelValues(decade).Set(float64(nodes))
	r.GraphEdges.WithLabelValues(decade).Set(float64(edges))
}

// RecordStage records the duration of a pipeline stage
func (r *Registry) RecordStage(stage string, duration time.Duration) {
	r.StageDuration.WithLabelValues(stage).Observe(duration.Seconds())
}

// RecordDecade records the outcome of one decade slice
func (r *Registry) RecordDecade(status string) {
	r.DecadesProcessedTotal.WithLabelValues(status).Inc()
}

// RecordCommunities records a community detection result
func (r *Registry) RecordCommunities(decade string, count int, modularity float64) {
	r.CommunitiesDetected.WithLabelValues(decade).Set(float64(count))
	r.Modularity.WithLabelValues(decade).Set(modularity)
}

// RecordSnapshot records a snapshot write
func (r *Registry) RecordSnapshot(sink, status string, bytes int) {
	r.SnapshotsWrittenTotal.WithLabelValues(sink, status).Inc()
	if bytes > 0 {
		r.SnapshotBytesTotal.WithLabelValues(sink).Add(float64(bytes))
	}
}

// RecordRun records a finished pipeline run
func (r *Registry) RecordRun(status string, finished time.Time) {
	r.RunsTotal.WithLabelValues(status).Inc()
	r.LastRunTimestamp.Set(float64(finished.Unix()))
}

// UpdateSystemMetrics samples goroutine and heap statistics
func (r *Registry) UpdateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	r.GoRoutines.Set(float64(runtime.NumGoroutine()))
	r.MemoryAllocBytes.Set(float64(m.Alloc))
}

// WriteTextfile writes every metric in text exposition format, for the
// node_exporter textfile collector.
func (r *Registry) WriteTextfile(path string) error {
	r.UpdateSystemMetrics()
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics textfile %s: %w", path, err)
	}
	return nil
}
