// Package analysis computes structural metrics over artist co-occurrence
// graphs: one MetricsRow per graph plus per-artist centrality.
package analysis

import (
	"fmt"

	"github.com/dd0wney/cluso-artnet/pkg/algorithms"
	"github.com/dd0wney/cluso-artnet/pkg/graph"
)

// Metric names a column of MetricsRow
type Metric string

const (
	MetricNodeCount      Metric = "node_count"
	MetricEdgeCount      Metric = "edge_count"
	MetricDensity        Metric = "density"
	MetricDiameter       Metric = "diameter"
	MetricComponentCount Metric = "component_count"
	MetricGiantComponent Metric = "giant_component_size"
	MetricAvgDegree      Metric = "avg_degree"
	MetricAvgBetweenness Metric = "avg_betweenness"
	MetricAvgClustering  Metric = "avg_clustering"
)

// Metrics lists every column in table order
var Metrics = []Metric{
	MetricNodeCount,
	MetricEdgeCount,
	MetricDensity,
	MetricDiameter,
	MetricComponentCount,
	MetricGiantComponent,
	MetricAvgDegree,
	MetricAvgBetweenness,
	MetricAvgClustering,
}

// ParseMetric resolves a column name
func ParseMetric(s string) (Metric, error) {
	for _, m := range Metrics {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown metric %q", s)
}

// MetricsRow summarizes one graph. Decade is zero for the overall graph.
type MetricsRow struct {
	Decade         int   `json:"decade"`
	NodeCount      int   `json:"node_count"`
	EdgeCount      int   `json:"edge_count"`
	Density        Value `json:"density"`
	Diameter       Value `json:"diameter"`
	ComponentCount Value `json:"component_count"`
	GiantComponent Value `json:"giant_component_size"` // nodes in the largest component
	AvgDegree      Value `json:"avg_degree"`
	AvgBetweenness Value `json:"avg_betweenness"`
	AvgClustering  Value `json:"avg_clustering"`
}

// Get returns the cell for metric m. Counts are always defined.
func (r MetricsRow) Get(m Metric) Value {
	switch m {
	case MetricNodeCount:
		return Defined(float64(r.NodeCount))
	case MetricEdgeCount:
		return Defined(float64(r.EdgeCount))
	case MetricDensity:
		return r.Density
	case MetricDiameter:
		return r.Diameter
	case MetricComponentCount:
		return r.ComponentCount
	case MetricGiantComponent:
		return r.GiantComponent
	case MetricAvgDegree:
		return r.AvgDegree
	case MetricAvgBetweenness:
		return r.AvgBetweenness
	case MetricAvgClustering:
		return r.AvgClustering
	default:
		return Undefined()
	}
}

// EmptyRow is the row of a decade whose records produced no co-occurrence.
func EmptyRow(decade int) MetricsRow {
	return MetricsRow{Decade: decade}
}

// ComputeGraphMetrics computes the summary row for g.
//
// Density, diameter and the component columns need at least two nodes; the
// averages need at least one. Anything below those sizes is left undefined.
func ComputeGraphMetrics(g *graph.Graph) MetricsRow {
	return graphMetrics(g, algorithms.BetweennessCentrality(g))
}

// Analyze computes the summary row and per-artist centrality of g with a
// single betweenness pass.
func Analyze(g *graph.Graph) (MetricsRow, map[string]Centrality) {
	betweenness := algorithms.BetweennessCentrality(g)
	return graphMetrics(g, betweenness), centrality(g, betweenness)
}

func graphMetrics(g *graph.Graph, betweenness map[string]float64) MetricsRow {
	n := g.NodeCount()
	e := g.EdgeCount()
	row := MetricsRow{NodeCount: n, EdgeCount: e}

	if n > 1 {
		row.Density = Defined(float64(e) / (float64(n) * float64(n-1) / 2))
		if d, ok := algorithms.Diameter(g); ok {
			row.Diameter = Defined(float64(d))
		}
		row.ComponentCount = Defined(float64(algorithms.ComponentCount(g)))
		row.GiantComponent = Defined(float64(algorithms.LargestComponentSize(g)))
	}

	if n > 0 {
		row.AvgDegree = Defined(2 * float64(e) / float64(n))

		sum := 0.0
		for _, b := range betweenness {
			sum += b
		}
		row.AvgBetweenness = Defined(sum / float64(n))

		if avg, ok := algorithms.AverageClusteringCoefficient(g); ok {
			row.AvgClustering = Defined(avg)
		}
	}

	return row
}
