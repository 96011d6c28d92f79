package temporal

import (
	"math"
	"sort"

	"github.com/dd0wney/cluso-artnet/pkg/analysis"
)

// NormalizedPoint is one cell of the long-form normalized series
type NormalizedPoint struct {
	Decade     int             `json:"decade"`
	Metric     analysis.Metric `json:"metric"`
	Value      float64         `json:"value"`
	Defined    bool            `json:"defined"`
	Degenerate bool            `json:"degenerate"`
}

// ColumnSummary describes the range one metric column was scaled over
type ColumnSummary struct {
	Metric  analysis.Metric `json:"metric"`
	Min     float64         `json:"min"`
	Max     float64         `json:"max"`
	Defined int             `json:"defined"`
	Err     error           `json:"-"`
}

// Degenerate reports whether the column collapsed to a single value
func (c ColumnSummary) Degenerate() bool {
	return c.Err != nil
}

// Normalized is the result of NormalizeSeries
type Normalized struct {
	Points  []NormalizedPoint
	Columns map[analysis.Metric]ColumnSummary
}

// Normalize min-max scales every metric column of rows into [0,1]. See
// NormalizeSeries for the policy on undefined and degenerate columns.
func Normalize(rows []analysis.MetricsRow) []NormalizedPoint {
	return NormalizeSeries(rows).Points
}

// NormalizeSeries scales each metric column independently over its defined
// cells. Undefined cells stay undefined. A column whose defined values are
// all equal is degenerate: its defined cells become 0, are flagged, and the
// column summary carries ErrDegenerateSeries. Points are ordered by decade,
// then by column order.
func NormalizeSeries(rows []analysis.MetricsRow) *Normalized {
	sorted := make([]analysis.MetricsRow, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Decade < sorted[j].Decade })

	columns := make(map[analysis.Metric]ColumnSummary, len(analysis.Metrics))
	for _, m := range analysis.Metrics {
		summary := ColumnSummary{Metric: m, Min: math.Inf(1), Max: math.Inf(-1)}
		for _, row := range sorted {
			v, ok := row.Get(m).Get()
			if !ok {
				continue
			}
			summary.Defined++
			summary.Min = math.Min(summary.Min, v)
			summary.Max = math.Max(summary.Max, v)
		}
		if summary.Defined == 0 {
			summary.Min, summary.Max = 0, 0
		} else if summary.Max == summary.Min {
			summary.Err = ErrDegenerateSeries
		}
		columns[m] = summary
	}

	points := make([]NormalizedPoint, 0, len(sorted)*len(analysis.Metrics))
	for _, row := range sorted {
		for _, m := range analysis.Metrics {
			summary := columns[m]
			p := NormalizedPoint{Decade: row.Decade, Metric: m}

			v, ok := row.Get(m).Get()
			if ok {
				p.Defined = true
				if summary.Degenerate() {
					p.Degenerate = true
				} else {
					p.Value = (v - summary.Min) / (summary.Max - summary.Min)
				}
			}
			points = append(points, p)
		}
	}

	return &Normalized{Points: points, Columns: columns}
}

// Series returns the points of a single metric, ascending by decade
func (n *Normalized) Series(m analysis.Metric) []NormalizedPoint {
	out := make([]NormalizedPoint, 0)
	for _, p := range n.Points {
		if p.Metric == m {
			out = append(out, p)
		}
	}
	return out
}
