package pipeline

import (
	"time"

	"github.com/dd0wney/cluso-artnet/pkg/algorithms"
	"github.com/dd0wney/cluso-artnet/pkg/analysis"
	"github.com/dd0wney/cluso-artnet/pkg/community"
	"github.com/dd0wney/cluso-artnet/pkg/graph"
	"github.com/dd0wney/cluso-artnet/pkg/temporal"
)

// Result is everything one run produced
type Result struct {
	RunID       string    `json:"run_id"`
	StartedAt   time.Time `json:"started_at"`
	FinishedAt  time.Time `json:"finished_at"`
	Records     int       `json:"records"`
	Exhibitions int       `json:"exhibitions"`
	Artists     int       `json:"artists"`

	Overall     analysis.MetricsRow                          `json:"overall"`
	TopArtists  map[analysis.Measure][]algorithms.RankedNode `json:"top_artists"`
	Decades     []DecadeReport                               `json:"decades"`
	Normalized  *temporal.Normalized                         `json:"-"`
	Snapshots   []string                                     `json:"snapshots"`
	SnapshotErr error                                        `json:"-"` // overall snapshot failure

	overallGraph *graph.Graph
}

// DecadeReport is the per-decade part of a Result
type DecadeReport struct {
	Decade        int                                         `json:"decade"`
	Status        temporal.Status                             `json:"status"`
	Err           error                                       `json:"-"`
	Row           analysis.MetricsRow                         `json:"metrics"`
	Duration      time.Duration                               `json:"duration"`
	Communities   *community.Assignment                       `json:"communities,omitempty"`
	Distributions map[graph.Attribute]*community.Distribution `json:"distributions,omitempty"`
	Snapshot      string                                      `json:"snapshot,omitempty"`
	SnapshotErr   error                                       `json:"-"`

	graph *graph.Graph
}

// Failed reports whether the decade's analysis is unusable
func (d DecadeReport) Failed() bool {
	return d.Status != temporal.StatusOK
}

// Graph returns the decade's labeled graph (nil for failed decades)
func (d DecadeReport) Graph() *graph.Graph {
	return d.graph
}

// OverallGraph returns the whole-collection graph
func (r *Result) OverallGraph() *graph.Graph {
	return r.overallGraph
}

// Decade returns the report for decade d
func (r *Result) Decade(d int) (DecadeReport, bool) {
	for _, dr := range r.Decades {
		if dr.Decade == d {
			return dr, true
		}
	}
	return DecadeReport{}, false
}

// Rows returns the metric rows of successful decades, ascending
func (r *Result) Rows() []analysis.MetricsRow {
	rows := make([]analysis.MetricsRow, 0, len(r.Decades))
	for _, d := range r.Decades {
		if !d.Failed() {
			rows = append(rows, d.Row)
		}
	}
	return rows
}

// FailedDecades returns the decades whose analysis failed or was canceled
func (r *Result) FailedDecades() []int {
	out := make([]int, 0)
	for _, d := range r.Decades {
		if d.Failed() {
			out = append(out, d.Decade)
		}
	}
	return out
}

// Duration returns the wall time of the run
func (r *Result) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
