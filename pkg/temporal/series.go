package temporal

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/dd0wney/cluso-artnet/pkg/algorithms"
	"github.com/dd0wney/cluso-artnet/pkg/analysis"
	"github.com/dd0wney/cluso-artnet/pkg/graph"
	"github.com/dd0wney/cluso-artnet/pkg/logging"
	"github.com/dd0wney/cluso-artnet/pkg/metrics"
	"github.com/dd0wney/cluso-artnet/pkg/parallel"
)

// Status is the outcome of one decade task
type Status string

const (
	StatusOK       Status = "ok"
	StatusFailed   Status = "failed"
	StatusCanceled Status = "canceled"
)

// DecadeTask is extra per-decade work run on the worker pool after metrics
// are computed, such as community detection.
type DecadeTask func(ctx context.Context, decade int, g *graph.Graph) error

// Options configures ComputeSeries
type Options struct {
	Workers int // 1 = sequential
	Logger  logging.Logger
	Metrics *metrics.Registry
	Extra   DecadeTask
}

// DecadeResult is the analysis of one decade slice
type DecadeResult struct {
	Decade   int                 `json:"decade"`
	Row      analysis.MetricsRow `json:"metrics"`
	Status   Status              `json:"status"`
	Err      error               `json:"-"`
	Duration time.Duration       `json:"duration"`
	Graph    *graph.Graph        `json:"-"`
}

// Failed reports a decade whose result must not be used
func (r DecadeResult) Failed() bool {
	return r.Status != StatusOK
}

// ComputeSeries computes a MetricsRow for every slice, ascending by decade.
// Slices run concurrently on a worker pool and never share state. A failing
// or panicking decade is reported on its own result without affecting the
// others. Once ctx is canceled no further decades start; those report
// StatusCanceled with the context error.
func ComputeSeries(ctx context.Context, slices map[int]*graph.Graph, opts Options) []DecadeResult {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	logger = logger.With(logging.Component("temporal"))

	decades := algorithms.SortedKeys(slices)
	results := make([]DecadeResult, len(decades))
	for i, d := range decades {
		results[i] = DecadeResult{Decade: d, Status: StatusCanceled, Graph: slices[d]}
	}
	if len(decades) == 0 {
		return results
	}

	pool, err := parallel.NewWorkerPool(opts.Workers, parallel.WithLogger(logger))
	if err != nil {
		for i := range results {
			results[i].Status = StatusFailed
			results[i].Err = &DecadeError{Decade: results[i].Decade, Cause: err}
		}
		return results
	}

	var wg sync.WaitGroup
	for i := range decades {
		i := i
		wg.Add(1)
		err := pool.SubmitContext(ctx, func() {
			defer wg.Done()
			results[i] = runDecade(ctx, results[i].Decade, results[i].Graph, opts, logger)
		})
		if err != nil {
			wg.Done()
			for j := i; j < len(results); j++ {
				results[j].Err = &DecadeError{Decade: results[j].Decade, Cause: err}
			}
			logger.Warn("decade submission stopped", logging.Decade(decades[i]), logging.Error(err))
			break
		}
	}
	wg.Wait()
	pool.Close()

	if opts.Metrics != nil {
		for _, r := range results {
			opts.Metrics.RecordDecade(string(r.Status))
		}
	}
	return results
}

// runDecade analyzes one slice, converting panics into a failed result.
func runDecade(ctx context.Context, decade int, g *graph.Graph, opts Options, logger logging.Logger) (result DecadeResult) {
	result = DecadeResult{Decade: decade, Graph: g, Status: StatusOK}
	start := time.Now()

	defer func() {
		result.Duration = time.Since(start)
		if r := recover(); r != nil {
			result.Status = StatusFailed
			result.Err = &DecadeError{Decade: decade, Cause: fmt.Errorf("%w: %v", ErrDecadePanic, r)}
		}
		if result.Err != nil {
			logger.Error("decade analysis failed", logging.Decade(decade), logging.Error(result.Err))
			return
		}
		logger.Debug("decade analyzed",
			logging.Decade(decade),
			logging.Int("nodes", result.Row.NodeCount),
			logging.Int("edges", result.Row.EdgeCount),
			logging.Latency(result.Duration),
		)
	}()

	if err := ctx.Err(); err != nil {
		result.Status = StatusCanceled
		result.Err = &DecadeError{Decade: decade, Cause: err}
		return result
	}
	if g == nil {
		g = graph.New()
		result.Graph = g
	}

	result.Row = analysis.ComputeGraphMetrics(g)
	result.Row.Decade = decade

	if opts.Extra != nil {
		if err := opts.Extra(ctx, decade, g); err != nil {
			result.Status = StatusFailed
			result.Err = &DecadeError{Decade: decade, Cause: err}
		}
	}
	return result
}

// WithBuildErrors merges decades that failed to build into results as failed
// entries, keeping ascending decade order.
func WithBuildErrors(results []DecadeResult, failed map[int]error) []DecadeResult {
	out := make([]DecadeResult, 0, len(results)+len(failed))
	out = append(out, results...)
	for _, d := range algorithms.SortedKeys(failed) {
		out = append(out, DecadeResult{
			Decade: d,
			Status: StatusFailed,
			Err:    &DecadeError{Decade: d, Cause: failed[d]},
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Decade < out[j].Decade })
	return out
}

// Rows returns the metric rows of successful decades in order
func Rows(results []DecadeResult) []analysis.MetricsRow {
	rows := make([]analysis.MetricsRow, 0, len(results))
	for _, r := range results {
		if !r.Failed() {
			rows = append(rows, r.Row)
		}
	}
	return rows
}
