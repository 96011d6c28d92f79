// Package pipeline runs the full artist network analysis: overall graph,
// decade series, normalization, communities, attribute distributions and
// snapshots.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dd0wney/cluso-artnet/pkg/algorithms"
	"github.com/dd0wney/cluso-artnet/pkg/analysis"
	"github.com/dd0wney/cluso-artnet/pkg/community"
	"github.com/dd0wney/cluso-artnet/pkg/cooccur"
	"github.com/dd0wney/cluso-artnet/pkg/export"
	"github.com/dd0wney/cluso-artnet/pkg/graph"
	"github.com/dd0wney/cluso-artnet/pkg/layout"
	"github.com/dd0wney/cluso-artnet/pkg/logging"
	"github.com/dd0wney/cluso-artnet/pkg/metrics"
	"github.com/dd0wney/cluso-artnet/pkg/records"
	"github.com/dd0wney/cluso-artnet/pkg/temporal"
)

// ErrNilStore is returned when Run is called without records
var ErrNilStore = errors.New("pipeline: nil record store")

// Run statuses recorded in metrics
const (
	RunOK      = "ok"
	RunPartial = "partial"
	RunFailed  = "failed"
)

// Graph build scopes
const (
	scopeOverall = "overall"
	scopeDecade  = "decade"
)

// Option configures a Run
type Option func(*runner)

// WithLogger sets the run logger
func WithLogger(l logging.Logger) Option {
	return func(r *runner) { r.logger = l }
}

// WithMetrics records run metrics on reg
func WithMetrics(reg *metrics.Registry) Option {
	return func(r *runner) { r.metrics = reg }
}

// WithSink overrides the snapshot sink built from the configuration
func WithSink(s export.Sink) Option {
	return func(r *runner) { r.sink = s }
}

type runner struct {
	cfg     Config
	logger  logging.Logger
	metrics *metrics.Registry
	sink    export.Sink
}

// Run analyzes store according to cfg. Only failures affecting the whole run
// (nil store, overall graph build, sink setup, cancellation before start) are
// returned as errors; per-decade failures are recorded on the Result.
func Run(ctx context.Context, store *records.Store, cfg Config, opts ...Option) (*Result, error) {
	r := &runner{cfg: cfg, logger: logging.NewNopLogger()}
	for _, opt := range opts {
		opt(r)
	}

	res, err := r.run(ctx, store)
	if r.metrics != nil {
		status := RunOK
		switch {
		case err != nil:
			status = RunFailed
		case len(res.FailedDecades()) > 0:
			status = RunPartial
		}
		r.metrics.RecordRun(status, time.Now())
		r.metrics.UpdateSystemMetrics()
	}
	return res, err
}

func (r *runner) run(ctx context.Context, store *records.Store) (*Result, error) {
	if store == nil {
		return nil, ErrNilStore
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &Result{
		RunID:       uuid.NewString(),
		StartedAt:   time.Now(),
		Records:     store.Len(),
		Exhibitions: store.ExhibitionCount(),
		Artists:     store.ArtistCount(),
	}
	logger := r.logger.With(logging.RunID(res.RunID), logging.Component("pipeline"))
	timer := logging.StartTimer(logger, "pipeline run", logging.Count(store.Len()))

	exporter, err := r.exporter(ctx, logger)
	if err != nil {
		timer.EndError(err)
		return nil, err
	}

	builder := cooccur.NewBuilder(r.cfg.Builder)
	detector := community.NewDetector(r.cfg.Community, logger)

	// Overall graph
	start := time.Now()
	overall, err := builder.Build(store.Records())
	if err != nil {
		timer.EndError(err)
		return nil, fmt.Errorf("build overall graph: %w", err)
	}
	if r.metrics != nil {
		r.metrics.RecordGraphBuild(scopeOverall, metrics.OverallLabel, overall.NodeCount(), overall.EdgeCount(), time.Since(start))
	}
	res.overallGraph = overall

	start = time.Now()
	var centrality map[string]analysis.Centrality
	res.Overall, centrality = analysis.Analyze(overall)
	res.TopArtists = make(map[analysis.Measure][]algorithms.RankedNode, len(analysis.Measures))
	for _, m := range analysis.Measures {
		res.TopArtists[m] = analysis.TopArtists(centrality, m, r.cfg.TopN)
	}
	r.recordStage("overall_metrics", time.Since(start))

	// Decade slices
	start = time.Now()
	slices, buildErrs := temporal.SegmentByDecade(store, builder)
	if r.metrics != nil {
		for d, g := range slices {
			r.metrics.RecordGraphSize(scopeDecade, metrics.DecadeLabel(d), g.NodeCount(), g.EdgeCount())
		}
	}
	for d, err := range buildErrs {
		logger.Warn("decade build failed", logging.Decade(d), logging.Error(err))
	}
	r.recordStage("segment", time.Since(start))

	// Per-decade metrics, communities and distributions on the worker pool
	var mu sync.Mutex
	extras := make(map[int]*DecadeReport, len(slices))
	extra := func(ctx context.Context, decade int, g *graph.Graph) error {
		report, err := r.analyzeDecade(ctx, detector, decade, g)
		if err != nil {
			return err
		}
		mu.Lock()
		extras[decade] = report
		mu.Unlock()
		return nil
	}

	start = time.Now()
	series := temporal.ComputeSeries(ctx, slices, temporal.Options{
		Workers: r.cfg.Workers,
		Logger:  logger,
		Metrics: r.metrics,
		Extra:   extra,
	})
	series = temporal.WithBuildErrors(series, buildErrs)
	r.recordStage("series", time.Since(start))

	res.Decades = make([]DecadeReport, 0, len(series))
	for _, s := range series {
		report := DecadeReport{
			Decade:   s.Decade,
			Status:   s.Status,
			Err:      s.Err,
			Row:      s.Row,
			Duration: s.Duration,
		}
		if e, ok := extras[s.Decade]; ok && !s.Failed() {
			report.Communities = e.Communities
			report.Distributions = e.Distributions
			report.graph = s.Graph
		}
		res.Decades = append(res.Decades, report)
	}

	// Normalization over successful decades
	res.Normalized = temporal.NormalizeSeries(res.Rows())
	for _, m := range analysis.Metrics {
		col := res.Normalized.Columns[m]
		if col.Degenerate() {
			logger.Debug("degenerate metric column", logging.String("metric", string(m)))
			if r.metrics != nil {
				r.metrics.DegenerateSeriesTotal.Inc()
			}
		}
	}

	if exporter != nil {
		r.writeSnapshots(ctx, exporter, res, logger)
	}

	res.FinishedAt = time.Now()
	timer.End()
	logger.Info("pipeline finished",
		logging.Int("decades", len(res.Decades)),
		logging.Int("failed_decades", len(res.FailedDecades())),
		logging.Int("snapshots", len(res.Snapshots)),
		logging.Latency(res.Duration()))
	return res, nil
}

// analyzeDecade labels communities on g and summarizes both attributes.
func (r *runner) analyzeDecade(ctx context.Context, detector *community.Detector, decade int, g *graph.Graph) (*DecadeReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	assignment, err := detector.Detect(g)
	if err != nil {
		return nil, fmt.Errorf("detect communities: %w", err)
	}
	if r.metrics != nil {
		r.metrics.RecordCommunities(metrics.DecadeLabel(decade), assignment.Count, assignment.Modularity)
	}

	report := &DecadeReport{
		Decade:        decade,
		Communities:   assignment,
		Distributions: make(map[graph.Attribute]*community.Distribution, 2),
	}
	for _, attr := range []graph.Attribute{graph.AttrGender, graph.AttrNationality} {
		dist, err := community.SummarizeAttribute(g, attr, r.cfg.Distribution)
		if err != nil {
			return nil, fmt.Errorf("summarize %s: %w", attr, err)
		}
		report.Distributions[attr] = dist
	}
	return report, nil
}

// exporter builds the snapshot exporter, or returns nil when snapshots are off.
func (r *runner) exporter(ctx context.Context, logger logging.Logger) (*export.Exporter, error) {
	sc := r.cfg.Snapshots
	if !sc.Enabled {
		return nil, nil
	}

	sink := r.sink
	if sink == nil {
		var err error
		switch sc.Sink {
		case SinkS3:
			sink, err = export.NewS3Sink(ctx, sc.S3)
		case SinkDir, "":
			sink, err = export.NewDirSink(sc.Dir)
		default:
			err = fmt.Errorf("unknown snapshot sink %q", sc.Sink)
		}
		if err != nil {
			return nil, fmt.Errorf("snapshot sink: %w", err)
		}
	}

	lay, err := layout.New(sc.Layout, sc.LayoutConfig)
	if err != nil {
		return nil, fmt.Errorf("snapshot layout: %w", err)
	}

	opts := []export.Option{
		export.WithLayout(lay),
		export.WithCompression(sc.Compress),
		export.WithLogger(logger),
	}
	if r.metrics != nil {
		opts = append(opts, export.WithMetrics(r.metrics))
	}
	return export.NewExporter(sink, opts...), nil
}

// writeSnapshots exports every successful decade and, if configured, the
// overall graph. Failures are recorded on the result.
func (r *runner) writeSnapshots(ctx context.Context, exp *export.Exporter, res *Result, logger logging.Logger) {
	start := time.Now()
	defer func() { r.recordStage("snapshots", time.Since(start)) }()

	for i := range res.Decades {
		d := &res.Decades[i]
		if d.Failed() || d.graph == nil {
			continue
		}
		name, err := exp.WriteDecade(ctx, d.Decade, d.graph)
		if err != nil {
			d.SnapshotErr = err
			logger.Error("decade snapshot failed", logging.Decade(d.Decade), logging.Error(err))
			continue
		}
		d.Snapshot = name
		res.Snapshots = append(res.Snapshots, name)
	}

	if !r.cfg.Snapshots.Overall {
		return
	}
	name, err := exp.WriteOverall(ctx, res.overallGraph)
	if err != nil {
		res.SnapshotErr = err
		logger.Error("overall snapshot failed", logging.Error(err))
		return
	}
	res.Snapshots = append(res.Snapshots, name)
}

func (r *runner) recordStage(stage string, d time.Duration) {
	if r.metrics != nil {
		r.metrics.RecordStage(stage, d)
	}
}
