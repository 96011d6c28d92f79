package export

import (
	"context"
	"fmt"

	"github.com/dd0wney/cluso-artnet/pkg/graph"
	"github.com/dd0wney/cluso-artnet/pkg/layout"
	"github.com/dd0wney/cluso-artnet/pkg/logging"
	"github.com/dd0wney/cluso-artnet/pkg/metrics"
)

// Exporter lays out graphs, encodes them and writes them to a sink.
type Exporter struct {
	sink     Sink
	layout   layout.Layout
	compress bool
	logger   logging.Logger
	metrics  *metrics.Registry
}

// Option configures an Exporter
type Option func(*Exporter)

// WithLayout sets the layout used for graphics blocks (nil writes none)
func WithLayout(l layout.Layout) Option {
	return func(e *Exporter) { e.layout = l }
}

// WithCompression toggles snappy compression
func WithCompression(on bool) Option {
	return func(e *Exporter) { e.compress = on }
}

// WithLogger sets the logger
func WithLogger(l logging.Logger) Option {
	return func(e *Exporter) { e.logger = l }
}

// WithMetrics records snapshot counters on r
func WithMetrics(r *metrics.Registry) Option {
	return func(e *Exporter) { e.metrics = r }
}

// NewExporter creates an exporter writing to sink
func NewExporter(sink Sink, opts ...Option) *Exporter {
	e := &Exporter{sink: sink, logger: logging.NewNopLogger()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Compressed reports whether snapshots are snappy-compressed
func (e *Exporter) Compressed() bool {
	return e.compress
}

// WriteDecade exports a decade graph
func (e *Exporter) WriteDecade(ctx context.Context, decade int, g *graph.Graph) (string, error) {
	name := DecadeName(decade, e.compress)
	return name, e.Write(ctx, name, g)
}

// WriteOverall exports the whole-collection graph
func (e *Exporter) WriteOverall(ctx context.Context, g *graph.Graph) (string, error) {
	name := OverallName(e.compress)
	return name, e.Write(ctx, name, g)
}

// Write lays out, encodes and stores g under name.
func (e *Exporter) Write(ctx context.Context, name string, g *graph.Graph) error {
	var positions map[string]layout.Position
	if e.layout != nil {
		var err error
		positions, err = e.layout.ComputeLayout(g)
		if err != nil {
			e.record("error", 0)
			return fmt.Errorf("layout %s: %w", name, err)
		}
	}

	data, err := EncodeSnapshot(g, positions, e.compress)
	if err != nil {
		e.record("error", 0)
		return fmt.Errorf("encode %s: %w", name, err)
	}

	if err := e.sink.Write(ctx, name, data); err != nil {
		e.record("error", 0)
		e.logger.Warn("snapshot write failed",
			logging.String("snapshot", name),
			logging.String("sink", e.sink.Name()),
			logging.Error(err))
		return fmt.Errorf("sink %s: %w", e.sink.Name(), err)
	}

	e.record("ok", len(data))
	e.logger.Debug("snapshot written",
		logging.String("snapshot", name),
		logging.String("sink", e.sink.Name()),
		logging.Int("bytes", len(data)),
		logging.Count(g.NodeCount()))
	return nil
}

func (e *Exporter) record(status string, bytes int) {
	if e.metrics != nil {
		e.metrics.RecordSnapshot(e.sink.Name(), status, bytes)
	}
}
