// Package community partitions artist graphs into modularity communities and
// summarizes node attributes per community.
package community

import (
	"errors"
	"fmt"
	"sort"

	"github.com/dd0wney/cluso-artnet/pkg/algorithms"
	"github.com/dd0wney/cluso-artnet/pkg/graph"
	"github.com/dd0wney/cluso-artnet/pkg/logging"
)

// Algorithm selects the partitioning method
type Algorithm string

const (
	AlgorithmLouvain          Algorithm = "louvain"
	AlgorithmLabelPropagation Algorithm = "label_propagation"
)

var (
	ErrNilGraph         = errors.New("community: nil graph")
	ErrUnknownAlgorithm = errors.New("community: unknown algorithm")
	ErrOthersCollision  = errors.New("community: attribute value equals the others label")
)

// Config configures a Detector
type Config struct {
	Algorithm     Algorithm `yaml:"algorithm" validate:"omitempty,oneof=louvain label_propagation"`
	Resolution    float64   `yaml:"resolution" validate:"gte=0"`
	Seed          int64     `yaml:"seed"`
	MaxPasses     int       `yaml:"max_passes" validate:"gte=0"`
	MinGain       float64   `yaml:"min_gain" validate:"gte=0"`
	MaxIterations int       `yaml:"max_iterations" validate:"gte=0"` // label propagation only
	Weighted      bool      `yaml:"weighted"`
}

// DefaultConfig returns Louvain with unit resolution
func DefaultConfig() Config {
	lo := algorithms.DefaultLouvainOptions()
	return Config{
		Algorithm:     AlgorithmLouvain,
		Resolution:    lo.Resolution,
		Seed:          lo.Seed,
		MaxPasses:     lo.MaxPasses,
		MinGain:       lo.MinGain,
		MaxIterations: 100,
	}
}

// Assignment maps every artist to an opaque community ID. IDs are dense
// (0..Count-1) but carry no meaning across runs or decades. Modularity uses
// the edge weighting the algorithm optimized: weighted only for Louvain with
// Config.Weighted set.
type Assignment struct {
	Communities map[string]int `json:"communities"`
	Modularity  float64        `json:"modularity"`
	Count       int            `json:"count"`
	Sizes       []int          `json:"sizes"`
}

// Members returns the artists of community c, sorted
func (a *Assignment) Members(c int) []string {
	out := make([]string, 0)
	for id, label := range a.Communities {
		if label == c {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

// Detector runs community detection with a fixed configuration
type Detector struct {
	cfg    Config
	logger logging.Logger
}

// NewDetector creates a detector. Zero-valued config fields take defaults.
func NewDetector(cfg Config, logger logging.Logger) *Detector {
	def := DefaultConfig()
	if cfg.Algorithm == "" {
		cfg.Algorithm = def.Algorithm
	}
	if cfg.Resolution <= 0 {
		cfg.Resolution = def.Resolution
	}
	if cfg.MaxPasses <= 0 {
		cfg.MaxPasses = def.MaxPasses
	}
	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = def.MaxIterations
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Detector{cfg: cfg, logger: logger.With(logging.Component("community"))}
}

// Config returns the effective configuration
func (d *Detector) Config() Config {
	return d.cfg
}

// Detect partitions g and writes each node's community into its attributes.
// Previous labels on g are replaced.
func (d *Detector) Detect(g *graph.Graph) (*Assignment, error) {
	if g == nil {
		return nil, ErrNilGraph
	}

	var result *algorithms.CommunityDetectionResult
	switch d.cfg.Algorithm {
	case AlgorithmLouvain:
		result = algorithms.Louvain(g, algorithms.LouvainOptions{
			Resolution: d.cfg.Resolution,
			MaxPasses:  d.cfg.MaxPasses,
			MinGain:    d.cfg.MinGain,
			Seed:       d.cfg.Seed,
			Weighted:   d.cfg.Weighted,
		})
	case AlgorithmLabelPropagation:
		result = algorithms.LabelPropagation(g, d.cfg.MaxIterations, d.cfg.Seed)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, d.cfg.Algorithm)
	}

	g.ClearCommunities()
	for id, c := range result.NodeCommunity {
		if err := g.SetCommunity(id, c); err != nil {
			return nil, fmt.Errorf("label %s: %w", id, err)
		}
	}

	sizes := make([]int, len(result.Communities))
	for _, c := range result.Communities {
		sizes[c.ID] = c.Size
	}

	d.logger.Debug("communities detected",
		logging.String("algorithm", string(d.cfg.Algorithm)),
		logging.Count(result.CommunityCount()),
		logging.Float64("modularity", result.Modularity),
	)

	return &Assignment{
		Communities: result.NodeCommunity,
		Modularity:  result.Modularity,
		Count:       result.CommunityCount(),
		Sizes:       sizes,
	}, nil
}
