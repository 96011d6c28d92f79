// Package layout assigns 2D coordinates to artist graphs so snapshots open
// in graph viewers with a usable arrangement.
package layout

import (
	"fmt"

	"github.com/dd0wney/cluso-artnet/pkg/graph"
)

// Position represents a 2D coordinate
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Config configures layout parameters
type Config struct {
	Width      float64 `yaml:"width" validate:"gte=0"`      // Canvas width
	Height     float64 `yaml:"height" validate:"gte=0"`     // Canvas height
	Iterations int     `yaml:"iterations" validate:"gte=0"` // Number of iterations for iterative algorithms
	Padding    float64 `yaml:"padding" validate:"gte=0"`    // Padding from edges
	Seed       int64   `yaml:"seed"`                        // Seed for initial placement

	// MaxForceNodes is the largest graph the force layout simulates; bigger
	// graphs are placed on a circle. Zero means DefaultMaxForceNodes.
	MaxForceNodes int `yaml:"max_force_nodes" validate:"gte=0"`
}

// DefaultMaxForceNodes bounds the O(n²) repulsion pass of the force layout
const DefaultMaxForceNodes = 2000

// Kind names a layout algorithm
type Kind string

const (
	KindForce    Kind = "force"
	KindCircular Kind = "circular"
	KindNone     Kind = "none"
)

// Layout computes a position for every node of g, keyed by artist ID
type Layout interface {
	ComputeLayout(g *graph.Graph) (map[string]Position, error)
}

// New returns the layout for kind. KindNone yields a nil Layout.
func New(kind Kind, cfg Config) (Layout, error) {
	if cfg.Width == 0 {
		cfg.Width = 1000
	}
	if cfg.Height == 0 {
		cfg.Height = 1000
	}
	switch kind {
	case KindForce, "":
		return NewForceDirectedLayout(cfg), nil
	case KindCircular:
		return NewCircularLayout(cfg), nil
	case KindNone:
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown layout %q", kind)
	}
}
