package layout

import (
	"math"
	"sort"

	"github.com/dd0wney/cluso-artnet/pkg/graph"
)

// CircularLayout arranges nodes in a circle, grouped by community label
// when present so communities occupy contiguous arcs.
type CircularLayout struct {
	config Config
}

// NewCircularLayout creates a new circular layout
func NewCircularLayout(config Config) *CircularLayout {
	if config.Padding == 0 {
		config.Padding = 50
	}
	return &CircularLayout{config: config}
}

// ComputeLayout arranges nodes in a circle
func (cl *CircularLayout) ComputeLayout(g *graph.Graph) (map[string]Position, error) {
	nodes := g.Nodes()
	positions := make(map[string]Position, len(nodes))
	if len(nodes) == 0 {
		return positions, nil
	}

	sort.SliceStable(nodes, func(i, j int) bool {
		a, b := nodes[i].Attributes, nodes[j].Attributes
		if a.HasCommunity != b.HasCommunity {
			return a.HasCommunity
		}
		return a.Community < b.Community
	})

	centerX := cl.config.Width / 2
	centerY := cl.config.Height / 2
	radius := math.Min(centerX, centerY) - cl.config.Padding

	angleStep := 2 * math.Pi / float64(len(nodes))
	for i, n := range nodes {
		angle := float64(i) * angleStep
		positions[n.ID] = Position{
			X: centerX + radius*math.Cos(angle),
			Y: centerY + radius*math.Sin(angle),
		}
	}

	return positions, nil
}
