package algorithms

import (
	"math/rand"

	"github.com/dd0wney/cluso-artnet/pkg/graph"
)

// LouvainOptions configures multilevel modularity optimization
type LouvainOptions struct {
	Resolution float64 // resolution parameter (higher = more communities)
	MaxPasses  int     // max local-moving sweeps per level
	MaxLevels  int     // max aggregation levels
	MinGain    float64 // min modularity gain for a move to count
	Seed       int64   // seed for node visiting order
	Weighted   bool    // use shared-exhibition counts as edge weights
}

// DefaultLouvainOptions returns sensible defaults
func DefaultLouvainOptions() LouvainOptions {
	return LouvainOptions{
		Resolution: 1.0,
		MaxPasses:  50,
		MaxLevels:  10,
		MinGain:    1e-7,
		Seed:       42,
	}
}

// levelGraph is the weighted graph one Louvain level works on. Node i's
// internal weight (from aggregation) lives in selfLoop[i].
type levelGraph struct {
	adj      []map[int]float64
	selfLoop []float64
	strength []float64
	total    float64 // m: total edge weight
}

func newLevelGraph(g *graph.Graph, weighted bool) *levelGraph {
	n := g.NodeCount()
	lg := &levelGraph{
		adj:      make([]map[int]float64, n),
		selfLoop: make([]float64, n),
		strength: make([]float64, n),
	}
	for i := 0; i < n; i++ {
		lg.adj[i] = make(map[int]float64)
		for _, j := range g.NeighborIndices(i) {
			w := 1.0
			if weighted {
				w = g.WeightAt(i, j)
			}
			lg.adj[i][j] = w
			lg.strength[i] += w
			if j > i {
				lg.total += w
			}
		}
	}
	return lg
}

func (lg *levelGraph) size() int {
	return len(lg.adj)
}

// moveNodes runs the local-moving phase and returns the community of every
// level node, renumbered densely, plus whether any node moved.
func (lg *levelGraph) moveNodes(opts LouvainOptions, rng *rand.Rand) ([]int, bool) {
	n := lg.size()
	community := make([]int, n)
	tot := make([]float64, n)
	for i := 0; i < n; i++ {
		community[i] = i
		tot[i] = lg.strength[i] + 2*lg.selfLoop[i]
	}

	m2 := 2 * lg.total
	moved := false
	order := rng.Perm(n)

	for pass := 0; pass < opts.MaxPasses; pass++ {
		improved := false

		for _, i := range order {
			current := community[i]
			ki := lg.strength[i] + 2*lg.selfLoop[i]

			// Weights from i to each neighboring community
			links := make(map[int]float64)
			for j, w := range lg.adj[i] {
				links[community[j]] += w
			}

			// Take i out of its community
			tot[current] -= ki

			best := current
			bestGain := links[current] - opts.Resolution*tot[current]*ki/m2
			for _, c := range SortedKeys(links) {
				gain := links[c] - opts.Resolution*tot[c]*ki/m2
				if gain > bestGain+opts.MinGain {
					best = c
					bestGain = gain
				}
			}

			tot[best] += ki
			if best != current {
				community[i] = best
				improved = true
				moved = true
			}
		}

		if !improved {
			break
		}
	}

	return renumber(community), moved
}

// aggregate collapses each community into a single node.
func (lg *levelGraph) aggregate(community []int) *levelGraph {
	k := 0
	for _, c := range community {
		if c+1 > k {
			k = c + 1
		}
	}

	next := &levelGraph{
		adj:      make([]map[int]float64, k),
		selfLoop: make([]float64, k),
		strength: make([]float64, k),
		total:    lg.total,
	}
	for c := 0; c < k; c++ {
		next.adj[c] = make(map[int]float64)
	}

	for i := 0; i < lg.size(); i++ {
		ci := community[i]
		next.selfLoop[ci] += lg.selfLoop[i]
		for j, w := range lg.adj[i] {
			if j < i {
				continue
			}
			cj := community[j]
			if ci == cj {
				next.selfLoop[ci] += w
				continue
			}
			next.adj[ci][cj] += w
			next.adj[cj][ci] += w
		}
	}
	for c := 0; c < k; c++ {
		for _, w := range next.adj[c] {
			next.strength[c] += w
		}
	}
	return next
}

// renumber maps arbitrary labels onto 0..k-1 in order of first appearance.
func renumber(labels []int) []int {
	mapping := make(map[int]int)
	out := make([]int, len(labels))
	for i, l := range labels {
		id, ok := mapping[l]
		if !ok {
			id = len(mapping)
			mapping[l] = id
		}
		out[i] = id
	}
	return out
}

// Louvain detects communities by greedy multilevel modularity optimization:
// nodes repeatedly move to the neighboring community with the best
// modularity gain, then communities are collapsed into single nodes and the
// process repeats until no move improves modularity. Different seeds may
// yield different partitions of similar quality. The reported modularity is
// weighted when opts.Weighted is set, matching the objective optimized.
func Louvain(g *graph.Graph, opts LouvainOptions) *CommunityDetectionResult {
	defaults := DefaultLouvainOptions()
	if opts.Resolution <= 0 {
		opts.Resolution = defaults.Resolution
	}
	if opts.MaxPasses <= 0 {
		opts.MaxPasses = defaults.MaxPasses
	}
	if opts.MaxLevels <= 0 {
		opts.MaxLevels = defaults.MaxLevels
	}

	n := g.NodeCount()
	membership := make([]int, n)
	for i := range membership {
		membership[i] = i
	}

	lg := newLevelGraph(g, opts.Weighted)
	if lg.total == 0 {
		// No edges: every artist is its own community
		return newDetectionResult(g, membership, nil)
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	for level := 0; level < opts.MaxLevels; level++ {
		community, moved := lg.moveNodes(opts, rng)
		if !moved {
			break
		}
		for i := range membership {
			membership[i] = community[membership[i]]
		}
		lg = lg.aggregate(community)
	}

	result := newDetectionResult(g, membership, nil)
	if opts.Weighted {
		result.Modularity = WeightedModularity(g, result.NodeCommunity)
	}
	return result
}
