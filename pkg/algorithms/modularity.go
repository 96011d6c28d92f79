package algorithms

import (
	"github.com/dd0wney/cluso-artnet/pkg/graph"
)

// Modularity computes the Newman modularity of a partition of g, treating
// every edge as weight 1. labels maps node ID to community; nodes missing
// from labels are each placed in their own community. An edgeless graph
// scores 0.
func Modularity(g *graph.Graph, labels map[string]int) float64 {
	return ModularityWithResolution(g, labels, 1.0)
}

// ModularityWithResolution is Modularity with a resolution parameter γ:
// Q = Σ_c [ L_c/m − γ (d_c / 2m)² ].
func ModularityWithResolution(g *graph.Graph, labels map[string]int, resolution float64) float64 {
	return modularity(g, labels, resolution, false)
}

// WeightedModularity is Modularity with shared-exhibition counts as edge
// weights: L_c, d_c and m become weight sums.
func WeightedModularity(g *graph.Graph, labels map[string]int) float64 {
	return modularity(g, labels, 1.0, true)
}

func modularity(g *graph.Graph, labels map[string]int, resolution float64, weighted bool) float64 {
	weight := func(i, j int) float64 {
		if weighted {
			return g.WeightAt(i, j)
		}
		return 1
	}

	n := g.NodeCount()
	m := 0.0
	for i := 0; i < n; i++ {
		for _, j := range g.NeighborIndices(i) {
			if j > i {
				m += weight(i, j)
			}
		}
	}
	if m == 0 {
		return 0
	}

	dense := make([]int, n)
	next := 0
	index := make(map[int]int)
	for i := 0; i < n; i++ {
		label, ok := labels[g.NodeAt(i).ID]
		if !ok {
			dense[i] = -1 - i // unique singleton
			continue
		}
		d, seen := index[label]
		if !seen {
			d = next
			index[label] = d
			next++
		}
		dense[i] = d
	}

	internal := make(map[int]float64)
	degreeSum := make(map[int]float64)
	for i := 0; i < n; i++ {
		for _, j := range g.NeighborIndices(i) {
			w := weight(i, j)
			degreeSum[dense[i]] += w
			if j > i && dense[i] == dense[j] {
				internal[dense[i]] += w
			}
		}
	}

	q := 0.0
	for c, d := range degreeSum {
		share := d / (2 * m)
		q += internal[c]/m - resolution*share*share
	}
	return q
}

// newDetectionResult turns a dense per-node label slice into a result with
// communities renumbered by first appearance in node order.
func newDetectionResult(g *graph.Graph, labels []int, communities []*Community) *CommunityDetectionResult {
	n := g.NodeCount()
	nodeCommunity := make(map[string]int, n)

	if communities == nil {
		renumber := make(map[int]int)
		communities = make([]*Community, 0)
		for i := 0; i < n; i++ {
			id, ok := renumber[labels[i]]
			if !ok {
				id = len(communities)
				renumber[labels[i]] = id
				communities = append(communities, &Community{ID: id, Nodes: make([]string, 0)})
			}
			communities[id].Nodes = append(communities[id].Nodes, g.NodeAt(i).ID)
		}
	}

	for _, c := range communities {
		c.Size = len(c.Nodes)
		for _, id := range c.Nodes {
			nodeCommunity[id] = c.ID
		}
	}

	for _, c := range communities {
		c.Density = communityDensity(g, c.Nodes, nodeCommunity, c.ID)
	}

	return &CommunityDetectionResult{
		Communities:   communities,
		NodeCommunity: nodeCommunity,
		Modularity:    Modularity(g, nodeCommunity),
	}
}

// communityDensity is the share of possible internal edges that exist.
func communityDensity(g *graph.Graph, members []string, nodeCommunity map[string]int, id int) float64 {
	size := len(members)
	if size < 2 {
		return 0
	}
	internal := 0
	for _, member := range members {
		neighbors, err := g.Neighbors(member)
		if err != nil {
			continue
		}
		for _, nb := range neighbors {
			if nodeCommunity[nb] == id && member < nb {
				internal++
			}
		}
	}
	return float64(internal) / (float64(size*(size-1)) / 2)
}
