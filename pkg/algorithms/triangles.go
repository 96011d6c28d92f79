package algorithms

import "github.com/dd0wney/cluso-artnet/pkg/graph"

// TriangleCountResult holds per-artist triangle counts, the global count and
// the local clustering coefficients derived from them.
type TriangleCountResult struct {
	PerNode                map[string]int
	GlobalCount            int
	ClusteringCoefficients map[string]float64
}

// CountTriangles counts, for each node u, the pairs of its neighbors that are
// themselves adjacent. Each triangle is counted once per participating node,
// so GlobalCount = sum(PerNode) / 3. Clustering coefficients are computed in
// the same pass; nodes with degree below 2 score 0.
func CountTriangles(g *graph.Graph) *TriangleCountResult {
	n := g.NodeCount()
	neighbors := make([][]int, n)
	neighborSets := make([]map[int]struct{}, n)
	for i := 0; i < n; i++ {
		neighbors[i] = g.NeighborIndices(i)
		set := make(map[int]struct{}, len(neighbors[i]))
		for _, j := range neighbors[i] {
			set[j] = struct{}{}
		}
		neighborSets[i] = set
	}

	perNode := make(map[string]int, n)
	coefficients := make(map[string]float64, n)
	total := 0
	for u := 0; u < n; u++ {
		count := 0
		adj := neighbors[u]
		for a := 0; a < len(adj); a++ {
			for b := a + 1; b < len(adj); b++ {
				if _, ok := neighborSets[adj[a]][adj[b]]; ok {
					count++
				}
			}
		}

		id := g.NodeAt(u).ID
		perNode[id] = count
		total += count

		k := len(adj)
		if k < 2 {
			coefficients[id] = 0.0
			continue
		}
		coefficients[id] = float64(count) / float64(k*(k-1)/2)
	}

	return &TriangleCountResult{
		PerNode:                perNode,
		GlobalCount:            total / 3,
		ClusteringCoefficients: coefficients,
	}
}
