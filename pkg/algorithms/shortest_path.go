package algorithms

import (
	"github.com/dd0wney/cluso-artnet/pkg/graph"
)

// BFSDistances returns hop distances from source to every node by dense
// index. Unreachable nodes are -1.
func BFSDistances(g *graph.Graph, source int) []int {
	n := g.NodeCount()
	distance := make([]int, n)
	for i := range distance {
		distance[i] = -1
	}
	if source < 0 || source >= n {
		return distance
	}

	distance[source] = 0
	queue := []int{source}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, next := range g.NeighborIndices(current) {
			if distance[next] < 0 {
				distance[next] = distance[current] + 1
				queue = append(queue, next)
			}
		}
	}
	return distance
}

// Eccentricity returns the greatest distance from the node at index i to any
// node reachable from it.
func Eccentricity(g *graph.Graph, i int) int {
	ecc := 0
	for _, d := range BFSDistances(g, i) {
		if d > ecc {
			ecc = d
		}
	}
	return ecc
}

// Diameter returns the longest shortest path between any two mutually
// reachable nodes. Unreachable pairs are skipped rather than treated as
// infinite, so a disconnected graph reports the widest component's diameter.
// ok is false for graphs with fewer than two nodes.
func Diameter(g *graph.Graph) (diameter int, ok bool) {
	n := g.NodeCount()
	if n < 2 {
		return 0, false
	}
	for i := 0; i < n; i++ {
		if ecc := Eccentricity(g, i); ecc > diameter {
			diameter = ecc
		}
	}
	return diameter, true
}

