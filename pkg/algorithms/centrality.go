package algorithms

import (
	"container/list"

	"github.com/dd0wney/cluso-artnet/pkg/graph"
)

// RankedNode holds a node with a score, used for top-N listings.
type RankedNode struct {
	NodeID string  `json:"node_id"`
	Score  float64 `json:"score"`
}

// brandesCentrality runs a single O(VE) Brandes pass over the undirected graph
// and returns raw node betweenness indexed by dense node index. Every unordered
// pair is visited from both endpoints, so raw scores count each pair twice.
// Pairs in different components never reach each other and contribute nothing.
func brandesCentrality(g *graph.Graph) []float64 {
	n := g.NodeCount()
	betweenness := make([]float64, n)
	if n == 0 {
		return betweenness
	}

	neighbors := make([][]int, n)
	for i := 0; i < n; i++ {
		neighbors[i] = g.NeighborIndices(i)
	}

	stack := make([]int, 0, n)
	predecessors := make([][]int, n)
	sigma := make([]float64, n)
	distance := make([]int, n)
	delta := make([]float64, n)

	for source := 0; source < n; source++ {
		stack = stack[:0]
		for i := 0; i < n; i++ {
			predecessors[i] = predecessors[i][:0]
			sigma[i] = 0
			distance[i] = -1
			delta[i] = 0
		}

		sigma[source] = 1.0
		distance[source] = 0

		queue := list.New()
		queue.PushBack(source)

		for queue.Len() > 0 {
			v, ok := queue.Remove(queue.Front()).(int)
			if !ok {
				continue
			}
			stack = append(stack, v)

			for _, w := range neighbors[v] {
				if distance[w] < 0 {
					queue.PushBack(w)
					distance[w] = distance[v] + 1
				}
				if distance[w] == distance[v]+1 {
					sigma[w] += sigma[v]
					predecessors[w] = append(predecessors[w], v)
				}
			}
		}

		// Back-propagation of pair dependencies
		for i := len(stack) - 1; i >= 0; i-- {
			w := stack[i]
			for _, v := range predecessors[w] {
				delta[v] += (sigma[v] / sigma[w]) * (1.0 + delta[w])
			}
			if w != source {
				betweenness[w] += delta[w]
			}
		}
	}

	return betweenness
}

// BetweennessCentrality computes the normalized betweenness of every node: the
// fraction of shortest paths between pairs of other nodes that pass through it.
// Graphs with fewer than three nodes score zero everywhere.
func BetweennessCentrality(g *graph.Graph) map[string]float64 {
	raw := brandesCentrality(g)
	n := len(raw)

	result := make(map[string]float64, n)
	normFactor := 0.0
	if n > 2 {
		// raw counts each unordered pair twice; 2/((n-1)(n-2)) pairs * 1/2
		normFactor = 1.0 / float64((n-1)*(n-2))
	}
	for i, score := range raw {
		result[g.NodeAt(i).ID] = score * normFactor
	}
	return result
}

// DegreeCentrality computes degree centrality for all nodes, normalized by n-1.
func DegreeCentrality(g *graph.Graph) map[string]float64 {
	n := g.NodeCount()
	degree := make(map[string]float64, n)

	for i := 0; i < n; i++ {
		if n > 1 {
			degree[g.NodeAt(i).ID] = float64(g.DegreeAt(i)) / float64(n-1)
		} else {
			degree[g.NodeAt(i).ID] = 0.0
		}
	}

	return degree
}

// Degrees returns the raw incident-edge count of every node.
func Degrees(g *graph.Graph) map[string]int {
	n := g.NodeCount()
	degree := make(map[string]int, n)
	for i := 0; i < n; i++ {
		degree[g.NodeAt(i).ID] = g.DegreeAt(i)
	}
	return degree
}

// ClosenessCentrality computes closeness centrality for all nodes.
// Only reachable nodes count towards the average distance.
func ClosenessCentrality(g *graph.Graph) map[string]float64 {
	n := g.NodeCount()
	closeness := make(map[string]float64, n)

	for source := 0; source < n; source++ {
		distance := BFSDistances(g, source)

		totalDistance := 0
		reachableNodes := 0
		for _, dist := range distance {
			if dist > 0 {
				totalDistance += dist
				reachableNodes++
			}
		}

		if totalDistance > 0 {
			closeness[g.NodeAt(source).ID] = float64(reachableNodes) / float64(totalDistance)
		} else {
			closeness[g.NodeAt(source).ID] = 0.0
		}
	}

	return closeness
}
