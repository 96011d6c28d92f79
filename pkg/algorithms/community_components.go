package algorithms

import (
	"container/list"

	"github.com/dd0wney/cluso-artnet/pkg/graph"
)

// ConnectedComponents finds all connected components in the graph. Isolated
// nodes form singleton components. Component IDs follow the insertion order
// of each component's first node.
func ConnectedComponents(g *graph.Graph) *CommunityDetectionResult {
	n := g.NodeCount()
	visited := make([]bool, n)
	labels := make([]int, n)
	communities := make([]*Community, 0)
	communityID := 0

	// BFS to find each component
	for start := 0; start < n; start++ {
		if visited[start] {
			continue
		}

		component := &Community{
			ID:    communityID,
			Nodes: make([]string, 0),
		}

		queue := list.New()
		queue.PushBack(start)
		visited[start] = true

		for queue.Len() > 0 {
			current, ok := queue.Remove(queue.Front()).(int)
			if !ok {
				continue
			}
			component.Nodes = append(component.Nodes, g.NodeAt(current).ID)
			labels[current] = communityID

			for _, next := range g.NeighborIndices(current) {
				if !visited[next] {
					visited[next] = true
					queue.PushBack(next)
				}
			}
		}

		component.Size = len(component.Nodes)
		communities = append(communities, component)
		communityID++
	}

	return newDetectionResult(g, labels, communities)
}

// ComponentCount returns the number of connected components
func ComponentCount(g *graph.Graph) int {
	return ConnectedComponents(g).CommunityCount()
}

// LargestComponentSize returns the node count of the giant component
func LargestComponentSize(g *graph.Graph) int {
	largest := 0
	for _, c := range ConnectedComponents(g).Communities {
		if c.Size > largest {
			largest = c.Size
		}
	}
	return largest
}
