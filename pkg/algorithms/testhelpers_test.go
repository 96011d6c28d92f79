package algorithms

import (
	"fmt"
	"testing"

	"github.com/dd0wney/cluso-artnet/pkg/graph"
)

// buildTestGraph creates a graph from an edge list plus optional isolated nodes
func buildTestGraph(t *testing.T, edges [][2]string, isolated ...string) *graph.Graph {
	t.Helper()

	g := graph.New()
	for _, e := range edges {
		for _, id := range e {
			if _, _, err := g.AddNode(id, graph.Attributes{}); err != nil {
				t.Fatalf("Failed to add node %q: %v", id, err)
			}
		}
		if _, err := g.AddEdge(e[0], e[1]); err != nil {
			t.Fatalf("Failed to add edge %v: %v", e, err)
		}
	}
	for _, id := range isolated {
		if _, _, err := g.AddNode(id, graph.Attributes{}); err != nil {
			t.Fatalf("Failed to add node %q: %v", id, err)
		}
	}
	return g
}

// twoExhibitionGraph is the projection of E1={A,B,C}, E2={B,C,D}
func twoExhibitionGraph(t *testing.T) *graph.Graph {
	return buildTestGraph(t, [][2]string{
		{"A", "B"}, {"A", "C"}, {"B", "C"}, {"B", "D"}, {"C", "D"},
	})
}

// cliqueRing creates k cliques of size s, consecutive cliques joined by one edge
func cliqueRing(t *testing.T, k, s int) *graph.Graph {
	edges := make([][2]string, 0)
	name := func(c, i int) string { return fmt.Sprintf("c%d_n%d", c, i) }
	for c := 0; c < k; c++ {
		for i := 0; i < s; i++ {
			for j := i + 1; j < s; j++ {
				edges = append(edges, [2]string{name(c, i), name(c, j)})
			}
		}
		edges = append(edges, [2]string{name(c, 0), name((c+1)%k, 1)})
	}
	return buildTestGraph(t, edges)
}

func almostEqual(a, b, tolerance float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= tolerance
}
