package community

import (
	"errors"
	"math"
	"testing"

	"github.com/dd0wney/cluso-artnet/pkg/algorithms"
	"github.com/dd0wney/cluso-artnet/pkg/graph"
)

func buildGraph(t *testing.T, edges [][2]string) *graph.Graph {
	t.Helper()
	g := graph.New()
	for _, e := range edges {
		g.AddNode(e[0], graph.Attributes{Gender: graph.UnknownGender})
		g.AddNode(e[1], graph.Attributes{Gender: graph.UnknownGender})
		if _, err := g.AddEdge(e[0], e[1]); err != nil {
			t.Fatalf("AddEdge %v: %v", e, err)
		}
	}
	return g
}

func bridgedTriangles(t *testing.T) *graph.Graph {
	return buildGraph(t, [][2]string{
		{"A1", "A2"}, {"A2", "A3"}, {"A1", "A3"},
		{"B1", "B2"}, {"B2", "B3"}, {"B1", "B3"},
		{"A3", "B1"},
	})
}

func TestDetect_LabelsNodes(t *testing.T) {
	g := bridgedTriangles(t)

	assignment, err := NewDetector(DefaultConfig(), nil).Detect(g)
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}

	if assignment.Count != 2 {
		t.Fatalf("Expected 2 communities, got %d", assignment.Count)
	}
	if math.Abs(assignment.Modularity-2*(3.0/7.0-0.25)) > 1e-9 {
		t.Errorf("Unexpected modularity %f", assignment.Modularity)
	}
	if len(assignment.Sizes) != 2 || assignment.Sizes[0]+assignment.Sizes[1] != 6 {
		t.Errorf("Unexpected sizes %v", assignment.Sizes)
	}

	for _, n := range g.Nodes() {
		if !n.Attributes.HasCommunity {
			t.Fatalf("Node %s not labeled", n.ID)
		}
		if n.Attributes.Community != assignment.Communities[n.ID] {
			t.Errorf("Node %s label %d disagrees with assignment %d", n.ID, n.Attributes.Community, assignment.Communities[n.ID])
		}
	}

	a := assignment.Communities["A1"]
	members := assignment.Members(a)
	if len(members) != 3 || members[0] != "A1" || members[2] != "A3" {
		t.Errorf("Unexpected members of A-community: %v", members)
	}
}

func TestDetect_RepeatedRunsAgreeOnQuality(t *testing.T) {
	g := buildGraph(t, nil)
	// Four 5-cliques in a ring
	for c := 0; c < 4; c++ {
		for i := 0; i < 5; i++ {
			for j := i + 1; j < 5; j++ {
				a, b := string(rune('a'+c))+string(rune('0'+i)), string(rune('a'+c))+string(rune('0'+j))
				g.AddNode(a, graph.Attributes{})
				g.AddNode(b, graph.Attributes{})
				g.AddEdge(a, b)
			}
		}
	}
	for c := 0; c < 4; c++ {
		g.AddEdge(string(rune('a'+c))+"0", string(rune('a'+(c+1)%4))+"1")
	}

	var scores []float64
	for _, seed := range []int64{1, 2, 3} {
		cfg := DefaultConfig()
		cfg.Seed = seed
		assignment, err := NewDetector(cfg, nil).Detect(g)
		if err != nil {
			t.Fatalf("Detect failed: %v", err)
		}
		if assignment.Count < 2 || assignment.Count > 4 {
			t.Errorf("seed %d: community count %d out of range", seed, assignment.Count)
		}
		scores = append(scores, assignment.Modularity)
	}
	for _, s := range scores[1:] {
		if math.Abs(s-scores[0]) > 0.05 {
			t.Errorf("Modularity varies across runs: %v", scores)
		}
	}
}

func TestDetect_LabelPropagation(t *testing.T) {
	g := buildGraph(t, [][2]string{
		{"A", "B"}, {"B", "C"}, {"A", "C"},
		{"X", "Y"}, {"Y", "Z"}, {"X", "Z"},
	})
	cfg := DefaultConfig()
	cfg.Algorithm = AlgorithmLabelPropagation

	assignment, err := NewDetector(cfg, nil).Detect(g)
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if assignment.Count != 2 {
		t.Errorf("Expected 2 communities, got %d", assignment.Count)
	}
	if got := algorithms.Modularity(g, assignment.Communities); math.Abs(got-assignment.Modularity) > 1e-9 {
		t.Errorf("Reported modularity %f, recomputed %f", assignment.Modularity, got)
	}
}

func TestDetect_Errors(t *testing.T) {
	if _, err := NewDetector(DefaultConfig(), nil).Detect(nil); !errors.Is(err, ErrNilGraph) {
		t.Errorf("Expected ErrNilGraph, got %v", err)
	}

	cfg := DefaultConfig()
	cfg.Algorithm = "girvan_newman"
	if _, err := NewDetector(cfg, nil).Detect(graph.New()); !errors.Is(err, ErrUnknownAlgorithm) {
		t.Errorf("Expected ErrUnknownAlgorithm, got %v", err)
	}
}

func TestDetect_EmptyGraph(t *testing.T) {
	assignment, err := NewDetector(Config{}, nil).Detect(graph.New())
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if assignment.Count != 0 || assignment.Modularity != 0 {
		t.Errorf("Unexpected assignment for empty graph: %+v", assignment)
	}
}
