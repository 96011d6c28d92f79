package algorithms

import (
	"math"
	"testing"
)

func TestCountTriangles_EmptyGraph(t *testing.T) {
	result := CountTriangles(buildTestGraph(t, nil))

	if result.GlobalCount != 0 {
		t.Errorf("Expected 0 global triangles, got %d", result.GlobalCount)
	}
	if len(result.PerNode) != 0 {
		t.Errorf("Expected empty PerNode, got %d entries", len(result.PerNode))
	}
}

func TestCountTriangles_TwoExhibitions(t *testing.T) {
	// E1={A,B,C}, E2={B,C,D}: triangles ABC and BCD
	result := CountTriangles(twoExhibitionGraph(t))

	if result.GlobalCount != 2 {
		t.Errorf("Expected 2 triangles, got %d", result.GlobalCount)
	}
	want := map[string]int{"A": 1, "B": 2, "C": 2, "D": 1}
	for id, n := range want {
		if result.PerNode[id] != n {
			t.Errorf("PerNode[%s] = %d, want %d", id, result.PerNode[id], n)
		}
	}
	// B has 3 neighbors, 2 of 3 pairs linked
	if math.Abs(result.ClusteringCoefficients["B"]-2.0/3.0) > 1e-9 {
		t.Errorf("Expected B clustering 2/3, got %f", result.ClusteringCoefficients["B"])
	}
}

func TestCountTriangles_Clique(t *testing.T) {
	// K5 has C(5,3) = 10 triangles, each node in C(4,2) = 6
	g := cliqueRing(t, 1, 5)
	result := CountTriangles(g)

	if result.GlobalCount != 10 {
		t.Errorf("Expected 10 triangles, got %d", result.GlobalCount)
	}
	for id, n := range result.PerNode {
		if n != 6 {
			t.Errorf("PerNode[%s] = %d, want 6", id, n)
		}
		if result.ClusteringCoefficients[id] != 1 {
			t.Errorf("Expected clustering 1 for %s, got %f", id, result.ClusteringCoefficients[id])
		}
	}
}

func TestCountTriangles_LowDegree(t *testing.T) {
	g := buildTestGraph(t, [][2]string{{"A", "B"}}, "Solo")
	result := CountTriangles(g)

	for _, id := range []string{"A", "B", "Solo"} {
		if result.ClusteringCoefficients[id] != 0 {
			t.Errorf("Expected clustering 0 for %s, got %f", id, result.ClusteringCoefficients[id])
		}
	}
}
