package analysis

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/dd0wney/cluso-artnet/pkg/graph"
)

func buildGraph(t *testing.T, edges [][2]string, isolated ...string) *graph.Graph {
	t.Helper()
	g := graph.New()
	for _, e := range edges {
		g.AddNode(e[0], graph.Attributes{})
		g.AddNode(e[1], graph.Attributes{})
		if _, err := g.AddEdge(e[0], e[1]); err != nil {
			t.Fatalf("AddEdge %v: %v", e, err)
		}
	}
	for _, id := range isolated {
		g.AddNode(id, graph.Attributes{})
	}
	return g
}

func expectValue(t *testing.T, name string, got Value, want float64) {
	t.Helper()
	if !got.Defined {
		t.Errorf("%s: expected %f, got undefined", name, want)
		return
	}
	if math.Abs(got.Float-want) > 1e-9 {
		t.Errorf("%s: expected %f, got %f", name, want, got.Float)
	}
}

func TestComputeGraphMetrics_TwoExhibitions(t *testing.T) {
	g := buildGraph(t, [][2]string{{"A", "B"}, {"A", "C"}, {"B", "C"}, {"B", "D"}, {"C", "D"}})

	row := ComputeGraphMetrics(g)

	if row.NodeCount != 4 || row.EdgeCount != 5 {
		t.Fatalf("Expected 4 nodes / 5 edges, got %d / %d", row.NodeCount, row.EdgeCount)
	}
	expectValue(t, "density", row.Density, 5.0/6.0)
	expectValue(t, "diameter", row.Diameter, 2)
	expectValue(t, "components", row.ComponentCount, 1)
	expectValue(t, "giant component", row.GiantComponent, 4)
	expectValue(t, "avg degree", row.AvgDegree, 2.5)
	expectValue(t, "avg betweenness", row.AvgBetweenness, 1.0/12.0)
	expectValue(t, "avg clustering", row.AvgClustering, 10.0/12.0)
}

func TestComputeGraphMetrics_Disconnected(t *testing.T) {
	g := buildGraph(t, [][2]string{{"A", "B"}, {"B", "C"}, {"X", "Y"}}, "Lonely")

	row := ComputeGraphMetrics(g)

	expectValue(t, "components", row.ComponentCount, 3)
	expectValue(t, "giant component", row.GiantComponent, 3)
	expectValue(t, "diameter", row.Diameter, 2)
	expectValue(t, "density", row.Density, 3.0/15.0)
}

func TestComputeGraphMetrics_UndefinedCells(t *testing.T) {
	single := buildGraph(t, nil, "A")
	row := ComputeGraphMetrics(single)

	if row.Density.Defined || row.Diameter.Defined || row.ComponentCount.Defined || row.GiantComponent.Defined {
		t.Errorf("Expected size-dependent metrics undefined for a single node: %+v", row)
	}
	expectValue(t, "avg degree", row.AvgDegree, 0)
	expectValue(t, "avg betweenness", row.AvgBetweenness, 0)

	empty := ComputeGraphMetrics(graph.New())
	for _, m := range Metrics {
		v := empty.Get(m)
		if m == MetricNodeCount || m == MetricEdgeCount {
			expectValue(t, string(m), v, 0)
			continue
		}
		if v.Defined {
			t.Errorf("%s should be undefined on an empty graph", m)
		}
	}
}

func TestMetricsRow_JSON(t *testing.T) {
	row := EmptyRow(1950)
	row.AvgDegree = Defined(1.5)

	data, err := json.Marshal(row)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if decoded["density"] != nil {
		t.Errorf("Undefined density should encode as null, got %v", decoded["density"])
	}
	if decoded["avg_degree"] != 1.5 {
		t.Errorf("Expected avg_degree 1.5, got %v", decoded["avg_degree"])
	}

	var back MetricsRow
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal into row failed: %v", err)
	}
	if back.Density.Defined || !back.AvgDegree.Defined {
		t.Errorf("Definedness lost in round trip: %+v", back)
	}
}

func TestParseMetric(t *testing.T) {
	if m, err := ParseMetric("avg_betweenness"); err != nil || m != MetricAvgBetweenness {
		t.Errorf("ParseMetric = %v, %v", m, err)
	}
	if _, err := ParseMetric("pagerank"); err == nil {
		t.Error("Expected error for unknown metric")
	}
	if Undefined().String() != "n/a" || Defined(0.5).String() != "0.5000" {
		t.Error("Unexpected Value formatting")
	}
}
