package export

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/dd0wney/cluso-artnet/pkg/graph"
	"github.com/dd0wney/cluso-artnet/pkg/layout"
)

func sampleGraph(t *testing.T) *graph.Graph {
	t.Helper()
	g := graph.New()
	nodes := []struct {
		id    string
		attrs graph.Attributes
	}{
		{"Picasso", graph.Attributes{Gender: "Male", Nationality: "Spanish"}},
		{`Claude "Le Peintre" & Co`, graph.Attributes{Gender: "Unknown"}},
		{"Kahlo", graph.Attributes{Gender: "Female", Nationality: "Mexican"}},
	}
	for _, n := range nodes {
		if _, _, err := g.AddNode(n.id, n.attrs); err != nil {
			t.Fatalf("AddNode(%q) failed: %v", n.id, err)
		}
	}
	g.AddEdge("Picasso", nodes[1].id)
	g.AddEdge("Picasso", nodes[1].id)
	g.AddEdge("Picasso", "Kahlo")
	g.SetCommunity("Picasso", 0)
	g.SetCommunity("Kahlo", 1)
	return g
}

func TestWriteGML_Format(t *testing.T) {
	g := sampleGraph(t)

	var buf bytes.Buffer
	if err := WriteGML(&buf, g, nil); err != nil {
		t.Fatalf("WriteGML failed: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"graph [\n  directed 0\n",
		`label "Picasso"`,
		`label "Claude &quot;Le Peintre&quot; &amp; Co"`,
		`nationality "Mexican"`,
		"degree 2",
		"community 1",
		"source 0\n    target 1\n    weight 2",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "graphics") {
		t.Error("Expected no graphics block without positions")
	}
}

func TestGML_RoundTrip(t *testing.T) {
	g := sampleGraph(t)
	positions := map[string]layout.Position{
		"Picasso": {X: 12.5, Y: -3.25},
		"Kahlo":   {X: 0.1, Y: 999},
	}

	var buf bytes.Buffer
	if err := WriteGML(&buf, g, positions); err != nil {
		t.Fatalf("WriteGML failed: %v", err)
	}

	got, gotPos, err := ReadGML(&buf)
	if err != nil {
		t.Fatalf("ReadGML failed: %v", err)
	}

	if got.NodeCount() != g.NodeCount() || got.EdgeCount() != g.EdgeCount() {
		t.Fatalf("Counts differ: nodes %d/%d edges %d/%d",
			got.NodeCount(), g.NodeCount(), got.EdgeCount(), g.EdgeCount())
	}
	for _, want := range g.Nodes() {
		n, ok := got.Node(want.ID)
		if !ok {
			t.Errorf("Node %q lost", want.ID)
			continue
		}
		if n.Attributes != want.Attributes {
			t.Errorf("Node %q attributes = %+v, want %+v", want.ID, n.Attributes, want.Attributes)
		}
		if n.Index() != want.Index() {
			t.Errorf("Node %q index = %d, want %d", want.ID, n.Index(), want.Index())
		}
	}
	for _, e := range g.Edges() {
		if w := got.EdgeWeight(e.From, e.To); w != e.Weight {
			t.Errorf("Edge %s weight = %v, want %v", e, w, e.Weight)
		}
	}
	if len(gotPos) != 2 || gotPos["Picasso"] != positions["Picasso"] || gotPos["Kahlo"] != positions["Kahlo"] {
		t.Errorf("Positions = %v, want %v", gotPos, positions)
	}
}

func TestGML_EmptyGraph(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteGML(&buf, graph.New(), nil); err != nil {
		t.Fatalf("WriteGML failed: %v", err)
	}
	g, _, err := ReadGML(&buf)
	if err != nil {
		t.Fatalf("ReadGML failed: %v", err)
	}
	if g.NodeCount() != 0 || g.EdgeCount() != 0 {
		t.Errorf("Expected empty graph, got %v", g.GetStatistics())
	}
}

func TestReadGML_ForeignInput(t *testing.T) {
	input := `# exported elsewhere
Creator "someone"
graph [
  directed 0
  node [ id 10 label "A" ]
  node [ id 20 label "B" extra [ ignored 1 ] ]
  node [ id 30 ]
  edge [ source 10 target 20 ]
  edge [ source 20 target 30 weight 4 ]
]`
	g, _, err := ReadGML(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadGML failed: %v", err)
	}
	if g.NodeCount() != 3 || g.EdgeCount() != 2 {
		t.Fatalf("Unexpected statistics: %+v", g.GetStatistics())
	}
	if g.EdgeWeight("A", "B") != 1 {
		t.Errorf("Expected default weight 1, got %v", g.EdgeWeight("A", "B"))
	}
	if g.EdgeWeight("B", "30") != 4 {
		t.Errorf("Expected unlabeled node keyed by id, weight 4, got %v", g.EdgeWeight("B", "30"))
	}
}

func TestReadGML_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"no graph", `node [ id 0 ]`},
		{"unclosed", `graph [ node [ id 0 `},
		{"stray bracket", `graph [ ] ]`},
		{"unterminated string", `graph [ node [ id 0 label "A ] ]`},
		{"bad id", `graph [ node [ id x ] ]`},
		{"missing id", `graph [ node [ label "A" ] ]`},
		{"unknown endpoint", `graph [ node [ id 0 ] edge [ source 0 target 5 ] ]`},
		{"missing value", `graph [ node [ id ] ]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ReadGML(strings.NewReader(tt.input))
			if !errors.Is(err, ErrMalformedGML) {
				t.Errorf("Expected ErrMalformedGML, got %v", err)
			}
		})
	}
}

func TestReadGML_SelfLoopRejected(t *testing.T) {
	_, _, err := ReadGML(strings.NewReader(`graph [ node [ id 0 ] edge [ source 0 target 0 ] ]`))
	if !errors.Is(err, graph.ErrSelfLoop) {
		t.Errorf("Expected ErrSelfLoop, got %v", err)
	}
}
