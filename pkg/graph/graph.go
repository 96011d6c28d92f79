// Package graph provides the transient, in-memory undirected artist graph that
// every analysis in cluso-artnet runs on.
//
// A Graph is simple: no self-loops and at most one edge per unordered pair.
// Repeated co-occurrences only raise the edge weight. Graphs are not safe for
// concurrent mutation; each decade owns its own instance.
package graph

import "sort"

// Graph is an undirected simple graph keyed by artist ID.
type Graph struct {
	nodes     []*Node
	index     map[string]int
	adjacency []map[int]float64
	edgeCount int
}

// Statistics contains basic graph counts
type Statistics struct {
	NodeCount int
	EdgeCount int
}

// New creates an empty graph
func New() *Graph {
	return &Graph{
		nodes:     make([]*Node, 0),
		index:     make(map[string]int),
		adjacency: make([]map[int]float64, 0),
	}
}

// AddNode inserts a node with the given attributes. If the node already
// exists it is returned unchanged and created is false.
func (g *Graph) AddNode(id string, attrs Attributes) (node *Node, created bool, err error) {
	if id == "" {
		return nil, false, &GraphError{Op: "AddNode", Entity: "node", Cause: ErrEmptyID}
	}
	if i, ok := g.index[id]; ok {
		return g.nodes[i], false, nil
	}

	node = &Node{ID: id, Attributes: attrs, index: len(g.nodes)}
	g.index[id] = node.index
	g.nodes = append(g.nodes, node)
	g.adjacency = append(g.adjacency, make(map[int]float64))
	return node, true, nil
}

// AddEdge connects a and b. Adding an existing edge increments its weight.
// Both nodes must already exist.
func (g *Graph) AddEdge(a, b string) (created bool, err error) {
	return g.AddWeightedEdge(a, b, 1)
}

// AddWeightedEdge connects a and b, adding w to the edge weight.
func (g *Graph) AddWeightedEdge(a, b string, w float64) (created bool, err error) {
	if a == b {
		return false, &GraphError{Op: "AddEdge", Entity: "edge", ID: a, Cause: ErrSelfLoop}
	}
	ia, ok := g.index[a]
	if !ok {
		return false, NodeNotFoundError("AddEdge", a)
	}
	ib, ok := g.index[b]
	if !ok {
		return false, NodeNotFoundError("AddEdge", b)
	}

	current, exists := g.adjacency[ia][ib]
	g.adjacency[ia][ib] = current + w
	g.adjacency[ib][ia] = current + w
	if !exists {
		g.edgeCount++
	}
	return !exists, nil
}

// Node returns the node with the given ID
func (g *Graph) Node(id string) (*Node, bool) {
	i, ok := g.index[id]
	if !ok {
		return nil, false
	}
	return g.nodes[i], true
}

// NodeAt returns the node at dense index i.
func (g *Graph) NodeAt(i int) *Node {
	return g.nodes[i]
}

// Nodes returns all nodes in insertion order
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, len(g.nodes))
	copy(out, g.nodes)
	return out
}

// NodeIDs returns all node IDs in insertion order
func (g *Graph) NodeIDs() []string {
	ids := make([]string, len(g.nodes))
	for i, n := range g.nodes {
		ids[i] = n.ID
	}
	return ids
}

// NodeCount returns the number of nodes
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of distinct undirected edges
func (g *Graph) EdgeCount() int {
	return g.edgeCount
}

// GetStatistics returns node and edge counts
func (g *Graph) GetStatistics() Statistics {
	return Statistics{NodeCount: len(g.nodes), EdgeCount: g.edgeCount}
}

// HasEdge reports whether a and b are adjacent
func (g *Graph) HasEdge(a, b string) bool {
	ia, ok := g.index[a]
	if !ok {
		return false
	}
	ib, ok := g.index[b]
	if !ok {
		return false
	}
	_, ok = g.adjacency[ia][ib]
	return ok
}

// EdgeWeight returns the number of shared exhibitions between a and b (0 if not adjacent).
func (g *Graph) EdgeWeight(a, b string) float64 {
	ia, ok := g.index[a]
	if !ok {
		return 0
	}
	ib, ok := g.index[b]
	if !ok {
		return 0
	}
	return g.adjacency[ia][ib]
}

// Degree returns the number of incident edges of id
func (g *Graph) Degree(id string) int {
	i, ok := g.index[id]
	if !ok {
		return 0
	}
	return len(g.adjacency[i])
}

// DegreeAt returns the degree of the node at dense index i.
func (g *Graph) DegreeAt(i int) int {
	return len(g.adjacency[i])
}

// Neighbors returns the IDs adjacent to id, sorted by insertion order.
func (g *Graph) Neighbors(id string) ([]string, error) {
	i, ok := g.index[id]
	if !ok {
		return nil, NodeNotFoundError("Neighbors", id)
	}
	idx := g.NeighborIndices(i)
	out := make([]string, len(idx))
	for k, j := range idx {
		out[k] = g.nodes[j].ID
	}
	return out, nil
}

// NeighborIndices returns the dense indices adjacent to node i in ascending order.
// Algorithms iterate over these to stay deterministic.
func (g *Graph) NeighborIndices(i int) []int {
	out := make([]int, 0, len(g.adjacency[i]))
	for j := range g.adjacency[i] {
		out = append(out, j)
	}
	sort.Ints(out)
	return out
}

// WeightAt returns the weight of edge (i, j) by dense index.
func (g *Graph) WeightAt(i, j int) float64 {
	return g.adjacency[i][j]
}

// Edges returns every undirected edge once, ordered by endpoint insertion order.
func (g *Graph) Edges() []Edge {
	edges := make([]Edge, 0, g.edgeCount)
	for i := range g.nodes {
		for _, j := range g.NeighborIndices(i) {
			if j <= i {
				continue
			}
			edges = append(edges, Edge{
				From:   g.nodes[i].ID,
				To:     g.nodes[j].ID,
				Weight: g.adjacency[i][j],
			})
		}
	}
	return edges
}

// SetCommunity labels a node with an opaque community identifier.
func (g *Graph) SetCommunity(id string, community int) error {
	i, ok := g.index[id]
	if !ok {
		return NodeNotFoundError("SetCommunity", id)
	}
	g.nodes[i].Attributes.Community = community
	g.nodes[i].Attributes.HasCommunity = true
	return nil
}

// ClearCommunities removes all community labels
func (g *Graph) ClearCommunities() {
	for _, n := range g.nodes {
		n.Attributes.Community = 0
		n.Attributes.HasCommunity = false
	}
}
