package algorithms

import (
	"container/heap"
	"math"

	"github.com/dd0wney/cluso-artnet/pkg/graph"
)

// PageRankOptions configures PageRank algorithm
type PageRankOptions struct {
	DampingFactor float64 // Usually 0.85
	MaxIterations int
	Tolerance     float64 // Convergence threshold
}

// DefaultPageRankOptions returns default PageRank configuration
func DefaultPageRankOptions() PageRankOptions {
	return PageRankOptions{
		DampingFactor: 0.85,
		MaxIterations: 100,
		Tolerance:     1e-6,
	}
}

// PageRankResult contains PageRank scores for all nodes
type PageRankResult struct {
	Scores     map[string]float64 // Artist ID -> PageRank score
	Iterations int                // Number of iterations performed
	Converged  bool               // Whether algorithm converged
}

// PageRank computes PageRank over the undirected graph, where every edge
// passes rank both ways. Rank held by isolated artists is spread uniformly.
// Scores sum to 1.
func PageRank(g *graph.Graph, opts PageRankOptions) *PageRankResult {
	n := g.NodeCount()
	if n == 0 {
		return &PageRankResult{Scores: make(map[string]float64), Converged: true}
	}

	neighbors := make([][]int, n)
	for i := 0; i < n; i++ {
		neighbors[i] = g.NeighborIndices(i)
	}

	scores := make([]float64, n)
	newScores := make([]float64, n)
	for i := range scores {
		scores[i] = 1.0 / float64(n)
	}

	converged := false
	iterations := 0
	for iterations < opts.MaxIterations {
		iterations++

		// Rank of nodes without neighbors has nowhere to go
		dangling := 0.0
		for i := 0; i < n; i++ {
			if len(neighbors[i]) == 0 {
				dangling += scores[i]
			}
		}
		base := (1.0-opts.DampingFactor)/float64(n) + opts.DampingFactor*dangling/float64(n)

		for i := 0; i < n; i++ {
			newScore := base
			for _, j := range neighbors[i] {
				newScore += opts.DampingFactor * scores[j] / float64(len(neighbors[j]))
			}
			newScores[i] = newScore
		}

		maxDiff := 0.0
		for i := range scores {
			if diff := math.Abs(newScores[i] - scores[i]); diff > maxDiff {
				maxDiff = diff
			}
		}
		scores, newScores = newScores, scores

		if maxDiff < opts.Tolerance {
			converged = true
			break
		}
	}

	// Normalize scores to sum to 1
	sum := 0.0
	for _, score := range scores {
		sum += score
	}
	result := make(map[string]float64, n)
	for i, score := range scores {
		if sum > 0 {
			score /= sum
		}
		result[g.NodeAt(i).ID] = score
	}

	return &PageRankResult{
		Scores:     result,
		Iterations: iterations,
		Converged:  converged,
	}
}

// rankedNodeHeap is a min-heap with the weakest entry at the root: lower
// score first, ties broken by the larger node ID.
type rankedNodeHeap []RankedNode

func (h rankedNodeHeap) Len() int { return len(h) }
func (h rankedNodeHeap) Less(i, j int) bool {
	return weaker(h[i], h[j])
}
func (h rankedNodeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *rankedNodeHeap) Push(x any) {
	*h = append(*h, x.(RankedNode))
}

func (h *rankedNodeHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}

func weaker(a, b RankedNode) bool {
	if a.Score != b.Score {
		return a.Score < b.Score
	}
	return a.NodeID > b.NodeID
}

// TopNodes returns the n highest-scoring nodes, ties broken by node ID.
// Runs in O(len(scores) log n) with a bounded min-heap.
func TopNodes(scores map[string]float64, n int) []RankedNode {
	if n <= 0 {
		return nil
	}

	h := make(rankedNodeHeap, 0, n)
	heap.Init(&h)
	for id, score := range scores {
		rn := RankedNode{NodeID: id, Score: score}
		if h.Len() < n {
			heap.Push(&h, rn)
		} else if weaker(h[0], rn) {
			heap.Pop(&h)
			heap.Push(&h, rn)
		}
	}

	// Pops come out weakest first
	result := make([]RankedNode, h.Len())
	for i := h.Len() - 1; i >= 0; i-- {
		result[i] = heap.Pop(&h).(RankedNode)
	}
	return result
}
