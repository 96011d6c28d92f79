package algorithms

import (
	"math/rand"

	"github.com/dd0wney/cluso-artnet/pkg/graph"
)

// LabelPropagation performs label propagation for community detection.
// Fast, scalable algorithm for large graphs. Nodes are visited in a seeded
// random order each sweep; ties between equally frequent neighbor labels go
// to the smallest label.
func LabelPropagation(g *graph.Graph, maxIterations int, seed int64) *CommunityDetectionResult {
	n := g.NodeCount()

	// Initialize: each node in its own community
	labels := make([]int, n)
	for i := range labels {
		labels[i] = i
	}

	rng := rand.New(rand.NewSource(seed))

	// Iterate until convergence or max iterations
	for iter := 0; iter < maxIterations; iter++ {
		changed := false

		for _, i := range rng.Perm(n) {
			labelCount := make(map[int]int)
			for _, j := range g.NeighborIndices(i) {
				labelCount[labels[j]]++
			}
			if len(labelCount) == 0 {
				continue
			}

			// Find most frequent label
			maxCount := 0
			maxLabel := labels[i]
			for _, label := range SortedKeys(labelCount) {
				if labelCount[label] > maxCount {
					maxCount = labelCount[label]
					maxLabel = label
				}
			}
			if labelCount[labels[i]] == maxCount {
				continue
			}

			labels[i] = maxLabel
			changed = true
		}

		if !changed {
			break // Converged
		}
	}

	return newDetectionResult(g, labels, nil)
}
