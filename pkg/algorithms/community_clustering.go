package algorithms

import "github.com/dd0wney/cluso-artnet/pkg/graph"

// ClusteringCoefficient computes local clustering coefficient for all nodes
// Measures how close a node's neighbors are to being a complete graph
func ClusteringCoefficient(g *graph.Graph) map[string]float64 {
	return CountTriangles(g).ClusteringCoefficients
}

// AverageClusteringCoefficient computes the average clustering coefficient.
// ok is false for an empty graph.
func AverageClusteringCoefficient(g *graph.Graph) (avg float64, ok bool) {
	coefficients := ClusteringCoefficient(g)
	if len(coefficients) == 0 {
		return 0.0, false
	}

	sum := 0.0
	for _, coef := range coefficients {
		sum += coef
	}

	return sum / float64(len(coefficients)), true
}
