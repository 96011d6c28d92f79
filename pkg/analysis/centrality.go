package analysis

import (
	"fmt"

	"github.com/dd0wney/cluso-artnet/pkg/algorithms"
	"github.com/dd0wney/cluso-artnet/pkg/graph"
)

// Centrality holds per-artist structural scores
type Centrality struct {
	Degree           int     `json:"degree"`
	DegreeCentrality float64 `json:"degree_centrality"` // degree / (n-1)
	Betweenness      float64 `json:"betweenness"`
	Closeness        float64 `json:"closeness"`
	Clustering       float64 `json:"clustering"`
	PageRank         float64 `json:"pagerank"`
}

// Measure selects a Centrality field for ranking
type Measure string

const (
	ByDegree      Measure = "degree"
	ByBetweenness Measure = "betweenness"
	ByCloseness   Measure = "closeness"
	ByClustering  Measure = "clustering"
	ByPageRank    Measure = "pagerank"
)

// Measures lists every ranking measure
var Measures = []Measure{ByDegree, ByBetweenness, ByCloseness, ByClustering, ByPageRank}

// ParseMeasure resolves a measure name
func ParseMeasure(s string) (Measure, error) {
	switch Measure(s) {
	case ByDegree, ByBetweenness, ByCloseness, ByClustering, ByPageRank:
		return Measure(s), nil
	}
	return "", fmt.Errorf("unknown centrality measure %q", s)
}

// ComputeCentrality returns degree, betweenness, closeness, clustering and
// PageRank for every artist in g.
func ComputeCentrality(g *graph.Graph) map[string]Centrality {
	return centrality(g, algorithms.BetweennessCentrality(g))
}

func centrality(g *graph.Graph, betweenness map[string]float64) map[string]Centrality {
	degrees := algorithms.Degrees(g)
	normalized := algorithms.DegreeCentrality(g)
	closeness := algorithms.ClosenessCentrality(g)
	clustering := algorithms.ClusteringCoefficient(g)
	pagerank := algorithms.PageRank(g, algorithms.DefaultPageRankOptions()).Scores

	out := make(map[string]Centrality, g.NodeCount())
	for _, id := range g.NodeIDs() {
		out[id] = Centrality{
			Degree:           degrees[id],
			DegreeCentrality: normalized[id],
			Betweenness:      betweenness[id],
			Closeness:        closeness[id],
			Clustering:       clustering[id],
			PageRank:         pagerank[id],
		}
	}
	return out
}

// TopArtists ranks artists by the chosen measure, highest first.
func TopArtists(centrality map[string]Centrality, by Measure, n int) []algorithms.RankedNode {
	scores := make(map[string]float64, len(centrality))
	for id, c := range centrality {
		switch by {
		case ByBetweenness:
			scores[id] = c.Betweenness
		case ByCloseness:
			scores[id] = c.Closeness
		case ByClustering:
			scores[id] = c.Clustering
		case ByPageRank:
			scores[id] = c.PageRank
		default:
			scores[id] = float64(c.Degree)
		}
	}
	return algorithms.TopNodes(scores, n)
}
