package community

import (
	"fmt"
	"sort"

	"github.com/dd0wney/cluso-artnet/pkg/algorithms"
	"github.com/dd0wney/cluso-artnet/pkg/graph"
)

const (
	// DefaultRareThreshold is the global share below which a nationality is bucketed
	DefaultRareThreshold = 0.03
	// OthersLabel names the bucket rare nationalities fold into
	OthersLabel = "Others"
)

// DistributionOptions controls rare-value bucketing
type DistributionOptions struct {
	RareThreshold float64 `yaml:"rare_threshold" validate:"gte=0,lt=1"`
	OthersLabel   string  `yaml:"others_label"`
}

// DefaultDistributionOptions returns the 3% "Others" policy
func DefaultDistributionOptions() DistributionOptions {
	return DistributionOptions{RareThreshold: DefaultRareThreshold, OthersLabel: OthersLabel}
}

// ValueShare is one attribute value's count within a community
type ValueShare struct {
	Value string  `json:"value"`
	Count int     `json:"count"`
	Share float64 `json:"share"`
}

// CommunityDistribution is the attribute breakdown of one community.
// Shares sum to 1.
type CommunityDistribution struct {
	Community int          `json:"community"`
	Size      int          `json:"size"`
	Values    []ValueShare `json:"values"`
}

// Distribution is the per-community breakdown of one attribute
type Distribution struct {
	Attribute   graph.Attribute         `json:"attribute"`
	Total       int                     `json:"total"`
	Global      []ValueShare            `json:"global"`
	Communities []CommunityDistribution `json:"communities"`
}

// Community returns the breakdown for community c
func (d *Distribution) Community(c int) (CommunityDistribution, bool) {
	for _, cd := range d.Communities {
		if cd.Community == c {
			return cd, true
		}
	}
	return CommunityDistribution{}, false
}

// SummarizeAttribute counts attribute values per community over the labeled
// nodes of g.
//
// Nodes without a community label or without a value are skipped. For
// nationality, values whose share of the remaining nodes is below the rare
// threshold are relabeled as the others bucket first; a real nationality
// equal to the bucket label is rejected with ErrOthersCollision. Gender is
// never bucketed. Communities left with no nodes are omitted.
func SummarizeAttribute(g *graph.Graph, attr graph.Attribute, opts DistributionOptions) (*Distribution, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	if attr != graph.AttrGender && attr != graph.AttrNationality {
		return nil, graph.ErrUnknownAttr
	}
	if opts.OthersLabel == "" {
		opts.OthersLabel = OthersLabel
	}

	type labeled struct {
		community int
		value     string
	}
	nodes := make([]labeled, 0, g.NodeCount())
	global := make(map[string]int)
	for _, n := range g.Nodes() {
		value := n.Attributes.Value(attr)
		if !n.Attributes.HasCommunity || value == "" {
			continue
		}
		nodes = append(nodes, labeled{community: n.Attributes.Community, value: value})
		global[value]++
	}

	if attr == graph.AttrNationality && global[opts.OthersLabel] > 0 {
		return nil, fmt.Errorf("%w: %q (set others_label)", ErrOthersCollision, opts.OthersLabel)
	}

	total := len(nodes)
	if attr == graph.AttrNationality && total > 0 {
		rare := make(map[string]bool)
		for value, count := range global {
			if float64(count)/float64(total) < opts.RareThreshold {
				rare[value] = true
			}
		}
		if len(rare) > 0 {
			for i := range nodes {
				if rare[nodes[i].value] {
					nodes[i].value = opts.OthersLabel
				}
			}
			for value := range rare {
				global[opts.OthersLabel] += global[value]
				delete(global, value)
			}
		}
	}

	counts := make(map[int]map[string]int)
	for _, n := range nodes {
		if counts[n.community] == nil {
			counts[n.community] = make(map[string]int)
		}
		counts[n.community][n.value]++
	}

	dist := &Distribution{
		Attribute:   attr,
		Total:       total,
		Global:      shares(global, total),
		Communities: make([]CommunityDistribution, 0, len(counts)),
	}
	for _, c := range algorithms.SortedKeys(counts) {
		size := 0
		for _, n := range counts[c] {
			size += n
		}
		dist.Communities = append(dist.Communities, CommunityDistribution{
			Community: c,
			Size:      size,
			Values:    shares(counts[c], size),
		})
	}
	return dist, nil
}

// shares converts counts to proportions, largest first, ties by value.
func shares(counts map[string]int, total int) []ValueShare {
	out := make([]ValueShare, 0, len(counts))
	for value, count := range counts {
		vs := ValueShare{Value: value, Count: count}
		if total > 0 {
			vs.Share = float64(count) / float64(total)
		}
		out = append(out, vs)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Value < out[j].Value
	})
	return out
}
