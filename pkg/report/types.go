package report

import (
	"github.com/graphql-go/graphql"

	"github.com/dd0wney/cluso-artnet/pkg/algorithms"
	"github.com/dd0wney/cluso-artnet/pkg/analysis"
	"github.com/dd0wney/cluso-artnet/pkg/community"
	"github.com/dd0wney/cluso-artnet/pkg/pipeline"
	"github.com/dd0wney/cluso-artnet/pkg/temporal"
)

// communityView is one community of a decade with its members
type communityView struct {
	ID      int
	Size    int
	Members []string
}

// valueField resolves an analysis.Value to a Float or null
func valueField(get func(analysis.MetricsRow) analysis.Value) *graphql.Field {
	return &graphql.Field{
		Type: graphql.Float,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			row, ok := p.Source.(analysis.MetricsRow)
			if !ok {
				return nil, nil
			}
			if v, defined := get(row).Get(); defined {
				return v, nil
			}
			return nil, nil
		},
	}
}

var metricsRowType = graphql.NewObject(graphql.ObjectConfig{
	Name: "MetricsRow",
	Fields: graphql.Fields{
		"decade": &graphql.Field{
			Type: graphql.Int,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if row, ok := p.Source.(analysis.MetricsRow); ok {
					return row.Decade, nil
				}
				return nil, nil
			},
		},
		"nodeCount": &graphql.Field{
			Type: graphql.Int,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if row, ok := p.Source.(analysis.MetricsRow); ok {
					return row.NodeCount, nil
				}
				return nil, nil
			},
		},
		"edgeCount": &graphql.Field{
			Type: graphql.Int,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if row, ok := p.Source.(analysis.MetricsRow); ok {
					return row.EdgeCount, nil
				}
				return nil, nil
			},
		},
		"density":            valueField(func(r analysis.MetricsRow) analysis.Value { return r.Density }),
		"diameter":           valueField(func(r analysis.MetricsRow) analysis.Value { return r.Diameter }),
		"componentCount":     valueField(func(r analysis.MetricsRow) analysis.Value { return r.ComponentCount }),
		"giantComponentSize": valueField(func(r analysis.MetricsRow) analysis.Value { return r.GiantComponent }),
		"avgDegree":          valueField(func(r analysis.MetricsRow) analysis.Value { return r.AvgDegree }),
		"avgBetweenness":     valueField(func(r analysis.MetricsRow) analysis.Value { return r.AvgBetweenness }),
		"avgClustering":      valueField(func(r analysis.MetricsRow) analysis.Value { return r.AvgClustering }),
	},
})

var decadeType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Decade",
	Fields: graphql.Fields{
		"decade": &graphql.Field{
			Type: graphql.NewNonNull(graphql.Int),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if d, ok := p.Source.(pipeline.DecadeReport); ok {
					return d.Decade, nil
				}
				return nil, nil
			},
		},
		"status": &graphql.Field{
			Type: graphql.String,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if d, ok := p.Source.(pipeline.DecadeReport); ok {
					return string(d.Status), nil
				}
				return nil, nil
			},
		},
		"error": &graphql.Field{
			Type: graphql.String,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if d, ok := p.Source.(pipeline.DecadeReport); ok && d.Err != nil {
					return d.Err.Error(), nil
				}
				return nil, nil
			},
		},
		"durationMs": &graphql.Field{
			Type: graphql.Float,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if d, ok := p.Source.(pipeline.DecadeReport); ok {
					return float64(d.Duration.Microseconds()) / 1000, nil
				}
				return nil, nil
			},
		},
		"metrics": &graphql.Field{
			Type: metricsRowType,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if d, ok := p.Source.(pipeline.DecadeReport); ok && !d.Failed() {
					return d.Row, nil
				}
				return nil, nil
			},
		},
		"communityCount": &graphql.Field{
			Type: graphql.Int,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if d, ok := p.Source.(pipeline.DecadeReport); ok && d.Communities != nil {
					return d.Communities.Count, nil
				}
				return nil, nil
			},
		},
		"modularity": &graphql.Field{
			Type: graphql.Float,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if d, ok := p.Source.(pipeline.DecadeReport); ok && d.Communities != nil {
					return d.Communities.Modularity, nil
				}
				return nil, nil
			},
		},
		"snapshot": &graphql.Field{
			Type: graphql.String,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if d, ok := p.Source.(pipeline.DecadeReport); ok && d.Snapshot != "" {
					return d.Snapshot, nil
				}
				return nil, nil
			},
		},
	},
})

var communityType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Community",
	Fields: graphql.Fields{
		"id": &graphql.Field{
			Type: graphql.NewNonNull(graphql.Int),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if c, ok := p.Source.(communityView); ok {
					return c.ID, nil
				}
				return nil, nil
			},
		},
		"size": &graphql.Field{
			Type: graphql.Int,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if c, ok := p.Source.(communityView); ok {
					return c.Size, nil
				}
				return nil, nil
			},
		},
		"members": &graphql.Field{
			Type: graphql.NewList(graphql.String),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if c, ok := p.Source.(communityView); ok {
					return c.Members, nil
				}
				return nil, nil
			},
		},
	},
})

var valueShareType = graphql.NewObject(graphql.ObjectConfig{
	Name: "ValueShare",
	Fields: graphql.Fields{
		"value": &graphql.Field{
			Type: graphql.String,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if v, ok := p.Source.(community.ValueShare); ok {
					return v.Value, nil
				}
				return nil, nil
			},
		},
		"count": &graphql.Field{
			Type: graphql.Int,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if v, ok := p.Source.(community.ValueShare); ok {
					return v.Count, nil
				}
				return nil, nil
			},
		},
		"share": &graphql.Field{
			Type: graphql.Float,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if v, ok := p.Source.(community.ValueShare); ok {
					return v.Share, nil
				}
				return nil, nil
			},
		},
	},
})

var communityDistributionType = graphql.NewObject(graphql.ObjectConfig{
	Name: "CommunityDistribution",
	Fields: graphql.Fields{
		"community": &graphql.Field{
			Type: graphql.Int,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if cd, ok := p.Source.(community.CommunityDistribution); ok {
					return cd.Community, nil
				}
				return nil, nil
			},
		},
		"size": &graphql.Field{
			Type: graphql.Int,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if cd, ok := p.Source.(community.CommunityDistribution); ok {
					return cd.Size, nil
				}
				return nil, nil
			},
		},
		"values": &graphql.Field{
			Type: graphql.NewList(valueShareType),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if cd, ok := p.Source.(community.CommunityDistribution); ok {
					return cd.Values, nil
				}
				return nil, nil
			},
		},
	},
})

var distributionType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Distribution",
	Fields: graphql.Fields{
		"attribute": &graphql.Field{
			Type: graphql.String,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if d, ok := p.Source.(*community.Distribution); ok {
					return d.Attribute.String(), nil
				}
				return nil, nil
			},
		},
		"total": &graphql.Field{
			Type: graphql.Int,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if d, ok := p.Source.(*community.Distribution); ok {
					return d.Total, nil
				}
				return nil, nil
			},
		},
		"global": &graphql.Field{
			Type: graphql.NewList(valueShareType),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if d, ok := p.Source.(*community.Distribution); ok {
					return d.Global, nil
				}
				return nil, nil
			},
		},
		"communities": &graphql.Field{
			Type: graphql.NewList(communityDistributionType),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if d, ok := p.Source.(*community.Distribution); ok {
					return d.Communities, nil
				}
				return nil, nil
			},
		},
	},
})

var normalizedPointType = graphql.NewObject(graphql.ObjectConfig{
	Name: "NormalizedPoint",
	Fields: graphql.Fields{
		"decade": &graphql.Field{
			Type: graphql.Int,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if pt, ok := p.Source.(temporal.NormalizedPoint); ok {
					return pt.Decade, nil
				}
				return nil, nil
			},
		},
		"metric": &graphql.Field{
			Type: graphql.String,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if pt, ok := p.Source.(temporal.NormalizedPoint); ok {
					return string(pt.Metric), nil
				}
				return nil, nil
			},
		},
		"value": &graphql.Field{
			Type: graphql.Float,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if pt, ok := p.Source.(temporal.NormalizedPoint); ok && pt.Defined {
					return pt.Value, nil
				}
				return nil, nil
			},
		},
		"degenerate": &graphql.Field{
			Type: graphql.Boolean,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if pt, ok := p.Source.(temporal.NormalizedPoint); ok {
					return pt.Degenerate, nil
				}
				return nil, nil
			},
		},
	},
})

var rankedArtistType = graphql.NewObject(graphql.ObjectConfig{
	Name: "RankedArtist",
	Fields: graphql.Fields{
		"artist": &graphql.Field{
			Type: graphql.String,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if r, ok := p.Source.(algorithms.RankedNode); ok {
					return r.NodeID, nil
				}
				return nil, nil
			},
		},
		"score": &graphql.Field{
			Type: graphql.Float,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if r, ok := p.Source.(algorithms.RankedNode); ok {
					return r.Score, nil
				}
				return nil, nil
			},
		},
	},
})
