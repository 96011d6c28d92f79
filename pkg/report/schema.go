// Package report exposes a finished pipeline run through an in-process
// GraphQL schema and a plain metrics table.
package report

import (
	"fmt"
	"time"

	"github.com/graphql-go/graphql"

	"github.com/dd0wney/cluso-artnet/pkg/analysis"
	"github.com/dd0wney/cluso-artnet/pkg/graph"
	"github.com/dd0wney/cluso-artnet/pkg/pipeline"
)

// GenerateSchema builds a read-only GraphQL schema over res
func GenerateSchema(res *pipeline.Result) (graphql.Schema, error) {
	if res == nil {
		return graphql.Schema{}, fmt.Errorf("generate schema: nil result")
	}

	runType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Run",
		Fields: graphql.Fields{
			"runId": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return res.RunID, nil
				},
			},
			"startedAt": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return res.StartedAt.Format(time.RFC3339Nano), nil
				},
			},
			"finishedAt": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return res.FinishedAt.Format(time.RFC3339Nano), nil
				},
			},
			"records": &graphql.Field{
				Type: graphql.Int,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return res.Records, nil
				},
			},
			"exhibitions": &graphql.Field{
				Type: graphql.Int,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return res.Exhibitions, nil
				},
			},
			"artists": &graphql.Field{
				Type: graphql.Int,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return res.Artists, nil
				},
			},
			"overall": &graphql.Field{
				Type: metricsRowType,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return res.Overall, nil
				},
			},
			"topArtists": &graphql.Field{
				Type: graphql.NewList(rankedArtistType),
				Args: graphql.FieldConfigArgument{
					"measure": &graphql.ArgumentConfig{
						Type:         graphql.String,
						DefaultValue: string(analysis.ByDegree),
					},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					name, _ := p.Args["measure"].(string)
					m, err := analysis.ParseMeasure(name)
					if err != nil {
						return nil, err
					}
					return res.TopArtists[m], nil
				},
			},
			"snapshots": &graphql.Field{
				Type: graphql.NewList(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return res.Snapshots, nil
				},
			},
			"failedDecades": &graphql.Field{
				Type: graphql.NewList(graphql.Int),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return res.FailedDecades(), nil
				},
			},
		},
	})

	decadeArg := graphql.FieldConfigArgument{
		"decade": &graphql.ArgumentConfig{
			Type: graphql.NewNonNull(graphql.Int),
		},
	}

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"run": &graphql.Field{
				Type: runType,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return res, nil
				},
			},
			"decades": &graphql.Field{
				Type: graphql.NewList(decadeType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return res.Decades, nil
				},
			},
			"decade": &graphql.Field{
				Type: decadeType,
				Args: decadeArg,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					d, ok := res.Decade(p.Args["decade"].(int))
					if !ok {
						return nil, nil
					}
					return d, nil
				},
			},
			"normalized": &graphql.Field{
				Type: graphql.NewList(normalizedPointType),
				Args: graphql.FieldConfigArgument{
					"metric": &graphql.ArgumentConfig{
						Type: graphql.NewNonNull(graphql.String),
					},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					m, err := analysis.ParseMetric(p.Args["metric"].(string))
					if err != nil {
						return nil, err
					}
					if res.Normalized == nil {
						return nil, nil
					}
					return res.Normalized.Series(m), nil
				},
			},
			"communities": &graphql.Field{
				Type: graphql.NewList(communityType),
				Args: decadeArg,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					d, ok := res.Decade(p.Args["decade"].(int))
					if !ok || d.Communities == nil {
						return nil, nil
					}
					views := make([]communityView, 0, d.Communities.Count)
					for c := 0; c < d.Communities.Count; c++ {
						members := d.Communities.Members(c)
						views = append(views, communityView{ID: c, Size: len(members), Members: members})
					}
					return views, nil
				},
			},
			"distribution": &graphql.Field{
				Type: distributionType,
				Args: graphql.FieldConfigArgument{
					"decade": &graphql.ArgumentConfig{
						Type: graphql.NewNonNull(graphql.Int),
					},
					"attribute": &graphql.ArgumentConfig{
						Type: graphql.NewNonNull(graphql.String),
					},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					attr, err := graph.ParseAttribute(p.Args["attribute"].(string))
					if err != nil {
						return nil, err
					}
					d, ok := res.Decade(p.Args["decade"].(int))
					if !ok || d.Distributions == nil {
						return nil, nil
					}
					dist, ok := d.Distributions[attr]
					if !ok {
						return nil, nil
					}
					return dist, nil
				},
			},
		},
	})

	schema, err := graphql.NewSchema(graphql.SchemaConfig{
		Query: queryType,
	})
	if err != nil {
		return graphql.Schema{}, fmt.Errorf("failed to create schema: %w", err)
	}
	return schema, nil
}
