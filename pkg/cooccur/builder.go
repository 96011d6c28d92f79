// Package cooccur projects artist–exhibition participation records onto the
// artist side, producing an undirected co-occurrence graph.
package cooccur

import (
	"fmt"

	"github.com/dd0wney/cluso-artnet/pkg/graph"
	"github.com/dd0wney/cluso-artnet/pkg/records"
)

// Options controls what the builder puts on the graph
type Options struct {
	// IncludeAttributes copies gender and nationality onto nodes.
	IncludeAttributes bool `yaml:"include_attributes"`
	// IncludeIsolated adds artists that never share an exhibition as
	// zero-degree nodes. When false they are dropped.
	IncludeIsolated bool `yaml:"include_isolated"`
}

// DefaultOptions returns the builder configuration used by the pipeline
func DefaultOptions() Options {
	return Options{IncludeAttributes: true}
}

// Builder converts record sets into co-occurrence graphs.
type Builder struct {
	opts Options
}

// NewBuilder creates a builder with the given options
func NewBuilder(opts Options) *Builder {
	return &Builder{opts: opts}
}

// Options returns the builder's configuration
func (b *Builder) Options() Options {
	return b.opts
}

// roster is one exhibition's distinct artists in first-seen order.
type roster struct {
	artists []string
	seen    map[string]struct{}
}

// Build groups records by exhibition and links every unordered pair of
// distinct artists in each group. Pairs repeated across exhibitions collapse
// into one edge whose weight counts the shared exhibitions.
func (b *Builder) Build(recs []records.ParticipationRecord) (*graph.Graph, error) {
	order := make([]string, 0)
	rosters := make(map[string]*roster)
	attrs := make(map[string]*graph.Attributes)
	artistOrder := make([]string, 0)

	for _, r := range recs {
		if r.ExhibitionID == "" || r.ArtistID == "" {
			return nil, &records.MissingDataError{Field: missingField(r), Record: r, Index: -1}
		}

		ro, ok := rosters[r.ExhibitionID]
		if !ok {
			ro = &roster{seen: make(map[string]struct{})}
			rosters[r.ExhibitionID] = ro
			order = append(order, r.ExhibitionID)
		}
		if _, dup := ro.seen[r.ArtistID]; !dup {
			ro.seen[r.ArtistID] = struct{}{}
			ro.artists = append(ro.artists, r.ArtistID)
		}

		a, ok := attrs[r.ArtistID]
		if !ok {
			a = &graph.Attributes{}
			attrs[r.ArtistID] = a
			artistOrder = append(artistOrder, r.ArtistID)
		}
		// First non-empty value wins
		if a.Gender == "" {
			a.Gender = r.Gender
		}
		if a.Nationality == "" {
			a.Nationality = r.Nationality
		}
	}

	g := graph.New()

	if b.opts.IncludeIsolated {
		for _, id := range artistOrder {
			if _, _, err := g.AddNode(id, b.nodeAttributes(attrs[id])); err != nil {
				return nil, fmt.Errorf("add artist %q: %w", id, err)
			}
		}
	}

	for _, exhibitionID := range order {
		artists := rosters[exhibitionID].artists
		if len(artists) < 2 {
			continue
		}
		for i := 0; i < len(artists); i++ {
			for j := i + 1; j < len(artists); j++ {
				if err := b.link(g, attrs, artists[i], artists[j]); err != nil {
					return nil, fmt.Errorf("exhibition %q: %w", exhibitionID, err)
				}
			}
		}
	}

	return g, nil
}

func (b *Builder) link(g *graph.Graph, attrs map[string]*graph.Attributes, a, c string) error {
	if _, _, err := g.AddNode(a, b.nodeAttributes(attrs[a])); err != nil {
		return err
	}
	if _, _, err := g.AddNode(c, b.nodeAttributes(attrs[c])); err != nil {
		return err
	}
	_, err := g.AddEdge(a, c)
	return err
}

func (b *Builder) nodeAttributes(a *graph.Attributes) graph.Attributes {
	if !b.opts.IncludeAttributes {
		return graph.Attributes{}
	}
	out := graph.Attributes{Gender: a.Gender, Nationality: a.Nationality}
	if out.Gender == "" {
		out.Gender = graph.UnknownGender
	}
	return out
}

func missingField(r records.ParticipationRecord) string {
	if r.ExhibitionID == "" {
		return "ExhibitionID"
	}
	return "ArtistID"
}
