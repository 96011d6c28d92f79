// Package temporal splits participation records into decade slices, analyzes
// each slice in isolation and normalizes the resulting metric series.
package temporal

import (
	"github.com/dd0wney/cluso-artnet/pkg/cooccur"
	"github.com/dd0wney/cluso-artnet/pkg/graph"
	"github.com/dd0wney/cluso-artnet/pkg/records"
)

// SegmentByDecade builds one graph per decade present in store. Each graph
// sees only its own decade's records. Decades whose build fails appear in
// the error map instead of the graph map.
func SegmentByDecade(store *records.Store, builder *cooccur.Builder) (map[int]*graph.Graph, map[int]error) {
	slices := make(map[int]*graph.Graph)
	failed := make(map[int]error)

	for _, decade := range store.Decades() {
		g, err := builder.Build(store.ForDecade(decade))
		if err != nil {
			failed[decade] = err
			continue
		}
		slices[decade] = g
	}
	return slices, failed
}
