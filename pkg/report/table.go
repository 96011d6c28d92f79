package report

import (
	"strconv"

	"github.com/dd0wney/cluso-artnet/pkg/analysis"
	"github.com/dd0wney/cluso-artnet/pkg/pipeline"
)

// TableHeader is the first row of MetricsTable
var TableHeader = []string{
	"decade", "status", "nodes", "edges", "density", "diameter",
	"components", "giant component", "avg degree", "avg betweenness", "avg clustering", "communities", "modularity",
}

// MetricsTable renders one row per decade, failed decades included, with the
// overall graph as the last row. Undefined cells read "n/a".
func MetricsTable(res *pipeline.Result) [][]string {
	rows := make([][]string, 0, len(res.Decades)+1)
	for _, d := range res.Decades {
		if d.Failed() {
			row := []string{strconv.Itoa(d.Decade), string(d.Status)}
			for len(row) < len(TableHeader) {
				row = append(row, "-")
			}
			rows = append(rows, row)
			continue
		}
		communities, modularity := "-", "-"
		if d.Communities != nil {
			communities = strconv.Itoa(d.Communities.Count)
			modularity = analysis.Defined(d.Communities.Modularity).String()
		}
		rows = append(rows, append(metricCells(strconv.Itoa(d.Decade), string(d.Status), d.Row), communities, modularity))
	}
	rows = append(rows, append(metricCells("overall", "ok", res.Overall), "-", "-"))
	return rows
}

func metricCells(label, status string, row analysis.MetricsRow) []string {
	return []string{
		label,
		status,
		strconv.Itoa(row.NodeCount),
		strconv.Itoa(row.EdgeCount),
		row.Density.String(),
		row.Diameter.String(),
		row.ComponentCount.String(),
		row.GiantComponent.String(),
		row.AvgDegree.String(),
		row.AvgBetweenness.String(),
		row.AvgClustering.String(),
	}
}
