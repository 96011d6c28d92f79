package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/dd0wney/cluso-artnet/pkg/analysis"
	"github.com/dd0wney/cluso-artnet/pkg/pipeline"
	"github.com/dd0wney/cluso-artnet/pkg/report"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF00FF"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FFFF")).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().Padding(0, 1)

	failedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000"))
)

// renderTable draws the metrics table with failed decades highlighted
func renderTable(rows [][]string) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))).
		Headers(report.TableHeader...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if row >= 0 && row < len(rows) && len(rows[row]) > 1 && rows[row][1] != "ok" {
				return failedStyle
			}
			return cellStyle
		})
	return t.Render()
}

func renderSummary(res *pipeline.Result) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Artist co-occurrence network"))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("run %s  records %d  exhibitions %d  artists %d  (%s)\n",
		res.RunID, res.Records, res.Exhibitions, res.Artists, res.Duration().Round(time.Millisecond)))

	for _, m := range []analysis.Measure{analysis.ByDegree, analysis.ByBetweenness} {
		top := res.TopArtists[m]
		if len(top) == 0 {
			continue
		}
		names := make([]string, len(top))
		for i, r := range top {
			names[i] = fmt.Sprintf("%s (%.3g)", r.NodeID, r.Score)
		}
		sb.WriteString(fmt.Sprintf("top by %s: %s\n", m, strings.Join(names, ", ")))
	}
	if len(res.Snapshots) > 0 {
		sb.WriteString(fmt.Sprintf("snapshots: %s\n", strings.Join(res.Snapshots, ", ")))
	}
	return strings.TrimRight(sb.String(), "\n")
}

// failureLines describes failed decades and snapshot errors
func failureLines(res *pipeline.Result) []string {
	lines := make([]string, 0)
	for _, d := range res.Decades {
		if d.Err != nil {
			lines = append(lines, errorStyle.Render(fmt.Sprintf("decade %d %s: %v", d.Decade, d.Status, d.Err)))
		}
		if d.SnapshotErr != nil {
			lines = append(lines, errorStyle.Render(fmt.Sprintf("decade %d snapshot: %v", d.Decade, d.SnapshotErr)))
		}
	}
	if res.SnapshotErr != nil {
		lines = append(lines, errorStyle.Render(fmt.Sprintf("overall snapshot: %v", res.SnapshotErr)))
	}
	return lines
}
