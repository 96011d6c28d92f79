package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-artnet/pkg/analysis"
	"github.com/dd0wney/cluso-artnet/pkg/export"
	"github.com/dd0wney/cluso-artnet/pkg/graph"
	"github.com/dd0wney/cluso-artnet/pkg/metrics"
	"github.com/dd0wney/cluso-artnet/pkg/records"
	"github.com/dd0wney/cluso-artnet/pkg/temporal"
)

func date(year int) time.Time {
	return time.Date(year, time.May, 1, 0, 0, 0, 0, time.UTC)
}

// testStore spans three decades: a four-artist 1950s network, a single pair
// in the 1960s and a solo show in the 1970s.
func testStore(t *testing.T) *records.Store {
	t.Helper()
	store, err := records.FromExhibitions(map[string][]records.Participant{
		"E1": {
			{ArtistID: "A", Gender: "Female", Nationality: "French", EventDate: date(1955)},
			{ArtistID: "B", Gender: "Male", Nationality: "French", EventDate: date(1955)},
			{ArtistID: "C", Gender: "Female", Nationality: "German", EventDate: date(1955)},
		},
		"E2": {
			{ArtistID: "C", Gender: "Female", Nationality: "German", EventDate: date(1957)},
			{ArtistID: "D", Nationality: "Dutch", EventDate: date(1957)},
		},
		"E3": {
			{ArtistID: "A", Gender: "Female", Nationality: "French", EventDate: date(1962)},
			{ArtistID: "B", Gender: "Male", Nationality: "French", EventDate: date(1962)},
		},
		"E4": {
			{ArtistID: "E", Gender: "Male", Nationality: "Spanish", EventDate: date(1971)},
		},
	})
	require.NoError(t, err)
	return store
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Workers = 2
	cfg.TopN = 3
	cfg.Snapshots.Enabled = false
	return cfg
}

type failingSink struct{ err error }

func (s failingSink) Write(context.Context, string, []byte) error { return s.err }
func (s failingSink) Name() string                                { return "failing" }

func TestRun_Analysis(t *testing.T) {
	res, err := Run(context.Background(), testStore(t), testConfig())
	require.NoError(t, err)

	_, err = uuid.Parse(res.RunID)
	assert.NoError(t, err, "run id should be a uuid")
	assert.Equal(t, 8, res.Records)
	assert.Equal(t, 4, res.Exhibitions)
	assert.Equal(t, 5, res.Artists)
	assert.False(t, res.FinishedAt.Before(res.StartedAt))

	// Overall graph drops the solo artist
	assert.Equal(t, 4, res.Overall.NodeCount)
	assert.Equal(t, 4, res.Overall.EdgeCount)
	assert.Equal(t, 2.0, res.OverallGraph().EdgeWeight("A", "B"))
	require.Len(t, res.TopArtists[analysis.ByDegree], 3)
	assert.Equal(t, "C", res.TopArtists[analysis.ByDegree][0].NodeID)
	assert.Equal(t, "C", res.TopArtists[analysis.ByBetweenness][0].NodeID)
	assert.Equal(t, "C", res.TopArtists[analysis.ByCloseness][0].NodeID)
	assert.Len(t, res.TopArtists, len(analysis.Measures))
	assert.Equal(t, analysis.Defined(4), res.Overall.GiantComponent)

	decades := make([]int, 0, len(res.Decades))
	for _, d := range res.Decades {
		decades = append(decades, d.Decade)
		assert.Equal(t, temporal.StatusOK, d.Status, "decade %d", d.Decade)
		assert.NoError(t, d.Err)
	}
	assert.Equal(t, []int{1950, 1960, 1970}, decades)
	assert.Empty(t, res.FailedDecades())

	fifties, ok := res.Decade(1950)
	require.True(t, ok)
	assert.Equal(t, 4, fifties.Row.NodeCount)
	assert.Equal(t, 4, fifties.Row.EdgeCount)
	require.NotNil(t, fifties.Communities)
	assert.GreaterOrEqual(t, fifties.Communities.Count, 1)
	assert.Len(t, fifties.Communities.Communities, 4)

	gender := fifties.Distributions[graph.AttrGender]
	require.NotNil(t, gender)
	// D has no gender on record and falls back to Unknown
	assert.Equal(t, 4, gender.Total)
	nationality := fifties.Distributions[graph.AttrNationality]
	require.NotNil(t, nationality)
	for _, cd := range nationality.Communities {
		sum := 0.0
		for _, v := range cd.Values {
			sum += v.Share
		}
		assert.InDelta(t, 1.0, sum, 1e-9)
	}

	// Labels are written onto the decade graph
	n, ok := fifties.Graph().Node("A")
	require.True(t, ok)
	assert.True(t, n.Attributes.HasCommunity)

	seventies, ok := res.Decade(1970)
	require.True(t, ok)
	assert.Equal(t, 0, seventies.Row.NodeCount)
	assert.False(t, seventies.Row.Density.Defined)
	assert.False(t, seventies.Row.AvgDegree.Defined)

	_, ok = res.Decade(1980)
	assert.False(t, ok)
}

func TestRun_Normalization(t *testing.T) {
	res, err := Run(context.Background(), testStore(t), testConfig())
	require.NoError(t, err)

	nodes := res.Normalized.Series(analysis.MetricNodeCount)
	require.Len(t, nodes, 3)
	assert.InDelta(t, 1.0, nodes[0].Value, 1e-9)
	assert.InDelta(t, 0.5, nodes[1].Value, 1e-9)
	assert.InDelta(t, 0.0, nodes[2].Value, 1e-9)

	// Density is defined for 1950 (4/6) and 1960 (1), undefined for 1970
	density := res.Normalized.Series(analysis.MetricDensity)
	require.Len(t, density, 3)
	assert.InDelta(t, 0.0, density[0].Value, 1e-9)
	assert.InDelta(t, 1.0, density[1].Value, 1e-9)
	assert.False(t, density[2].Defined)
}

func TestRun_SequentialMatchesParallel(t *testing.T) {
	store := testStore(t)

	seq := testConfig()
	seq.Workers = 1
	par := testConfig()
	par.Workers = 4

	a, err := Run(context.Background(), store, seq)
	require.NoError(t, err)
	b, err := Run(context.Background(), store, par)
	require.NoError(t, err)

	assert.Equal(t, a.Rows(), b.Rows())
	for i := range a.Decades {
		assert.Equal(t, a.Decades[i].Communities, b.Decades[i].Communities)
	}
	assert.NotEqual(t, a.RunID, b.RunID)
}

func TestRun_Snapshots(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig()
	cfg.Snapshots.Enabled = true
	cfg.Snapshots.Overall = true
	cfg.Snapshots.Dir = dir
	reg := metrics.NewRegistry()

	res, err := Run(context.Background(), testStore(t), cfg, WithMetrics(reg))
	require.NoError(t, err)

	want := []string{"decade-1950.gml", "decade-1960.gml", "decade-1970.gml", "overall.gml"}
	got := append([]string(nil), res.Snapshots...)
	sort.Strings(got)
	assert.Equal(t, want, got)

	f, err := os.Open(filepath.Join(dir, "decade-1950.gml"))
	require.NoError(t, err)
	defer f.Close()
	g, positions, err := export.ReadSnapshot(f, false)
	require.NoError(t, err)
	assert.Equal(t, 4, g.NodeCount())
	assert.Len(t, positions, 4)
	for _, n := range g.Nodes() {
		assert.True(t, n.Attributes.HasCommunity, "node %s lost its community", n.ID)
	}

	assert.Equal(t, 4.0, testutil.ToFloat64(reg.SnapshotsWrittenTotal.WithLabelValues("dir", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(reg.RunsTotal.WithLabelValues(RunOK)))
	assert.Equal(t, 3.0, testutil.ToFloat64(reg.DecadesProcessedTotal.WithLabelValues("ok")))
}

func TestRun_CompressedSnapshots(t *testing.T) {
	cfg := testConfig()
	cfg.Snapshots.Enabled = true
	cfg.Snapshots.Compress = true
	cfg.Snapshots.Dir = t.TempDir()

	res, err := Run(context.Background(), testStore(t), cfg)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(cfg.Snapshots.Dir, "decade-1960.gml.sz"))
	require.NoError(t, err)
	g, _, err := export.DecodeSnapshot(data, true)
	require.NoError(t, err)
	assert.True(t, g.HasEdge("A", "B"))

	sixties, _ := res.Decade(1960)
	assert.Equal(t, "decade-1960.gml.sz", sixties.Snapshot)
}

func TestRun_SinkFailureIsRecorded(t *testing.T) {
	cfg := testConfig()
	cfg.Snapshots.Enabled = true
	cfg.Snapshots.Overall = true
	sinkErr := errors.New("disk full")

	res, err := Run(context.Background(), testStore(t), cfg, WithSink(failingSink{err: sinkErr}))
	require.NoError(t, err)

	assert.Empty(t, res.Snapshots)
	assert.ErrorIs(t, res.SnapshotErr, sinkErr)
	for _, d := range res.Decades {
		assert.ErrorIs(t, d.SnapshotErr, sinkErr, "decade %d", d.Decade)
		assert.False(t, d.Failed())
	}
}

func TestRun_Errors(t *testing.T) {
	_, err := Run(context.Background(), nil, testConfig())
	assert.ErrorIs(t, err, ErrNilStore)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	reg := metrics.NewRegistry()
	_, err = Run(ctx, testStore(t), testConfig(), WithMetrics(reg))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1.0, testutil.ToFloat64(reg.RunsTotal.WithLabelValues(RunFailed)))

	cfg := testConfig()
	cfg.Snapshots.Enabled = true
	cfg.Snapshots.Sink = "ftp"
	_, err = Run(context.Background(), testStore(t), cfg)
	assert.Error(t, err)

	cfg = testConfig()
	cfg.Snapshots.Enabled = true
	cfg.Snapshots.Sink = ""
	cfg.Snapshots.Dir = ""
	_, err = Run(context.Background(), testStore(t), cfg)
	assert.ErrorIs(t, err, export.ErrNoDir)

	cfg = testConfig()
	cfg.Community.Algorithm = "spectral"
	res, err := Run(context.Background(), testStore(t), cfg)
	require.NoError(t, err)
	assert.Len(t, res.FailedDecades(), 3)
	for _, d := range res.Decades {
		assert.Equal(t, temporal.StatusFailed, d.Status)
		assert.Nil(t, d.Communities)
	}
	assert.Empty(t, res.Rows())
}
