package pipeline

import (
	"github.com/dd0wney/cluso-artnet/pkg/community"
	"github.com/dd0wney/cluso-artnet/pkg/cooccur"
	"github.com/dd0wney/cluso-artnet/pkg/export"
	"github.com/dd0wney/cluso-artnet/pkg/layout"
)

// Sink kinds
const (
	SinkDir = "dir"
	SinkS3  = "s3"
)

// Config controls one pipeline run
type Config struct {
	Workers      int                           `yaml:"workers" validate:"gte=0,lte=1024"`
	TopN         int                           `yaml:"top_n" validate:"gte=0"`
	Builder      cooccur.Options               `yaml:"builder"`
	Community    community.Config              `yaml:"community"`
	Distribution community.DistributionOptions `yaml:"distribution"`
	Snapshots    SnapshotConfig                `yaml:"snapshots"`
}

// SnapshotConfig controls GML snapshot export
type SnapshotConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Overall  bool   `yaml:"overall"`  // also export the whole-collection graph
	Compress bool   `yaml:"compress"` // snappy, .gml.sz
	Sink     string `yaml:"sink" validate:"omitempty,oneof=dir s3"`
	Dir      string `yaml:"dir" validate:"required_if=Enabled true Sink dir"`

	S3 export.S3Config `yaml:"s3"`

	Layout       layout.Kind   `yaml:"layout" validate:"omitempty,oneof=force circular none"`
	LayoutConfig layout.Config `yaml:"layout_config"`
}

// DefaultConfig returns the configuration used when no file is given
func DefaultConfig() Config {
	return Config{
		Workers:      4,
		TopN:         10,
		Builder:      cooccur.DefaultOptions(),
		Community:    community.DefaultConfig(),
		Distribution: community.DefaultDistributionOptions(),
		Snapshots: SnapshotConfig{
			Sink:   SinkDir,
			Dir:    "snapshots",
			Layout: layout.KindForce,
			LayoutConfig: layout.Config{
				Width:      1000,
				Height:     1000,
				Iterations: 100,
				Padding:    50,
				Seed:       42,
			},
		},
	}
}
