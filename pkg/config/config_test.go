package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dd0wney/cluso-artnet/pkg/community"
	"github.com/dd0wney/cluso-artnet/pkg/layout"
	"github.com/dd0wney/cluso-artnet/pkg/logging"
	"github.com/dd0wney/cluso-artnet/pkg/pipeline"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "artnet.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func envMap(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default config invalid: %v", err)
	}
	if cfg.Pipeline.Distribution.RareThreshold != community.DefaultRareThreshold {
		t.Errorf("Expected rare threshold %v, got %v", community.DefaultRareThreshold, cfg.Pipeline.Distribution.RareThreshold)
	}
}

func TestLoad_FileOverDefaults(t *testing.T) {
	path := writeConfig(t, `
environment: production
logging:
  level: debug
pipeline:
  workers: 8
  builder:
    include_isolated: true
  community:
    algorithm: label_propagation
    seed: 7
  snapshots:
    enabled: true
    compress: true
    dir: out
    layout: circular
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Environment != "production" || cfg.Logging.Level != "debug" {
		t.Errorf("Unexpected top-level values: %+v", cfg)
	}
	if cfg.Pipeline.Workers != 8 || !cfg.Pipeline.Builder.IncludeIsolated {
		t.Errorf("Unexpected pipeline values: %+v", cfg.Pipeline)
	}
	if cfg.Pipeline.Community.Algorithm != community.AlgorithmLabelPropagation || cfg.Pipeline.Community.Seed != 7 {
		t.Errorf("Unexpected community config: %+v", cfg.Pipeline.Community)
	}
	// Keys absent from the file keep their defaults
	if cfg.Pipeline.Community.Resolution != 1.0 {
		t.Errorf("Expected default resolution, got %v", cfg.Pipeline.Community.Resolution)
	}
	if !cfg.Pipeline.Builder.IncludeAttributes {
		t.Error("Expected include_attributes default to survive")
	}
	if cfg.Pipeline.Snapshots.Layout != layout.KindCircular || cfg.Pipeline.Snapshots.Dir != "out" {
		t.Errorf("Unexpected snapshot config: %+v", cfg.Pipeline.Snapshots)
	}
	if cfg.Input.DateLayout != "2006-01-02" {
		t.Errorf("Expected default date layout, got %q", cfg.Input.DateLayout)
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error for missing file")
	}
	if _, err := Load(writeConfig(t, "pipeline: [unclosed")); err == nil {
		t.Error("Expected parse error")
	}
}

func TestValidate_ReportsEveryViolation(t *testing.T) {
	cfg := Default()
	cfg.Logging.Level = "verbose"
	cfg.Pipeline.Workers = -1
	cfg.Pipeline.Community.Algorithm = "spectral"
	cfg.Pipeline.Distribution.RareThreshold = 1.5
	cfg.Pipeline.Snapshots.Enabled = true
	cfg.Pipeline.Snapshots.Sink = pipeline.SinkS3

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Expected validation errors")
	}
	msg := err.Error()
	for _, want := range []string{
		"Logging.Level: must be one of",
		"Pipeline.Workers: must be at least 0",
		"Pipeline.Community.Algorithm",
		"Pipeline.Distribution.RareThreshold: must not exceed 1",
		"Pipeline.Snapshots.S3.Bucket: required",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("Error missing %q:\n%s", want, msg)
		}
	}
}

func TestValidate_DirRequiredWhenEnabled(t *testing.T) {
	cfg := Default()
	cfg.Pipeline.Snapshots.Dir = ""
	if err := cfg.Validate(); err != nil {
		t.Errorf("Disabled snapshots should not need a dir: %v", err)
	}

	cfg.Pipeline.Snapshots.Enabled = true
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "Pipeline.Snapshots.Dir: field is required") {
		t.Errorf("Expected dir requirement, got %v", err)
	}

	// An empty sink defaults to dir and needs the same directory
	cfg.Pipeline.Snapshots.Sink = ""
	err = cfg.Validate()
	if err == nil || strings.Count(err.Error(), "Pipeline.Snapshots.Dir: field is required") != 1 {
		t.Errorf("Expected one dir requirement for the default sink, got %v", err)
	}

	cfg.Pipeline.Snapshots.Dir = "out"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default sink with a dir should validate: %v", err)
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	err := cfg.ApplyEnv(envMap(map[string]string{
		"ARTNET_ENV":              "production",
		"LOG_LEVEL":               "WARN",
		"ARTNET_WORKERS":          "3",
		"ARTNET_SNAPSHOT_DIR":     "/tmp/snaps",
		"ARTNET_S3_BUCKET":        "bucket",
		"AWS_REGION":              "eu-central-1",
		"ARTNET_METRICS_TEXTFILE": "/var/lib/node_exporter/artnet.prom",
	}))
	if err != nil {
		t.Fatalf("ApplyEnv failed: %v", err)
	}

	if cfg.Environment != "production" || cfg.Logging.Level != "warn" || cfg.Pipeline.Workers != 3 {
		t.Errorf("Unexpected overrides: env=%s level=%s workers=%d",
			cfg.Environment, cfg.Logging.Level, cfg.Pipeline.Workers)
	}
	s3 := cfg.Pipeline.Snapshots.S3
	if cfg.Pipeline.Snapshots.Dir != "/tmp/snaps" || s3.Bucket != "bucket" || s3.Region != "eu-central-1" {
		t.Errorf("Unexpected snapshot overrides: %+v", cfg.Pipeline.Snapshots)
	}
	if cfg.Metrics.Textfile != "/var/lib/node_exporter/artnet.prom" {
		t.Errorf("Unexpected textfile: %q", cfg.Metrics.Textfile)
	}

	if err := cfg.ApplyEnv(envMap(map[string]string{"ARTNET_WORKERS": "many"})); err == nil {
		t.Error("Expected error for non-numeric ARTNET_WORKERS")
	}
}

func TestLogger(t *testing.T) {
	cfg := Default()
	cfg.Logging.Level = "error"
	if got := cfg.Logger().GetLevel(); got != logging.ErrorLevel {
		t.Errorf("Expected ErrorLevel, got %v", got)
	}
}
