// Package config loads the artnet YAML configuration, applies environment
// overrides and validates the result.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/dd0wney/cluso-artnet/pkg/logging"
	"github.com/dd0wney/cluso-artnet/pkg/pipeline"
)

// validate is a singleton validator instance
var validate = validator.New(validator.WithRequiredStructEnabled())

// Config is the top-level configuration file
type Config struct {
	Environment string          `yaml:"environment" validate:"omitempty,oneof=development production test"`
	Logging     LoggingConfig   `yaml:"logging"`
	Metrics     MetricsConfig   `yaml:"metrics"`
	Input       InputConfig     `yaml:"input"`
	Pipeline    pipeline.Config `yaml:"pipeline"`
}

// LoggingConfig selects the log level and encoding
type LoggingConfig struct {
	Level  string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	Format string `yaml:"format" validate:"omitempty,oneof=json console"`
}

// MetricsConfig controls the Prometheus textfile written after a run
type MetricsConfig struct {
	Textfile string `yaml:"textfile"`
}

// InputConfig describes the cleaned records file
type InputConfig struct {
	Path       string `yaml:"path"`
	DateLayout string `yaml:"date_layout" validate:"required"`
}

// Default returns the configuration used when no file is given
func Default() Config {
	return Config{
		Environment: "development",
		Logging:     LoggingConfig{Level: "info", Format: string(logging.FormatConsole)},
		Input:       InputConfig{DateLayout: "2006-01-02"},
		Pipeline:    pipeline.DefaultConfig(),
	}
}

// Load reads path over the defaults, applies environment overrides and
// validates. An empty path yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from environment variables. lookup is usually
// os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("ARTNET_ENV"); ok && v != "" {
		c.Environment = v
	}
	if v, ok := lookup("LOG_LEVEL"); ok && v != "" {
		c.Logging.Level = strings.ToLower(v)
	}
	if v, ok := lookup("ARTNET_WORKERS"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("ARTNET_WORKERS: %w", err)
		}
		c.Pipeline.Workers = n
	}
	if v, ok := lookup("ARTNET_SNAPSHOT_DIR"); ok && v != "" {
		c.Pipeline.Snapshots.Dir = v
	}
	if v, ok := lookup("ARTNET_S3_BUCKET"); ok && v != "" {
		c.Pipeline.Snapshots.S3.Bucket = v
	}
	if v, ok := lookup("ARTNET_S3_ENDPOINT"); ok && v != "" {
		c.Pipeline.Snapshots.S3.Endpoint = v
	}
	if v, ok := lookup("AWS_REGION"); ok && v != "" && c.Pipeline.Snapshots.S3.Region == "" {
		c.Pipeline.Snapshots.S3.Region = v
	}
	if v, ok := lookup("ARTNET_METRICS_TEXTFILE"); ok && v != "" {
		c.Metrics.Textfile = v
	}
	return nil
}

// Validate checks struct tags and cross-field rules and reports every
// violation.
func (c *Config) Validate() error {
	errs := make([]error, 0)

	if err := validate.Struct(c); err != nil {
		var validationErrs validator.ValidationErrors
		if !errors.As(err, &validationErrs) {
			return err
		}
		for _, e := range validationErrs {
			errs = append(errs, formatFieldError(e))
		}
	}

	snap := c.Pipeline.Snapshots
	if snap.Enabled && snap.Sink == pipeline.SinkS3 && snap.S3.Bucket == "" {
		errs = append(errs, fmt.Errorf("Pipeline.Snapshots.S3.Bucket: required for the s3 sink"))
	}
	// an empty sink means dir; the tag rule only matches an explicit "dir"
	if snap.Enabled && snap.Sink == "" && snap.Dir == "" {
		errs = append(errs, fmt.Errorf("Pipeline.Snapshots.Dir: field is required"))
	}

	return errors.Join(errs...)
}

func formatFieldError(e validator.FieldError) error {
	field := strings.TrimPrefix(e.Namespace(), "Config.")
	switch e.Tag() {
	case "required", "required_if":
		return fmt.Errorf("%s: field is required", field)
	case "oneof":
		return fmt.Errorf("%s: must be one of [%s], got %v", field, e.Param(), e.Value())
	case "gte", "min":
		return fmt.Errorf("%s: must be at least %s", field, e.Param())
	case "lte", "lt", "max":
		return fmt.Errorf("%s: must not exceed %s", field, e.Param())
	default:
		return fmt.Errorf("%s: validation failed (%s)", field, e.Tag())
	}
}

// Logger builds the logger described by the configuration
func (c Config) Logger() *logging.ZapLogger {
	level := logging.ParseLevel(c.Logging.Level)
	format := logging.Format(c.Logging.Format)
	if format == "" {
		format = logging.FormatConsole
		if c.Environment == "production" {
			format = logging.FormatJSON
		}
	}
	return logging.NewLogger(os.Stderr, level, format)
}
