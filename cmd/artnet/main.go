package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dd0wney/cluso-artnet/pkg/config"
	"github.com/dd0wney/cluso-artnet/pkg/logging"
	"github.com/dd0wney/cluso-artnet/pkg/metrics"
	"github.com/dd0wney/cluso-artnet/pkg/pipeline"
	"github.com/dd0wney/cluso-artnet/pkg/records"
	"github.com/dd0wney/cluso-artnet/pkg/report"
)

func main() {
	var (
		configFile = flag.String("config", "", "YAML configuration file")
		inputFile  = flag.String("input", "", "Cleaned participation records (CSV)")
		query      = flag.String("query", "", "GraphQL query to run against the result")
		textfile   = flag.String("metrics-textfile", "", "Write Prometheus metrics to this file")
	)
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *configFile, *inputFile, *query, *textfile); err != nil {
		fmt.Fprintf(os.Stderr, "artnet: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configFile, inputFile, query, textfile string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}
	if inputFile != "" {
		cfg.Input.Path = inputFile
	}
	if textfile != "" {
		cfg.Metrics.Textfile = textfile
	}
	if cfg.Input.Path == "" {
		return fmt.Errorf("no input file: pass -input or set input.path")
	}

	logger := cfg.Logger()
	defer logger.Sync()
	logging.SetDefaultLogger(logger)

	store, err := loadStore(cfg.Input)
	if err != nil {
		return err
	}
	logger.Info("records loaded",
		logging.Path(cfg.Input.Path),
		logging.Count(store.Len()),
		logging.Int("decades", len(store.Decades())))

	reg := metrics.DefaultRegistry()
	res, err := pipeline.Run(ctx, store, cfg.Pipeline,
		pipeline.WithLogger(logger),
		pipeline.WithMetrics(reg))
	if err != nil {
		return err
	}

	fmt.Println(renderSummary(res))
	fmt.Println(renderTable(report.MetricsTable(res)))
	for _, line := range failureLines(res) {
		fmt.Println(line)
	}

	if query != "" {
		if err := printQuery(res, query); err != nil {
			return err
		}
	}

	if cfg.Metrics.Textfile != "" {
		if err := reg.WriteTextfile(cfg.Metrics.Textfile); err != nil {
			return fmt.Errorf("write metrics textfile: %w", err)
		}
		logger.Info("metrics written", logging.Path(cfg.Metrics.Textfile))
	}
	return nil
}

func loadStore(in config.InputConfig) (*records.Store, error) {
	f, err := os.Open(in.Path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	recs, err := records.ReadCSV(f, in.DateLayout)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", in.Path, err)
	}
	return records.NewStore(recs)
}

func printQuery(res *pipeline.Result, query string) error {
	schema, err := report.GenerateSchema(res)
	if err != nil {
		return err
	}
	result := report.ExecuteQuery(schema, query, nil)
	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encode query result: %w", err)
	}
	fmt.Println(string(out))
	if result.HasErrors() {
		return fmt.Errorf("query failed: %v", result.Errors[0].Message)
	}
	return nil
}
