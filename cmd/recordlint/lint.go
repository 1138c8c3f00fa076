package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/c360studio/recordlint/config"
	"github.com/c360studio/recordlint/corpus"
	"github.com/c360studio/recordlint/export"
	"github.com/c360studio/recordlint/metrics"
	"github.com/c360studio/recordlint/storage"
	"github.com/c360studio/recordlint/validation"
)

// ErrThreshold is returned when a run has findings at or above fail_on.
var ErrThreshold = errors.New("findings at or above fail-on severity")

// lintFlags are the config overrides accepted by lint and watch.
type lintFlags struct {
	format   string
	failOn   string
	noRunLog bool
	metrics  string
}

func (f *lintFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.format, "format", "f", "", "Report format (text, markdown, jsonl, json)")
	cmd.Flags().StringVar(&f.failOn, "fail-on", "", "Lowest severity that fails the run (error, warning, info)")
	cmd.Flags().BoolVar(&f.noRunLog, "no-run-log", false, "Do not append the run to the run log")
	cmd.Flags().StringVar(&f.metrics, "metrics", "", "Write Prometheus metrics to this textfile")
}

// overrides turns flags and the optional root argument into a config layer.
func (f *lintFlags) overrides(args []string) (*config.Config, error) {
	o := &config.Config{
		Format: f.format,
		FailOn: f.failOn,
	}
	o.Metrics.Path = f.metrics
	if f.noRunLog {
		disabled := false
		o.RunLog.Enabled = &disabled
	}
	if len(args) > 0 {
		root, err := filepath.Abs(args[0])
		if err != nil {
			return nil, fmt.Errorf("resolve root: %w", err)
		}
		o.Root = root
	}
	return o, nil
}

func lintCmd(gf *globalFlags) *cobra.Command {
	var flags lintFlags

	cmd := &cobra.Command{
		Use:   "lint [root]",
		Short: "Lint every record under root",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(gf.logLevel)
			overrides, err := flags.overrides(args)
			if err != nil {
				return err
			}
			cfg, err := loadConfig(gf.configPath, overrides, logger)
			if err != nil {
				return err
			}

			report, err := lint(cmd.Context(), cfg, logger, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return checkThreshold(cfg, report)
		},
	}
	flags.register(cmd)
	return cmd
}

// loadConfig resolves the layered configuration. configPath, when set, is
// applied between the discovered config files and the flag overrides.
func loadConfig(configPath string, overrides *config.Config, logger *slog.Logger) (*config.Config, error) {
	loader := config.NewLoader(logger)
	loader.File = configPath
	cfg, err := loader.Load(overrides)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	for _, layer := range loader.Layers() {
		logger.Debug("Config layer applied", "layer", layer.Name, "path", layer.Path)
	}
	return cfg, nil
}

// lint runs one full pass over the corpus, prints the report to out, and
// records the run in the run log and metrics textfile when configured.
func lint(ctx context.Context, cfg *config.Config, logger *slog.Logger, out io.Writer) (*export.Report, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	start := time.Now()

	loader := corpus.NewLoader(cfg.Root, cfg.Include, cfg.Exclude, logger)
	inputs, err := loader.DiscoverAndLoad(ctx)
	if err != nil {
		return nil, fmt.Errorf("load records: %w", err)
	}

	findings, stats, err := validation.Lint(inputs, logger)
	if err != nil {
		return nil, fmt.Errorf("lint: %w", err)
	}

	report := export.NewReport(storage.NewRunID(), start, stats, findings)
	report.Duration = time.Since(start)

	format, err := export.ParseFormat(cfg.Format)
	if err != nil {
		return nil, err
	}
	if err := export.Write(out, format, report); err != nil {
		return nil, fmt.Errorf("write report: %w", err)
	}

	if cfg.RunLogEnabled() {
		if err := storage.NewRunStore(cfg.RunLogPath(), logger).Append(report); err != nil {
			return nil, fmt.Errorf("record run: %w", err)
		}
	}

	if path := cfg.MetricsPath(); path != "" {
		rec := metrics.New()
		rec.Observe(stats, findings, report.Duration, time.Now())
		if err := rec.WriteTextfile(path); err != nil {
			return nil, fmt.Errorf("write metrics: %w", err)
		}
	}

	logger.Info("Lint complete",
		"run_id", report.RunID,
		"documents", stats.Documents,
		"findings", len(findings),
		"duration", report.Duration)

	return report, nil
}

// checkThreshold fails when the highest finding severity reaches fail_on.
func checkThreshold(cfg *config.Config, report *export.Report) error {
	floor, err := cfg.FailOnSeverity()
	if err != nil {
		return err
	}
	highest, ok := validation.MaxSeverity(report.Findings)
	if ok && highest.AtLeast(floor) {
		return fmt.Errorf("%w: highest is %s, fail-on is %s", ErrThreshold, highest, floor)
	}
	return nil
}
