package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/c360studio/recordlint/config"
	"github.com/c360studio/recordlint/corpus"
	"github.com/c360studio/recordlint/format"
	"github.com/c360studio/recordlint/watch"
)

func watchCmd(gf *globalFlags) *cobra.Command {
	var flags lintFlags

	cmd := &cobra.Command{
		Use:   "watch [root]",
		Short: "Re-lint the corpus whenever a record changes",
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

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return watchLoop(ctx, cfg, logger, cmd.OutOrStdout())
		},
	}
	flags.register(cmd)
	return cmd
}

// watchLoop lints once, then again after every batch of changes. Every run
// is a full lint; nothing is cached between runs.
func watchLoop(ctx context.Context, cfg *config.Config, logger *slog.Logger, out io.Writer) error {
	loader := corpus.NewLoader(cfg.Root, cfg.Include, cfg.Exclude, logger)

	w, err := watch.New(cfg.Root, loader, cfg.Watch.Debounce, logger)
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Stop()

	if inputs, err := loader.DiscoverAndLoad(ctx); err == nil {
		w.Prime(inputs)
	}
	if err := w.Start(ctx); err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}

	// Lint errors and threshold breaches do not end watch mode.
	runOnce := func() {
		report, err := lint(ctx, cfg, logger, out)
		if err != nil {
			logger.Error("Lint failed", "error", err)
			return
		}
		if err := checkThreshold(cfg, report); err != nil {
			logger.Warn("Run failed threshold", "error", err)
		}
	}

	runOnce()
	for {
		select {
		case <-ctx.Done():
			return nil
		case batch, ok := <-w.Events():
			if !ok {
				return nil
			}
			for _, e := range batch {
				logger.Info("Record changed", "path", e.Path, "op", e.Operation)
			}
			fmt.Fprintf(out, "\n--- %s, re-linting ---\n", format.Plural(len(batch), "change"))
			runOnce()
		}
	}
}
