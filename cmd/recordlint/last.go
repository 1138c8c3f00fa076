package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/c360studio/recordlint/config"
	"github.com/c360studio/recordlint/export"
	"github.com/c360studio/recordlint/format"
	"github.com/c360studio/recordlint/storage"
)

func lastCmd(gf *globalFlags) *cobra.Command {
	var (
		runID string
		list  bool
	)

	cmd := &cobra.Command{
		Use:   "last [root]",
		Short: "Print the records of the most recent run from the run log",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(gf.logLevel)
			overrides := &config.Config{}
			if len(args) > 0 {
				root, err := filepath.Abs(args[0])
				if err != nil {
					return fmt.Errorf("resolve root: %w", err)
				}
				overrides.Root = root
			}
			cfg, err := loadConfig(gf.configPath, overrides, logger)
			if err != nil {
				return err
			}

			store := storage.NewRunStore(cfg.RunLogPath(), logger)
			out := cmd.OutOrStdout()
			if list {
				return listRuns(out, store)
			}
			return printRun(out, store, runID)
		},
	}
	cmd.Flags().StringVar(&runID, "run", "", "Print this run instead of the most recent one")
	cmd.Flags().BoolVar(&list, "list", false, "List recorded runs")
	return cmd
}

// printRun writes the records of one run as JSONL.
func printRun(out io.Writer, store *storage.RunStore, runID string) error {
	var (
		run storage.Run
		err error
	)
	if runID == "" {
		run, err = store.Last()
	} else {
		run, err = store.Get(runID)
	}
	if errors.Is(err, storage.ErrNoRuns) {
		return fmt.Errorf("%w in %s", err, store.Path())
	}
	if err != nil {
		return err
	}
	return export.EncodeRecords(out, run.Records)
}

// listRuns prints one row per recorded run, oldest first.
func listRuns(out io.Writer, store *storage.RunStore) error {
	runs, err := store.Runs()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		return fmt.Errorf("%w in %s", storage.ErrNoRuns, store.Path())
	}

	tb := format.NewTable(format.ASCII)
	tb.Header("Run", "Time", "Findings")
	total := 0
	for _, r := range runs {
		findings := len(r.Records)
		if r.Clean() {
			findings = 0
		}
		total += findings
		tb.Row(r.ID, r.Time.Format("2006-01-02 15:04:05"), findings)
	}
	tb.Footer(format.Plural(len(runs), "run"), "", total)
	tb.Columns(format.ColumnConfig{Number: 3, Align: format.AlignRight})
	_, err = fmt.Fprintln(out, tb.String())
	return err
}
