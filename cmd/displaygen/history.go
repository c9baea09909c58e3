/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package main

import (
	"context"
	"errors"

	"github.com/cristianoliveira/displaygen/cmd"
	"github.com/cristianoliveira/displaygen/internal/app"
	"github.com/cristianoliveira/displaygen/internal/config"
	"github.com/cristianoliveira/displaygen/internal/storage/manifest"
	"github.com/spf13/cobra"
)

type historyClient interface {
	History(ctx context.Context, limit int) ([]manifest.Run, error)
	RunEntries(ctx context.Context, runID string) ([]manifest.Entry, error)
	Prune(ctx context.Context, days int, dryRun bool) (int, error)
}

// NewHistoryCmd creates the history command with explicit dependencies.
func NewHistoryCmd(client historyClient) *cobra.Command {
	if client == nil {
		panic("NewHistoryCmd: client dependency cannot be nil")
	}

	var (
		limitFlag  int
		runFlag    string
		formatFlag string
		pruneFlag  int
		dryRunFlag bool
	)

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Show or prune past generation runs",
		Long: `Show or prune past generation runs.

Lists recent runs, newest first. With --run, lists the variants a run
generated; a unique prefix of the run id is enough. With --prune DAYS,
removes finished runs older than DAYS.`,
		Example: `  displaygen history --limit 5
  displaygen history --run 1f3a --format table
  displaygen history --prune 30 --dry-run`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("prune") {
				return app.NewPruneUseCase(client).Execute(cmd.Context(), app.PruneInput{
					Days:   pruneFlag,
					DryRun: dryRunFlag,
					Output: cmd.OutOrStdout(),
				})
			}
			if dryRunFlag {
				return errors.New("--dry-run only applies to --prune")
			}

			limit := limitFlag
			if !cmd.Flags().Changed("limit") {
				limit = config.GetInt("history_limit", 20)
			}
			return app.NewHistoryUseCase(client).Execute(cmd.Context(), app.HistoryInput{
				RunID:  runFlag,
				Limit:  limit,
				Format: formatFlag,
				Output: cmd.OutOrStdout(),
			})
		},
	}

	// Default limit 0 means "use config value"
	historyCmd.Flags().IntVarP(&limitFlag, "limit", "n", 0, "Number of runs to show, 0 for all (default: history_limit config value)")
	historyCmd.Flags().StringVar(&runFlag, "run", "", "Show the variants of one run, by id or id prefix")
	historyCmd.Flags().StringVarP(&formatFlag, "format", "f", "simple", "Output format: simple, table, json or yaml")
	historyCmd.Flags().IntVar(&pruneFlag, "prune", 0, "Remove finished runs older than N days")
	historyCmd.Flags().BoolVar(&dryRunFlag, "dry-run", false, "With --prune, count runs without removing them")
	historyCmd.MarkFlagsMutuallyExclusive("run", "prune")

	return historyCmd
}

// historyCmd represents the history command
var historyCmd = NewHistoryCmd(coreClient)

func init() {
	cmd.RootCmd.AddCommand(historyCmd)
}
