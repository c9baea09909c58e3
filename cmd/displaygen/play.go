/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/displaygen/cmd"
	"github.com/cristianoliveira/displaygen/internal/colors"
	"github.com/cristianoliveira/displaygen/internal/config"
	"github.com/cristianoliveira/displaygen/internal/interpolate"
	"github.com/cristianoliveira/displaygen/internal/settings"
	"github.com/cristianoliveira/displaygen/internal/tui/state"
	"github.com/spf13/cobra"
)

// runPlay starts the preview. Tests replace it to avoid a terminal.
var runPlay = state.Run

// NewPlayCmd creates the play command with explicit dependencies.
func NewPlayCmd(client state.Client) *cobra.Command {
	if client == nil {
		panic("NewPlayCmd: client dependency cannot be nil")
	}

	var (
		valuesFlag   string
		orderFlag    string
		truncateFlag bool
		freshFlag    bool
	)

	playCmd := &cobra.Command{
		Use:   "play [template]",
		Short: "Edit a template interactively and watch it normalize",
		Long: `Edit a template interactively and watch it normalize.

The top line edits the template; tab moves to the values line, which takes
the same words as render. The report below updates on every keystroke.

Without a template argument the last session is restored. The session is
saved on exit unless play_remember is false.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			order := orderFlag
			if order == "" {
				order = config.Get("field_order", string(interpolate.OrderSorted))
			}
			fieldOrder, ok := interpolate.ParseFieldOrder(order)
			if !ok {
				return fmt.Errorf("invalid order %q: must be sorted or discovered", order)
			}

			opts := state.Options{
				Args:     valuesFlag,
				Order:    fieldOrder,
				Truncate: truncateFlag,
			}
			remember := config.GetBool("play_remember", true)
			if len(args) == 1 {
				opts.Template = args[0]
			} else if remember && !freshFlag {
				opts = restoreSession(cmd, opts)
			}

			final, err := runPlay(client, opts, tea.WithInput(cmd.InOrStdin()), tea.WithOutput(cmd.OutOrStdout()))
			if err != nil {
				return err
			}
			if remember {
				session := settings.Session{
					Template: final.Template,
					Values:   final.Args,
					Order:    string(final.Order),
					Truncate: final.Truncate,
				}
				if err := settings.Save(session); err != nil {
					colors.Warning(fmt.Sprintf("play session not saved: %v", err))
				}
			}
			return nil
		},
	}

	playCmd.Flags().StringVar(&valuesFlag, "values", "", "Initial values line, e.g. \"world name=Ana\"")
	playCmd.Flags().StringVar(&orderFlag, "order", "", "Field order: sorted or discovered (default: field_order config value)")
	playCmd.Flags().BoolVar(&truncateFlag, "truncate", false, "Start with unterminated placeholders truncated")
	playCmd.Flags().BoolVar(&freshFlag, "fresh", false, "Ignore the saved session")

	return playCmd
}

// restoreSession seeds opts from the last saved session. Flags given on the
// command line win over saved values.
func restoreSession(cmd *cobra.Command, opts state.Options) state.Options {
	saved, err := settings.Load()
	if err != nil {
		colors.Warning(fmt.Sprintf("play session not restored: %v", err))
		return opts
	}
	if saved.IsEmpty() {
		return opts
	}
	opts.Template = saved.Template
	if !cmd.Flags().Changed("values") {
		opts.Args = saved.Values
	}
	if !cmd.Flags().Changed("order") {
		if order, ok := interpolate.ParseFieldOrder(saved.Order); ok {
			opts.Order = order
		}
	}
	if !cmd.Flags().Changed("truncate") {
		opts.Truncate = saved.Truncate
	}
	return opts
}

// playCmd represents the play command
var playCmd = NewPlayCmd(coreClient)

func init() {
	cmd.RootCmd.AddCommand(playCmd)
}
