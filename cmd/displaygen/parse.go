/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package main

import (
	"github.com/cristianoliveira/displaygen/cmd"
	"github.com/cristianoliveira/displaygen/internal/app"
	"github.com/spf13/cobra"
)

// NewParseCmd creates the parse command with explicit dependencies.
func NewParseCmd(client app.ParseClient) *cobra.Command {
	if client == nil {
		panic("NewParseCmd: client dependency cannot be nil")
	}

	var (
		formatFlag   string
		orderFlag    string
		truncateFlag bool
	)

	parseCmd := &cobra.Command{
		Use:   "parse [template]",
		Short: "Normalize a template and list its fields",
		Long: `Normalize a template and list its fields.

Empty and numeric placeholders are rewritten to positional names:
"Hello, {}! I'm {name}" becomes "Hello, {__0}! I'm {name}" with fields
__0 and name. Without an argument, or with "-", the template is read from
stdin.`,
		Example: `  displaygen parse "Hello, {}! I'm {name}"
  displaygen parse --format json "{0:>8} {x:.2}"
  echo "{b} {a}" | displaygen parse --order discovered`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			template, err := templateArg(cmd, args)
			if err != nil {
				return err
			}
			return app.NewParseUseCase(client).Execute(app.ParseInput{
				Template: template,
				Order:    orderFlag,
				Truncate: truncateFlag,
				Format:   formatFlag,
				Output:   cmd.OutOrStdout(),
			})
		},
	}

	parseCmd.Flags().StringVarP(&formatFlag, "format", "f", "simple", "Output format: simple, table, json or yaml")
	parseCmd.Flags().StringVar(&orderFlag, "order", "", "Field order: sorted or discovered (default: field_order config value)")
	parseCmd.Flags().BoolVar(&truncateFlag, "truncate", false, "Drop an unterminated trailing placeholder instead of failing")

	return parseCmd
}

// parseCmd represents the parse command
var parseCmd = NewParseCmd(coreClient)

func init() {
	cmd.RootCmd.AddCommand(parseCmd)
}
