/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package main

import (
	"fmt"

	"github.com/cristianoliveira/displaygen/cmd"
	"github.com/cristianoliveira/displaygen/internal/format"
	"github.com/spf13/cobra"
)

// configValueWidth keeps long paths readable.
const configValueWidth = 200

type configClient interface {
	ConfigPath() string
	ConfigSnapshot() [][2]string
	WriteSampleConfig() (string, bool, error)
}

// NewConfigCmd creates the config command with explicit dependencies.
func NewConfigCmd(client configClient) *cobra.Command {
	if client == nil {
		panic("NewConfigCmd: client dependency cannot be nil")
	}

	var (
		initFlag bool
		pathFlag bool
	)

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Long: `Show the effective configuration.

Values come from defaults, then the TOML config file, then DISPLAYGEN_*
environment variables. --init writes a sample config file if none exists.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch {
			case initFlag:
				path, written, err := client.WriteSampleConfig()
				if err != nil {
					return err
				}
				if written {
					fmt.Fprintf(out, "Wrote sample config to %s\n", path)
				} else {
					fmt.Fprintf(out, "Config already exists at %s\n", path)
				}
				return nil
			case pathFlag:
				fmt.Fprintln(out, client.ConfigPath())
				return nil
			}

			rows := make([][]string, 0, len(client.ConfigSnapshot()))
			for _, kv := range client.ConfigSnapshot() {
				rows = append(rows, []string{kv[0], kv[1]})
			}
			fmt.Fprintf(out, "# %s\n", client.ConfigPath())
			table := format.DefaultTableConfig()
			table.MaxColumnWidth = configValueWidth
			return format.NewTableFormatter().WithConfig(table).FormatRows([]string{"KEY", "VALUE"}, rows, out)
		},
	}

	configCmd.Flags().BoolVar(&initFlag, "init", false, "Write a sample config file if none exists")
	configCmd.Flags().BoolVar(&pathFlag, "path", false, "Print the config file path")
	configCmd.MarkFlagsMutuallyExclusive("init", "path")

	return configCmd
}

// configCmd represents the config command
var configCmd = NewConfigCmd(coreClient)

func init() {
	cmd.RootCmd.AddCommand(configCmd)
}
