/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package main

import (
	"github.com/cristianoliveira/displaygen/cmd"
	"github.com/cristianoliveira/displaygen/internal/app"
	"github.com/cristianoliveira/displaygen/internal/config"
	"github.com/spf13/cobra"
)

// NewGenerateCmd creates the generate command with explicit dependencies.
func NewGenerateCmd(client app.GenerateClient) *cobra.Command {
	if client == nil {
		panic("NewGenerateCmd: client dependency cannot be nil")
	}

	var (
		dryRunFlag    bool
		stdoutFlag    bool
		verboseFlag   bool
		methodFlag    string
		directiveFlag string
		suffixFlag    string
	)

	generateCmd := &cobra.Command{
		Use:   "generate [dir]...",
		Short: "Write String methods for annotated types",
		Long: `Write String methods for annotated types.

Scans each package directory (default ".") for //display:"template"
directives and writes one <file>_display.go next to each source file that
declares an annotated type. Generated files whose source is gone are
removed. Every run is recorded in the history manifest.`,
		Example: `  displaygen generate ./internal/model
  displaygen generate --dry-run -v .
  displaygen generate --stdout --method Describe .`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("directive") {
				config.Set("directive", directiveFlag)
			}
			if cmd.Flags().Changed("suffix") {
				config.Set("output_suffix", suffixFlag)
			}
			return app.NewGenerateUseCase(client).Execute(cmd.Context(), app.GenerateInput{
				Dirs:       args,
				MethodName: methodFlag,
				DryRun:     dryRunFlag,
				Stdout:     stdoutFlag,
				Verbose:    verboseFlag,
				Output:     cmd.OutOrStdout(),
			})
		},
	}

	generateCmd.Flags().BoolVar(&dryRunFlag, "dry-run", false, "Report what would be written without touching files or history")
	generateCmd.Flags().BoolVar(&stdoutFlag, "stdout", false, "Print generated code instead of writing it (implies --dry-run)")
	generateCmd.Flags().BoolVarP(&verboseFlag, "verbose", "v", false, "List every variant with its rewritten template")
	generateCmd.Flags().StringVar(&methodFlag, "method", "", "Generated method name (default: method_name config value)")
	generateCmd.Flags().StringVar(&directiveFlag, "directive", "", "Directive comment name (default: directive config value)")
	generateCmd.Flags().StringVar(&suffixFlag, "suffix", "", "Output file suffix (default: output_suffix config value)")

	return generateCmd
}

// generateCmd represents the generate command
var generateCmd = NewGenerateCmd(coreClient)

func init() {
	cmd.RootCmd.AddCommand(generateCmd)
}
