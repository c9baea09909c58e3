/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package main

import (
	"github.com/cristianoliveira/displaygen/cmd"
	"github.com/cristianoliveira/displaygen/internal/app"
	"github.com/spf13/cobra"
)

// NewRenderCmd creates the render command with explicit dependencies.
func NewRenderCmd(client app.RenderClient) *cobra.Command {
	if client == nil {
		panic("NewRenderCmd: client dependency cannot be nil")
	}

	var truncateFlag bool

	renderCmd := &cobra.Command{
		Use:   "render <template> [value|name=value]...",
		Short: "Render a template with values",
		Long: `Render a template with values.

Plain words fill positional placeholders in order; name=value pairs fill
named ones. Values that look like integers, floats or booleans are typed
so format specs such as {:04x} or {:.2} apply. Quote a word to keep it a
string. A template of "-" is read from stdin.`,
		Example: `  displaygen render "Hello, {}! I'm {name}" world name=Ana
  displaygen render "{0:04x} {0}" 42`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			template, err := templateArg(cmd, args[:1])
			if err != nil {
				return err
			}
			return app.NewRenderUseCase(client).Execute(app.RenderInput{
				Template: template,
				Args:     args[1:],
				Truncate: truncateFlag,
				Output:   cmd.OutOrStdout(),
			})
		},
	}

	renderCmd.Flags().BoolVar(&truncateFlag, "truncate", false, "Drop an unterminated trailing placeholder instead of failing")

	return renderCmd
}

// renderCmd represents the render command
var renderCmd = NewRenderCmd(coreClient)

func init() {
	cmd.RootCmd.AddCommand(renderCmd)
}
