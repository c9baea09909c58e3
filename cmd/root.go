/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package cmd

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/cristianoliveira/displaygen/internal/colors"
	"github.com/cristianoliveira/displaygen/internal/config"
	"github.com/cristianoliveira/displaygen/internal/errors"
	"github.com/cristianoliveira/displaygen/internal/logging"
	"github.com/cristianoliveira/displaygen/internal/version"
	"github.com/spf13/cobra"
)

var (
	debugFlag  bool
	configFlag string

	shutdownMu    sync.Mutex
	shutdownHooks []func() error
)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   "displaygen",
	Short: "Generate Go String methods from {placeholder} templates.",
	Long: `Generate Go String methods from {placeholder} templates.

Annotate a type or constant with //display:"template" and run
displaygen generate to write its String method.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute runs the root command and returns the process exit code.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() int {
	err := RootCmd.Execute()
	if err != nil {
		colors.StructuredError("cli", "execute", "failed", err, "", nil)
	}
	code := errors.NewDefaultCLIHandler().Report(err)
	runShutdownHooks()
	return code
}

// OnShutdown registers fn to run after the command finishes, in reverse order
// of registration.
func OnShutdown(fn func() error) {
	shutdownMu.Lock()
	defer shutdownMu.Unlock()
	shutdownHooks = append(shutdownHooks, fn)
}

func runShutdownHooks() {
	shutdownMu.Lock()
	hooks := shutdownHooks
	shutdownHooks = nil
	shutdownMu.Unlock()

	for i := len(hooks) - 1; i >= 0; i-- {
		if err := hooks[i](); err != nil {
			colors.Debug(fmt.Sprintf("shutdown: %v", err))
		}
	}
	if err := logging.ShutdownGlobal(); err != nil {
		colors.Debug(fmt.Sprintf("shutdown logger: %v", err))
	}
}

// setup loads configuration and logging before any subcommand runs.
func setup(cmd *cobra.Command, args []string) error {
	if configFlag != "" {
		if err := os.Setenv(config.EnvConfigPath, configFlag); err != nil {
			return fmt.Errorf("set config path: %w", err)
		}
	}
	config.Load()
	if debugFlag {
		config.Set("debug", "true")
	}
	colors.SetDebug(config.GetBool("debug", false))

	if err := logging.InitGlobal(); err != nil {
		colors.Warning(fmt.Sprintf("file logging disabled: %v", err))
	}
	logging.Debug("command started", "command", cmd.CommandPath(), "args", len(args))
	return nil
}

func init() {
	RootCmd.Version = version.String()

	// Hide the completion command
	RootCmd.CompletionOptions.HiddenDefaultCmd = true

	defaultHelp := RootCmd.HelpFunc()
	RootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if cmd.HasParent() {
			defaultHelp(cmd, args)
			return
		}
		printHelpText(cmd)
	})

	RootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Print debug output (same as DISPLAYGEN_DEBUG=1)")
	RootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Config file (default is $XDG_CONFIG_HOME/displaygen/config.toml)")
}

// commandOrder is the order commands are listed in help.
var commandOrder = []string{
	"generate",
	"parse",
	"render",
	"play",
	"history",
	"config",
	"version",
}

func printHelpText(cmd *cobra.Command) {
	var cmdLines []string
	for _, name := range commandOrder {
		var found *cobra.Command
		for _, c := range cmd.Commands() {
			if c.Name() == name {
				found = c
				break
			}
		}
		if found == nil {
			continue
		}
		cmdLines = append(cmdLines, fmt.Sprintf("    %-28s %s", found.Use, found.Short))
	}

	helpText := fmt.Sprintf(`displaygen %s

%s

USAGE:
    displaygen [COMMAND] [OPTIONS]

COMMANDS:
%s

OPTIONS:
    --config FILE   Use FILE instead of the default config
    --debug         Print debug output
    -h, --help      Show help message
`, version.String(), cmd.Short, strings.Join(cmdLines, "\n"))
	fmt.Fprint(cmd.OutOrStdout(), helpText)
}
