package app

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/cristianoliveira/displaygen/internal/core"
	"github.com/cristianoliveira/displaygen/internal/storage/manifest"
)

// GenerateClient defines dependencies required by the generate command.
type GenerateClient interface {
	Generate(ctx context.Context, req core.GenerateRequest) (core.GenerateReport, error)
}

// GenerateUseCase generates display methods for one or more packages.
type GenerateUseCase struct {
	client GenerateClient
}

// NewGenerateUseCase creates a generate use-case.
func NewGenerateUseCase(client GenerateClient) *GenerateUseCase {
	if client == nil {
		panic("NewGenerateUseCase: client dependency cannot be nil")
	}
	return &GenerateUseCase{client: client}
}

// GenerateInput holds parsed generate options.
type GenerateInput struct {
	Dirs       []string
	MethodName string
	DryRun     bool
	// Stdout prints generated code instead of a summary. Implies DryRun.
	Stdout  bool
	Verbose bool
	Output  io.Writer
}

// Execute generates every directory in turn and stops at the first failure.
func (u *GenerateUseCase) Execute(ctx context.Context, input GenerateInput) error {
	dirs := input.Dirs
	if len(dirs) == 0 {
		dirs = []string{"."}
	}
	for _, dir := range dirs {
		report, err := u.client.Generate(ctx, core.GenerateRequest{
			Dir:        dir,
			MethodName: input.MethodName,
			DryRun:     input.DryRun || input.Stdout,
		})
		if err != nil {
			return err
		}
		if input.Stdout {
			for _, f := range report.Files {
				if _, err := input.Output.Write(f.Data); err != nil {
					return err
				}
			}
			continue
		}
		printGenerateReport(input.Output, dir, report, input.DryRun, input.Verbose)
	}
	return nil
}

func printGenerateReport(w io.Writer, dir string, report core.GenerateReport, dryRun, verbose bool) {
	if len(report.Files) == 0 {
		_, _ = fmt.Fprintf(w, "%s: no directives found\n", dir)
	}
	for _, f := range report.Files {
		action := "unchanged"
		switch {
		case dryRun:
			action = "would write"
		case f.Written:
			action = "wrote"
		}
		unchanged := 0
		for _, v := range f.Variants {
			if v.Unchanged {
				unchanged++
			}
		}
		_, _ = fmt.Fprintf(w, "%s %s (%s, %d unchanged)\n", action, displayPath(dir, f.Path), plural(len(f.Variants), "variant"), unchanged)
		if !verbose {
			continue
		}
		for _, v := range f.Variants {
			_, _ = fmt.Fprintf(w, "  %s %q [%s]\n", v.Label, v.Rewritten, strings.Join(v.Fields, " "))
		}
	}
	for _, path := range report.Removed {
		_, _ = fmt.Fprintf(w, "removed %s\n", displayPath(dir, path))
	}
	if report.Run.ID != "" {
		_, _ = fmt.Fprintf(w, "run %s: %s, %s, %d unchanged\n",
			manifest.ShortID(report.Run.ID), plural(len(report.Files), "file"), plural(report.VariantCount(), "variant"), report.Unchanged())
	}
}

// displayPath shows path relative to the directory the user named.
func displayPath(dir, path string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(abs, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return filepath.Join(dir, rel)
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
