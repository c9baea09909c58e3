// Package errors routes command errors to the console and maps them to exit codes.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"sync"

	"github.com/cristianoliveira/displaygen/internal/codegen"
	"github.com/cristianoliveira/displaygen/internal/fmtspec"
	"github.com/cristianoliveira/displaygen/internal/interpolate"
	"github.com/cristianoliveira/displaygen/internal/render"
	"github.com/cristianoliveira/displaygen/internal/scan"
	"github.com/cristianoliveira/displaygen/internal/variant"
	"github.com/mattn/go-runewidth"
)

// Exit codes returned by the CLI.
const (
	ExitOK       = 0
	ExitFailure  = 1
	ExitTemplate = 2
)

// ErrorHandler is the interface for error handling.
// Different implementations can handle errors differently based on context.
type ErrorHandler interface {
	Error(msg string)
	Warning(msg string)
	Info(msg string)
	Success(msg string)
}

// CLIHandler handles errors by printing to stdout/stderr using the colors package.
type CLIHandler struct {
	colors     ColorOutput
	mu         sync.Mutex
	inHandling bool
}

type ColorOutput interface {
	Error(msgs ...string)
	Warning(msgs ...string)
	Info(msgs ...string)
	Success(msgs ...string)
}

func NewCLIHandler(colors ColorOutput) *CLIHandler {
	return &CLIHandler{colors: colors}
}

func (h *CLIHandler) Error(msg string) {
	h.mu.Lock()
	if h.inHandling {
		h.mu.Unlock()
		h.colors.Error(msg)
		return
	}
	h.inHandling = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		h.inHandling = false
		h.mu.Unlock()
	}()

	h.colors.Error(msg)
}

func (h *CLIHandler) Warning(msg string) {
	h.colors.Warning(msg)
}

func (h *CLIHandler) Info(msg string) {
	h.colors.Info(msg)
}

func (h *CLIHandler) Success(msg string) {
	h.colors.Success(msg)
}

// Report prints err with Describe and returns its exit code.
func (h *CLIHandler) Report(err error) int {
	if err == nil {
		return ExitOK
	}
	h.Error(Describe(err))
	return ExitCode(err)
}

var templateErrors = []error{
	interpolate.ErrUnterminatedPlaceholder,
	interpolate.ErrPositionalOverflow,
	fmtspec.ErrUnsupportedSpec,
	variant.ErrUnboundField,
	render.ErrMissingValue,
	scan.ErrBadDirective,
	scan.ErrUnsupportedDecl,
	codegen.ErrMixedShape,
	codegen.ErrDuplicateVariant,
}

// ExitCode maps err to a process exit code. Errors caused by a template or
// directive the user wrote get ExitTemplate so scripts can tell them apart
// from I/O failures.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	for _, target := range templateErrors {
		if stderrors.Is(err, target) {
			return ExitTemplate
		}
	}
	return ExitFailure
}

// Describe renders err for the console. Template parse errors get a second
// line pointing at the offending offset.
func Describe(err error) string {
	var pe *interpolate.ParseError
	if !stderrors.As(err, &pe) || pe.Template == "" || strings.ContainsAny(pe.Template, "\n\t") {
		return err.Error()
	}
	return fmt.Sprintf("%v\n  %s\n  %s^", err, pe.Template, strings.Repeat(" ", runewidth.StringWidth(pe.Template[:pe.Offset])))
}
