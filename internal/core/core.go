// Package core ties the normalizer, generator and manifest together behind
// the operations the CLI and the TUI expose.
package core

import (
	"context"
	"fmt"

	"github.com/cristianoliveira/displaygen/internal/config"
	"github.com/cristianoliveira/displaygen/internal/format"
	"github.com/cristianoliveira/displaygen/internal/hooks"
	"github.com/cristianoliveira/displaygen/internal/interpolate"
	"github.com/cristianoliveira/displaygen/internal/logging"
	"github.com/cristianoliveira/displaygen/internal/render"
	"github.com/cristianoliveira/displaygen/internal/storage"
)

// Options holds the settings Core reads from configuration.
type Options struct {
	// Directive is the comment prefix the scanner looks for.
	Directive string
	// OutputSuffix replaces ".go" in the name of generated files.
	OutputSuffix string
	// MethodName is the generated method.
	MethodName string
	// Truncate accepts unterminated placeholders by dropping them.
	Truncate bool
	// FieldOrder orders the field set in parse results.
	FieldOrder interpolate.FieldOrder
	// StateDir holds generation locks. Locking is skipped when empty.
	StateDir string
	// Hooks runs scripts around generation. Nil disables hooks.
	Hooks HookRunner
}

// HookRunner runs the user scripts registered for a hook point.
type HookRunner interface {
	Run(ctx context.Context, point string, env map[string]string) error
}

// OptionsFromConfig reads Options from the loaded configuration.
func OptionsFromConfig() Options {
	order, ok := interpolate.ParseFieldOrder(config.Get("field_order", string(interpolate.OrderSorted)))
	if !ok {
		order = interpolate.OrderSorted
	}
	opts := Options{
		Directive:    config.Get("directive", "display"),
		OutputSuffix: config.Get("output_suffix", "_display.go"),
		MethodName:   config.Get("method_name", "String"),
		Truncate:     config.Get("unterminated", "error") == "truncate",
		FieldOrder:   order,
		StateDir:     config.Get("state_dir", ""),
	}
	if config.GetBool("hooks_enabled", true) {
		opts.Hooks = hooks.NewRunner(hooks.ConfigFromGlobal())
	}
	return opts
}

// Core runs displaygen operations against a manifest store.
type Core struct {
	store storage.Store
	opts  Options
}

// NewCore creates a Core. A nil store disables the manifest.
func NewCore(store storage.Store, opts Options) *Core {
	if store == nil {
		store = storage.NoopStore{}
	}
	if opts.OutputSuffix == "" {
		opts.OutputSuffix = "_display.go"
	}
	if opts.FieldOrder == "" {
		opts.FieldOrder = interpolate.OrderSorted
	}
	return &Core{store: store, opts: opts}
}

// Options returns the options Core was created with.
func (c *Core) Options() Options {
	return c.opts
}

// Close releases the manifest store.
func (c *Core) Close() error {
	return c.store.Close()
}

// ParseRequest describes a template to normalize.
type ParseRequest struct {
	Template string
	// Truncate overrides the configured unterminated policy when true.
	Truncate bool
	// Order overrides the configured field order when set.
	Order interpolate.FieldOrder
}

// Parse normalizes a template and reports its placeholders.
func (c *Core) Parse(req ParseRequest) (format.TemplateResult, error) {
	t, err := interpolate.Parse(req.Template, c.parseOptions(req.Truncate)...)
	if err != nil {
		logging.Debug("parse failed", "error", err)
		return format.TemplateResult{}, err
	}
	order := req.Order
	if order == "" {
		order = c.opts.FieldOrder
	}
	return format.NewTemplateResult(t, order), nil
}

// RenderRequest describes a template to render with command-line values.
type RenderRequest struct {
	Template string
	// Args are positional words or key=value pairs.
	Args     []string
	Truncate bool
}

// Render substitutes Args into Template.
func (c *Core) Render(req RenderRequest) (string, error) {
	values, err := render.ParseArgs(req.Args)
	if err != nil {
		return "", err
	}
	logging.Debug("render", "template", req.Template, "values", logging.RedactValues(values))
	out, err := render.NewTemplateEngine(c.parseOptions(req.Truncate)...).Substitute(req.Template, values)
	if err != nil {
		return "", fmt.Errorf("render: %w", err)
	}
	return out, nil
}

func (c *Core) parseOptions(truncate bool) []interpolate.Option {
	if truncate || c.opts.Truncate {
		return []interpolate.Option{interpolate.WithTruncateUnterminated()}
	}
	return nil
}
