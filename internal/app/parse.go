// Package app holds the use-cases behind each command. Commands parse flags
// and hand an Input to a use-case; use-cases own output and validation.
package app

import (
	"fmt"
	"io"

	"github.com/cristianoliveira/displaygen/internal/core"
	"github.com/cristianoliveira/displaygen/internal/format"
	"github.com/cristianoliveira/displaygen/internal/interpolate"
)

// ParseClient defines dependencies required by the parse command.
type ParseClient interface {
	Parse(req core.ParseRequest) (format.TemplateResult, error)
}

// ParseUseCase normalizes a template and prints the result.
type ParseUseCase struct {
	client ParseClient
}

// NewParseUseCase creates a parse use-case.
func NewParseUseCase(client ParseClient) *ParseUseCase {
	if client == nil {
		panic("NewParseUseCase: client dependency cannot be nil")
	}
	return &ParseUseCase{client: client}
}

// ParseInput holds parsed parse options.
type ParseInput struct {
	Template string
	Order    string
	Truncate bool
	Format   string
	Output   io.Writer
}

// Execute parses the template and writes it in the requested format.
func (u *ParseUseCase) Execute(input ParseInput) error {
	formatter, err := resolveFormatter(input.Format)
	if err != nil {
		return err
	}
	var order interpolate.FieldOrder
	if input.Order != "" {
		var ok bool
		if order, ok = interpolate.ParseFieldOrder(input.Order); !ok {
			return fmt.Errorf("invalid order %q: must be sorted or discovered", input.Order)
		}
	}

	result, err := u.client.Parse(core.ParseRequest{
		Template: input.Template,
		Truncate: input.Truncate,
		Order:    order,
	})
	if err != nil {
		return err
	}
	return formatter.FormatTemplate(result, input.Output)
}

func resolveFormatter(name string) (format.Formatter, error) {
	ft, err := format.ParseFormatterType(name)
	if err != nil {
		return nil, err
	}
	return format.NewFormatter(ft), nil
}
