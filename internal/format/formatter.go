// Package format renders parse results and manifest history for the CLI.
package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/cristianoliveira/displaygen/internal/storage/manifest"
)

// Formatter defines the interface for output formatters.
type Formatter interface {
	// FormatTemplate writes a normalized template.
	FormatTemplate(result TemplateResult, writer io.Writer) error
	// FormatRuns writes a list of generation runs.
	FormatRuns(runs []manifest.Run, writer io.Writer) error
	// FormatEntries writes the variants recorded by one run.
	FormatEntries(entries []manifest.Entry, writer io.Writer) error
}

// FormatterType represents the type of formatter to use.
type FormatterType string

const (
	// FormatterTypeSimple prints the rewritten template and one line per detail.
	FormatterTypeSimple FormatterType = "simple"
	// FormatterTypeTable prints aligned columns with headers.
	FormatterTypeTable FormatterType = "table"
	// FormatterTypeJSON prints indented JSON.
	FormatterTypeJSON FormatterType = "json"
	// FormatterTypeYAML prints YAML.
	FormatterTypeYAML FormatterType = "yaml"
)

// FormatterTypes lists every supported type, for flag help.
var FormatterTypes = []FormatterType{FormatterTypeSimple, FormatterTypeTable, FormatterTypeJSON, FormatterTypeYAML}

// ParseFormatterType validates a --format value.
func ParseFormatterType(s string) (FormatterType, error) {
	t := FormatterType(strings.ToLower(strings.TrimSpace(s)))
	if t == "" {
		return FormatterTypeSimple, nil
	}
	for _, known := range FormatterTypes {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown format %q (expected simple, table, json or yaml)", s)
}

// NewFormatter creates a new formatter of the specified type.
func NewFormatter(formatterType FormatterType) Formatter {
	switch formatterType {
	case FormatterTypeTable:
		return NewTableFormatter()
	case FormatterTypeJSON:
		return NewJSONFormatter()
	case FormatterTypeYAML:
		return NewYAMLFormatter()
	default:
		return NewSimpleFormatter()
	}
}
