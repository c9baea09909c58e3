package format

import (
	"encoding/json"
	"io"

	"github.com/cristianoliveira/displaygen/internal/storage/manifest"
	"gopkg.in/yaml.v3"
)

// JSONFormatter prints indented JSON documents.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSONFormatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

func (f *JSONFormatter) encode(v any, writer io.Writer) error {
	enc := json.NewEncoder(writer)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// FormatTemplate formats a parse result as JSON.
func (f *JSONFormatter) FormatTemplate(result TemplateResult, writer io.Writer) error {
	return f.encode(result, writer)
}

// FormatRuns formats runs as a JSON array.
func (f *JSONFormatter) FormatRuns(runs []manifest.Run, writer io.Writer) error {
	if runs == nil {
		runs = []manifest.Run{}
	}
	return f.encode(runs, writer)
}

// FormatEntries formats entries as a JSON array.
func (f *JSONFormatter) FormatEntries(entries []manifest.Entry, writer io.Writer) error {
	if entries == nil {
		entries = []manifest.Entry{}
	}
	return f.encode(entries, writer)
}

// YAMLFormatter prints YAML documents.
type YAMLFormatter struct{}

// NewYAMLFormatter creates a new YAMLFormatter.
func NewYAMLFormatter() *YAMLFormatter {
	return &YAMLFormatter{}
}

func (f *YAMLFormatter) encode(v any, writer io.Writer) error {
	enc := yaml.NewEncoder(writer)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// FormatTemplate formats a parse result as YAML.
func (f *YAMLFormatter) FormatTemplate(result TemplateResult, writer io.Writer) error {
	return f.encode(result, writer)
}

// FormatRuns formats runs as a YAML sequence.
func (f *YAMLFormatter) FormatRuns(runs []manifest.Run, writer io.Writer) error {
	if runs == nil {
		runs = []manifest.Run{}
	}
	return f.encode(runs, writer)
}

// FormatEntries formats entries as a YAML sequence.
func (f *YAMLFormatter) FormatEntries(entries []manifest.Entry, writer io.Writer) error {
	if entries == nil {
		entries = []manifest.Entry{}
	}
	return f.encode(entries, writer)
}
