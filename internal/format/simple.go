package format

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/cristianoliveira/displaygen/internal/storage/manifest"
)

// SimpleFormatter prints plain lines suitable for scripts.
type SimpleFormatter struct{}

// NewSimpleFormatter creates a new SimpleFormatter.
func NewSimpleFormatter() *SimpleFormatter {
	return &SimpleFormatter{}
}

// FormatTemplate prints the rewritten template, then the fields space separated.
func (f *SimpleFormatter) FormatTemplate(result TemplateResult, writer io.Writer) error {
	if _, err := fmt.Fprintln(writer, result.Rewritten); err != nil {
		return err
	}
	_, err := fmt.Fprintln(writer, strings.Join(result.Fields, " "))
	return err
}

// FormatRuns prints one run per line.
func (f *SimpleFormatter) FormatRuns(runs []manifest.Run, writer io.Writer) error {
	for _, r := range runs {
		_, err := fmt.Fprintf(writer, "%s  %s  %-7s  %d files  %d variants  %s\n",
			manifest.ShortID(r.ID), r.StartedAt.Local().Format(time.DateTime), r.Status, r.Files, r.Variants, r.Dir)
		if err != nil {
			return err
		}
	}
	return nil
}

// FormatEntries prints one variant per line with its rewritten template.
func (f *SimpleFormatter) FormatEntries(entries []manifest.Entry, writer io.Writer) error {
	for _, e := range entries {
		if _, err := fmt.Fprintf(writer, "%s  %s  %q\n", manifest.ShortID(e.Hash), e.Label(), e.Rewritten); err != nil {
			return err
		}
	}
	return nil
}
