package format

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/cristianoliveira/displaygen/internal/colors"
	"github.com/cristianoliveira/displaygen/internal/storage/manifest"
	"github.com/mattn/go-runewidth"
)

// TableConfig holds configuration for table formatting.
type TableConfig struct {
	// ShowHeaders determines whether to show column headers.
	ShowHeaders bool
	// HeaderStyle styles the header and separator rows.
	HeaderStyle lipgloss.Style
	// MaxColumnWidth caps every column; longer cells are truncated with an ellipsis.
	MaxColumnWidth int
	// Gap separates columns.
	Gap string
}

// DefaultTableConfig returns a default table configuration.
func DefaultTableConfig() *TableConfig {
	return &TableConfig{
		ShowHeaders:    true,
		HeaderStyle:    lipgloss.NewStyle().Foreground(colors.Blue).Bold(true),
		MaxColumnWidth: 48,
		Gap:            "  ",
	}
}

// TableColumn represents a column in a table.
type TableColumn struct {
	// Name is the column name displayed in the header.
	Name string
	// Alignment is "left" or "right".
	Alignment string
}

// TableFormatter formats results as aligned columns. Widths are measured in
// terminal cells so wide runes in templates do not break alignment.
type TableFormatter struct {
	config *TableConfig
}

// NewTableFormatter creates a new TableFormatter with the default configuration.
func NewTableFormatter() *TableFormatter {
	return &TableFormatter{config: DefaultTableConfig()}
}

// WithConfig replaces the table configuration.
func (f *TableFormatter) WithConfig(config *TableConfig) *TableFormatter {
	f.config = config
	return f
}

// FormatTemplate prints the rewritten template followed by one row per placeholder.
func (f *TableFormatter) FormatTemplate(result TemplateResult, writer io.Writer) error {
	if _, err := fmt.Fprintf(writer, "%s\n\n", result.Rewritten); err != nil {
		return err
	}
	columns := []TableColumn{{Name: "#", Alignment: "right"}, {Name: "OFFSET", Alignment: "right"}, {Name: "FIELD"}, {Name: "SPEC"}, {Name: "TOKEN"}}
	rows := make([][]string, 0, len(result.Placeholders))
	for i, p := range result.Placeholders {
		rows = append(rows, []string{strconv.Itoa(i), strconv.Itoa(p.Offset), p.Ident, p.Spec, p.Token})
	}
	return f.writeTable(columns, rows, writer)
}

// FormatRuns prints one row per run.
func (f *TableFormatter) FormatRuns(runs []manifest.Run, writer io.Writer) error {
	columns := []TableColumn{{Name: "ID"}, {Name: "STARTED"}, {Name: "STATUS"}, {Name: "FILES", Alignment: "right"}, {Name: "VARIANTS", Alignment: "right"}, {Name: "DIR"}}
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, []string{
			manifest.ShortID(r.ID),
			r.StartedAt.Local().Format(time.DateTime),
			string(r.Status),
			strconv.Itoa(r.Files),
			strconv.Itoa(r.Variants),
			r.Dir,
		})
	}
	return f.writeTable(columns, rows, writer)
}

// FormatEntries prints one row per recorded variant.
func (f *TableFormatter) FormatEntries(entries []manifest.Entry, writer io.Writer) error {
	columns := []TableColumn{{Name: "VARIANT"}, {Name: "FIELDS"}, {Name: "HASH"}, {Name: "TEMPLATE"}}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{e.Label(), strings.Join(e.Fields, ","), manifest.ShortID(e.Hash), e.Rewritten})
	}
	return f.writeTable(columns, rows, writer)
}

// FormatRows prints arbitrary rows under the given headers, all left aligned.
func (f *TableFormatter) FormatRows(headers []string, rows [][]string, writer io.Writer) error {
	columns := make([]TableColumn, len(headers))
	for i, h := range headers {
		columns[i] = TableColumn{Name: h}
	}
	return f.writeTable(columns, rows, writer)
}

func (f *TableFormatter) writeTable(columns []TableColumn, rows [][]string, writer io.Writer) error {
	if len(rows) == 0 {
		return nil
	}
	widths := make([]int, len(columns))
	if f.config.ShowHeaders {
		for i, col := range columns {
			widths[i] = runewidth.StringWidth(col.Name)
		}
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], min(runewidth.StringWidth(cell), f.config.MaxColumnWidth))
		}
	}

	if f.config.ShowHeaders {
		header := make([]string, len(columns))
		sep := make([]string, len(columns))
		for i, col := range columns {
			header[i] = formatCell(col.Name, widths[i], "left")
			sep[i] = makeSeparator(widths[i])
		}
		if err := f.writeLine(writer, header, true); err != nil {
			return err
		}
		if err := f.writeLine(writer, sep, true); err != nil {
			return err
		}
	}
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = formatCell(cell, widths[i], columns[i].Alignment)
		}
		if err := f.writeLine(writer, cells, false); err != nil {
			return err
		}
	}
	return nil
}

func (f *TableFormatter) writeLine(writer io.Writer, cells []string, styled bool) error {
	line := strings.TrimRight(strings.Join(cells, f.config.Gap), " ")
	if styled {
		line = f.config.HeaderStyle.Render(line)
	}
	_, err := fmt.Fprintln(writer, line)
	return err
}

// formatCell truncates s to width cells and pads it to the requested alignment.
func formatCell(s string, width int, alignment string) string {
	if runewidth.StringWidth(s) > width {
		s = runewidth.Truncate(s, width, "…")
	}
	if alignment == "right" {
		return runewidth.FillLeft(s, width)
	}
	return runewidth.FillRight(s, width)
}

// makeSeparator creates a separator line of the specified width.
func makeSeparator(width int) string {
	return strings.Repeat("-", width)
}
