// Package render draws the sections of the interactive template preview.
// Every function is pure: it takes plain state and returns a string.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/cristianoliveira/displaygen/internal/colors"
	"github.com/cristianoliveira/displaygen/internal/errors"
	"github.com/cristianoliveira/displaygen/internal/format"
	"github.com/cristianoliveira/displaygen/internal/interpolate"
	"github.com/mattn/go-runewidth"
)

const (
	defaultWidth = 80
	labelWidth   = 11
	offsetWidth  = 6
	ellipsis     = "…"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(colors.Cyan)
	badgeStyle = lipgloss.NewStyle().Foreground(colors.Gray)
	labelStyle = lipgloss.NewStyle().Foreground(colors.Blue).Width(labelWidth)
	emptyStyle = lipgloss.NewStyle().Foreground(colors.Gray).Italic(true)
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	statusStyles = map[errors.MessageType]lipgloss.Style{
		errors.MessageTypeError:   lipgloss.NewStyle().Foreground(colors.Red),
		errors.MessageTypeWarning: lipgloss.NewStyle().Foreground(colors.Yellow),
		errors.MessageTypeInfo:    lipgloss.NewStyle().Foreground(colors.Blue),
		errors.MessageTypeSuccess: lipgloss.NewStyle().Foreground(colors.Green),
	}
)

// HeaderState defines the inputs needed to render the title line.
type HeaderState struct {
	Order    interpolate.FieldOrder
	Truncate bool
}

// Header renders the title and the active parse modes.
func Header(state HeaderState) string {
	mode := "error"
	if state.Truncate {
		mode = "truncate"
	}
	badges := fmt.Sprintf("order: %s  unterminated: %s", state.Order, mode)
	return titleStyle.Render("displaygen play") + "  " + badgeStyle.Render(badges)
}

// BodyState defines the inputs needed to render the parse report.
type BodyState struct {
	Result format.TemplateResult
	// Valid is false when the template failed to parse.
	Valid    bool
	Rendered string
	// RenderErr explains why Rendered is empty.
	RenderErr string
	Width     int
}

// Body renders the rewritten template, its fields, the rendered output and
// each placeholder with its byte offset.
func Body(state BodyState) string {
	if !state.Valid {
		return emptyStyle.Render("fix the template to see its fields")
	}
	width := state.Width
	if width <= 0 {
		width = defaultWidth
	}
	valueWidth := max(width-labelWidth, 1)

	var b strings.Builder
	line := func(label, value string, style *lipgloss.Style) {
		b.WriteString(labelStyle.Render(label))
		value = fit(value, valueWidth)
		if style != nil {
			value = style.Render(value)
		}
		b.WriteString(value)
		b.WriteString("\n")
	}

	line("rewritten", state.Result.Rewritten, nil)
	if len(state.Result.Fields) == 0 {
		line("fields", "none", &emptyStyle)
	} else {
		line("fields", strings.Join(state.Result.Fields, " "), nil)
	}
	if state.RenderErr != "" {
		line("output", state.RenderErr, &emptyStyle)
	} else {
		line("output", state.Rendered, nil)
	}

	if len(state.Result.Placeholders) > 0 {
		b.WriteString("\n")
		line("offset", "placeholder", nil)
		indent := strings.Repeat(" ", labelWidth-offsetWidth)
		for _, p := range state.Result.Placeholders {
			b.WriteString(indent)
			b.WriteString(runewidth.FillRight(fmt.Sprintf("@%d", p.Offset), offsetWidth))
			b.WriteString(fit(p.Token, valueWidth))
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// Status renders the latest status message, or nothing.
func Status(msg errors.Message, ok bool) string {
	if !ok || msg.Text == "" {
		return ""
	}
	style, found := statusStyles[msg.Type]
	if !found {
		style = lipgloss.NewStyle()
	}
	return style.Render(msg.Text)
}

// Footer renders key help.
func Footer() string {
	help := []string{
		"tab: switch field",
		"ctrl+o: order",
		"ctrl+t: unterminated",
		"pgup/pgdn: scroll",
		"esc: quit",
	}
	return helpStyle.Render(strings.Join(help, "  |  "))
}

// fit truncates s to width display columns.
func fit(s string, width int) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, ellipsis)
}
