// Package state holds the bubbletea model of the interactive template preview.
package state

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/cristianoliveira/displaygen/internal/colors"
	"github.com/cristianoliveira/displaygen/internal/core"
	"github.com/cristianoliveira/displaygen/internal/errors"
	"github.com/cristianoliveira/displaygen/internal/format"
	"github.com/cristianoliveira/displaygen/internal/interpolate"
	"github.com/cristianoliveira/displaygen/internal/tui/render"
)

const (
	defaultViewportWidth  = 80
	defaultViewportHeight = 16
	// header, two inputs, blank line, status and footer.
	chromeLines = 6
	charLimit   = 1024
)

// Client defines the operations the preview needs.
type Client interface {
	Parse(req core.ParseRequest) (format.TemplateResult, error)
	Render(req core.RenderRequest) (string, error)
}

type focusField int

const (
	focusTemplate focusField = iota
	focusArgs
)

// Model is the preview: a template input, an argument input, and a report
// refreshed on every keystroke.
type Model struct {
	client Client

	template textinput.Model
	args     textinput.Model
	focus    focusField
	viewport viewport.Model
	status   *errors.TUIHandler

	order    interpolate.FieldOrder
	truncate bool
	width    int

	result    format.TemplateResult
	valid     bool
	rendered  string
	renderErr string
}

// Options seeds the preview.
type Options struct {
	Template string
	Args     string
	Order    interpolate.FieldOrder
	Truncate bool
}

// NewModel creates the preview model with the template input focused.
func NewModel(client Client, opts Options) *Model {
	if client == nil {
		panic("NewModel: client dependency cannot be nil")
	}
	if opts.Order == "" {
		opts.Order = interpolate.OrderSorted
	}

	tpl := textinput.New()
	tpl.Prompt = "template> "
	tpl.Placeholder = "Hello, {}! I'm {name:>8}"
	tpl.CharLimit = charLimit
	tpl.PromptStyle = lipgloss.NewStyle().Foreground(colors.Cyan).Bold(true)
	tpl.SetValue(opts.Template)

	args := textinput.New()
	args.Prompt = "values>   "
	args.Placeholder = "world name=Ana"
	args.CharLimit = charLimit
	args.PromptStyle = lipgloss.NewStyle().Foreground(colors.Gray)
	args.SetValue(opts.Args)

	m := &Model{
		client:   client,
		template: tpl,
		args:     args,
		viewport: viewport.New(defaultViewportWidth, defaultViewportHeight),
		status:   errors.NewTUIHandler(nil),
		order:    opts.Order,
		truncate: opts.Truncate,
		width:    defaultViewportWidth,
	}
	m.template.Focus()
	m.refresh()
	return m
}

// Init starts the cursor blink.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key and resize messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "ctrl+c":
			return m, tea.Quit
		case "tab", "shift+tab":
			m.toggleFocus()
			return m, textinput.Blink
		case "ctrl+o":
			if m.order == interpolate.OrderSorted {
				m.order = interpolate.OrderDiscovered
			} else {
				m.order = interpolate.OrderSorted
			}
			m.refresh()
			return m, nil
		case "ctrl+t":
			m.truncate = !m.truncate
			m.refresh()
			return m, nil
		case "pgup", "pgdown":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	if m.focus == focusTemplate {
		m.template, cmd = m.template.Update(msg)
	} else {
		m.args, cmd = m.args.Update(msg)
	}
	m.refresh()
	return m, cmd
}

// View renders the whole screen.
func (m *Model) View() string {
	latest, ok := m.status.GetLatest()
	sections := []string{
		render.Header(render.HeaderState{Order: m.order, Truncate: m.truncate}),
		m.template.View(),
		m.args.View(),
		"",
		m.viewport.View(),
		render.Status(latest, ok),
		render.Footer(),
	}
	return strings.Join(sections, "\n")
}

// Template returns the current template text.
func (m *Model) Template() string {
	return m.template.Value()
}

// Result returns the last successful parse and whether the template is valid.
func (m *Model) Result() (format.TemplateResult, bool) {
	return m.result, m.valid
}

// Rendered returns the rendered output, or the reason rendering failed.
func (m *Model) Rendered() (string, string) {
	return m.rendered, m.renderErr
}

// Snapshot returns the inputs and toggles as Options, ready to seed a new
// model.
func (m *Model) Snapshot() Options {
	return Options{
		Template: m.template.Value(),
		Args:     m.args.Value(),
		Order:    m.order,
		Truncate: m.truncate,
	}
}

func (m *Model) toggleFocus() {
	if m.focus == focusTemplate {
		m.focus = focusArgs
		m.template.Blur()
		m.args.Focus()
		return
	}
	m.focus = focusTemplate
	m.args.Blur()
	m.template.Focus()
}

func (m *Model) resize(width, height int) {
	if width <= 0 {
		width = defaultViewportWidth
	}
	m.width = width
	m.viewport.Width = width
	m.viewport.Height = max(height-chromeLines, 1)
	m.template.Width = max(width-lipgloss.Width(m.template.Prompt)-1, 1)
	m.args.Width = max(width-lipgloss.Width(m.args.Prompt)-1, 1)
	m.refresh()
}

// refresh re-parses and re-renders the inputs, then updates the report and
// the status line.
func (m *Model) refresh() {
	template := m.template.Value()
	res, err := m.client.Parse(core.ParseRequest{Template: template, Truncate: m.truncate, Order: m.order})
	if err != nil {
		m.valid = false
		m.rendered, m.renderErr = "", ""
		m.status.Report(err)
		m.updateViewport()
		return
	}
	m.result, m.valid = res, true

	out, err := m.client.Render(core.RenderRequest{
		Template: template,
		Args:     strings.Fields(m.args.Value()),
		Truncate: m.truncate,
	})
	if err != nil {
		m.rendered, m.renderErr = "", err.Error()
	} else {
		m.rendered, m.renderErr = out, ""
	}
	m.status.Clear()
	m.updateViewport()
}

func (m *Model) updateViewport() {
	m.viewport.SetContent(render.Body(render.BodyState{
		Result:    m.result,
		Valid:     m.valid,
		Rendered:  m.rendered,
		RenderErr: m.renderErr,
		Width:     m.width,
	}))
}

// Run starts the preview on the terminal and blocks until it quits. It
// returns the state the preview was left in.
func Run(client Client, opts Options, programOpts ...tea.ProgramOption) (Options, error) {
	colors.DisableStructuredLogging()
	defer colors.EnableStructuredLogging()

	m := NewModel(client, opts)
	programOpts = append([]tea.ProgramOption{tea.WithAltScreen()}, programOpts...)
	if _, err := tea.NewProgram(m, programOpts...).Run(); err != nil {
		return opts, err
	}
	return m.Snapshot(), nil
}
