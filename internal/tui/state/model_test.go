package state

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/cristianoliveira/displaygen/internal/core"
	"github.com/cristianoliveira/displaygen/internal/interpolate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newModel(t *testing.T, opts Options) *Model {
	t.Helper()
	return NewModel(core.NewCore(nil, core.Options{}), opts)
}

func typeText(m *Model, text string) {
	for _, r := range text {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestNewModelPanicsWithoutClient(t *testing.T) {
	assert.PanicsWithValue(t, "NewModel: client dependency cannot be nil", func() {
		NewModel(nil, Options{})
	})
}

func TestInitialTemplateIsParsed(t *testing.T) {
	m := newModel(t, Options{Template: "Hi {} {name}", Args: "Ana name=Bo"})

	res, ok := m.Result()
	require.True(t, ok)
	assert.Equal(t, "Hi {__0} {name}", res.Rewritten)
	assert.Equal(t, []string{"__0", "name"}, res.Fields)

	out, renderErr := m.Rendered()
	assert.Equal(t, "Hi Ana Bo", out)
	assert.Empty(t, renderErr)
	assert.Contains(t, m.View(), "Hi {__0} {name}")
}

func TestTypingUpdatesReport(t *testing.T) {
	m := newModel(t, Options{})
	typeText(m, "{b}{a}")

	assert.Equal(t, "{b}{a}", m.Template())
	res, ok := m.Result()
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, res.Fields)

	_, renderErr := m.Rendered()
	assert.Contains(t, renderErr, "missing value")
}

func TestTabMovesInputToValues(t *testing.T) {
	m := newModel(t, Options{Template: "{}!"})
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	typeText(m, "hey")

	assert.Equal(t, "{}!", m.Template())
	out, _ := m.Rendered()
	assert.Equal(t, "hey!", out)

	m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	typeText(m, "?")
	assert.Equal(t, "{}!?", m.Template())
}

func TestUnterminatedTemplateShowsError(t *testing.T) {
	m := newModel(t, Options{Template: "tail {x"})

	_, ok := m.Result()
	assert.False(t, ok)
	latest, found := m.status.GetLatest()
	require.True(t, found)
	assert.Contains(t, latest.Text, "unterminated")
	assert.Contains(t, m.View(), "fix the template")

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	res, ok := m.Result()
	require.True(t, ok)
	assert.Equal(t, "tail ", res.Rewritten)
	_, found = m.status.GetLatest()
	assert.False(t, found)
	assert.Contains(t, m.View(), "unterminated: truncate")
}

func TestCtrlOTogglesOrder(t *testing.T) {
	m := newModel(t, Options{Template: "{b} {a}"})
	res, _ := m.Result()
	assert.Equal(t, []string{"a", "b"}, res.Fields)

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlO})
	res, _ = m.Result()
	assert.Equal(t, []string{"b", "a"}, res.Fields)
	assert.Equal(t, interpolate.OrderDiscovered, m.order)

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlO})
	assert.Equal(t, interpolate.OrderSorted, m.order)
}

func TestQuitKeys(t *testing.T) {
	for _, key := range []tea.KeyType{tea.KeyEsc, tea.KeyCtrlC} {
		m := newModel(t, Options{})
		_, cmd := m.Update(tea.KeyMsg{Type: key})
		require.NotNil(t, cmd)
		assert.Equal(t, tea.QuitMsg{}, cmd())
	}
}

func TestWindowResize(t *testing.T) {
	m := newModel(t, Options{Template: "x"})
	m.Update(tea.WindowSizeMsg{Width: 50, Height: 20})

	assert.Equal(t, 50, m.viewport.Width)
	assert.Equal(t, 20-chromeLines, m.viewport.Height)
	for _, line := range strings.Split(m.viewport.View(), "\n") {
		assert.LessOrEqual(t, lipgloss.Width(line), 50)
	}

	m.Update(tea.WindowSizeMsg{Width: 0, Height: 2})
	assert.Equal(t, defaultViewportWidth, m.viewport.Width)
	assert.Equal(t, 1, m.viewport.Height)
}

func TestInitBlinks(t *testing.T) {
	assert.NotNil(t, newModel(t, Options{}).Init())
}

func TestSnapshot(t *testing.T) {
	m := newModel(t, Options{Template: "{}", Args: "a"})
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlO})
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	typeText(m, " b")

	assert.Equal(t, Options{Template: "{}", Args: "a b", Order: interpolate.OrderDiscovered, Truncate: true}, m.Snapshot())
}
