package render

import (
	"regexp"
	"strings"
	"testing"

	"github.com/cristianoliveira/displaygen/internal/errors"
	"github.com/cristianoliveira/displaygen/internal/format"
	"github.com/cristianoliveira/displaygen/internal/interpolate"
	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
)

var ansi = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func plain(s string) string {
	return ansi.ReplaceAllString(s, "")
}

func TestHeader(t *testing.T) {
	got := plain(Header(HeaderState{Order: interpolate.OrderSorted}))
	assert.Equal(t, "displaygen play  order: sorted  unterminated: error", got)

	got = plain(Header(HeaderState{Order: interpolate.OrderDiscovered, Truncate: true}))
	assert.Contains(t, got, "order: discovered  unterminated: truncate")
}

func TestBody(t *testing.T) {
	got := plain(Body(BodyState{
		Valid: true,
		Result: format.TemplateResult{
			Rewritten: "{b} {__0}",
			Fields:    []string{"__0", "b"},
			Placeholders: []format.Placeholder{
				{Offset: 0, Ident: "b", Token: "{b}"},
				{Offset: 4, Ident: "__0", Token: "{__0}"},
			},
		},
		Rendered: "x y",
		Width:    40,
	}))

	lines := strings.Split(got, "\n")
	assert.Equal(t, []string{
		"rewritten  {b} {__0}",
		"fields     __0 b",
		"output     x y",
		"",
		"offset     placeholder",
		"     @0    {b}",
		"     @4    {__0}",
	}, trimAll(lines))
}

func TestBodyEmptyFieldsAndRenderError(t *testing.T) {
	got := plain(Body(BodyState{
		Valid:     true,
		Result:    format.TemplateResult{Rewritten: "plain"},
		RenderErr: "missing value: __0",
	}))
	assert.Equal(t, []string{
		"rewritten  plain",
		"fields     none",
		"output     missing value: __0",
	}, trimAll(strings.Split(got, "\n")))
}

func TestBodyInvalid(t *testing.T) {
	assert.Equal(t, "fix the template to see its fields", plain(Body(BodyState{})))
}

func TestBodyTruncatesToWidth(t *testing.T) {
	long := strings.Repeat("界", 30)
	got := plain(Body(BodyState{Valid: true, Result: format.TemplateResult{Rewritten: long}, Width: 31}))
	first := strings.Split(got, "\n")[0]
	assert.LessOrEqual(t, runewidth.StringWidth(first), 31)
	assert.True(t, strings.HasSuffix(first, "…"))
}

func TestStatus(t *testing.T) {
	assert.Empty(t, Status(errors.Message{}, false))
	assert.Empty(t, Status(errors.Message{Text: ""}, true))
	assert.Equal(t, "bad {", plain(Status(errors.Message{Text: "bad {", Type: errors.MessageTypeError}, true)))
	assert.Equal(t, "hi", plain(Status(errors.Message{Text: "hi", Type: errors.MessageType(42)}, true)))
}

func TestFooter(t *testing.T) {
	got := plain(Footer())
	assert.Contains(t, got, "tab: switch field")
	assert.Contains(t, got, "esc: quit")
}

func trimAll(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = strings.TrimRight(l, " ")
	}
	return out
}
