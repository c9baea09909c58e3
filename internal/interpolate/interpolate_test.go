package interpolate

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name      string
		template  string
		rewritten string
		fields    []string
	}{
		{
			name:      "empty template",
			template:  "",
			rewritten: "",
			fields:    []string{},
		},
		{
			name:      "no placeholders",
			template:  "Just a regular string",
			rewritten: "Just a regular string",
			fields:    []string{},
		},
		{
			name:      "single named",
			template:  "Hello, {name}!",
			rewritten: "Hello, {name}!",
			fields:    []string{"name"},
		},
		{
			name:      "multiple named",
			template:  "Hello, {name}! You are {age} years old.",
			rewritten: "Hello, {name}! You are {age} years old.",
			fields:    []string{"age", "name"},
		},
		{
			name:      "explicit positional",
			template:  "Hello, {0}! {1}",
			rewritten: "Hello, {__0}! {__1}",
			fields:    []string{"__0", "__1"},
		},
		{
			name:      "implicit positional",
			template:  "{} {} {}",
			rewritten: "{__0} {__1} {__2}",
			fields:    []string{"__0", "__1", "__2"},
		},
		{
			name:      "explicit references do not advance the counter",
			template:  "{} {1} {0} {}",
			rewritten: "{__0} {__1} {__0} {__1}",
			fields:    []string{"__0", "__1"},
		},
		{
			name:      "mixed named and positional",
			template:  "Hi {}! I'm {name}, {} yrs",
			rewritten: "Hi {__0}! I'm {name}, {__1} yrs",
			fields:    []string{"__0", "__1", "name"},
		},
		{
			name:      "debug specifier",
			template:  "Debug: {value:?}",
			rewritten: "Debug: {value:?}",
			fields:    []string{"value"},
		},
		{
			name:      "repeated name with different specifiers",
			template:  "Number: {num:04x} {num:#x}",
			rewritten: "Number: {num:04x} {num:#x}",
			fields:    []string{"num"},
		},
		{
			name:      "only placeholders",
			template:  "{}{name}{0}",
			rewritten: "{__0}{name}{__0}",
			fields:    []string{"__0", "name"},
		},
		{
			name:      "escaped braces",
			template:  "{{escaped}} {{braces}} {name}",
			rewritten: "{{escaped}} {{braces}} {name}",
			fields:    []string{"name"},
		},
		{
			name:      "specifier on auto index",
			template:  "User {name}: {age} years, {height:.2}m, ID: {:08x}",
			rewritten: "User {name}: {age} years, {height:.2}m, ID: {__0:08x}",
			fields:    []string{"__0", "age", "height", "name"},
		},
		{
			name:      "specifier keeps later colons",
			template:  "{when:%H:%M}",
			rewritten: "{when:%H:%M}",
			fields:    []string{"when"},
		},
		{
			name:      "empty specifier is dropped",
			template:  "{:} {x:}",
			rewritten: "{__0} {x}",
			fields:    []string{"__0", "x"},
		},
		{
			name:      "multibyte text passes through",
			template:  "héllo {wörld} ✓",
			rewritten: "héllo {wörld} ✓",
			fields:    []string{"wörld"},
		},
		{
			name:      "leading zeros collapse to the index",
			template:  "{007} {7}",
			rewritten: "{__7} {__7}",
			fields:    []string{"__7"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rewritten, fields, err := Normalize(tt.template)
			require.NoError(t, err)
			assert.Equal(t, tt.rewritten, rewritten)
			assert.Equal(t, tt.fields, fields)
		})
	}
}

func TestNormalizeBraceFreeTextIsUnchanged(t *testing.T) {
	inputs := []string{
		"plain",
		"  spaces  and\ttabs\n",
		"colons: are: fine",
		"closing only }",
		"ünïcödé",
	}
	for _, in := range inputs {
		rewritten, fields, err := Normalize(in)
		require.NoError(t, err, in)
		assert.Equal(t, in, rewritten)
		assert.Empty(t, fields)
	}
}

func TestNormalizeEscapesOnly(t *testing.T) {
	inputs := []string{"{{", "}}", "{{}}", "{{{{ }} {{", "a {{b}} c"}
	for _, in := range inputs {
		rewritten, fields, err := Normalize(in)
		require.NoError(t, err, in)
		assert.Equal(t, in, rewritten)
		assert.Empty(t, fields)
	}
}

func TestCanonicalNamesAreFixedPoints(t *testing.T) {
	first, err := Parse("{} and {} then {1} {label}")
	require.NoError(t, err)

	second, err := Parse(first.Rewritten)
	require.NoError(t, err)

	assert.Equal(t, first.Rewritten, second.Rewritten)
	assert.Equal(t, first.Fields, second.Fields)
}

func TestExplicitAndAutoIndexConverge(t *testing.T) {
	tpl, err := Parse("{} {0}")
	require.NoError(t, err)

	assert.Equal(t, "{__0} {__0}", tpl.Rewritten)
	assert.Equal(t, []string{"__0"}, tpl.Fields)
	assert.Len(t, tpl.Placeholders(), 2)
}

func TestParseSegments(t *testing.T) {
	tpl, err := Parse("a {{ {x:>4} b {}")
	require.NoError(t, err)

	want := []Segment{
		{Kind: SegmentLiteral, Text: "a {{ ", Offset: 0},
		{Kind: SegmentPlaceholder, Ident: "x", Spec: ">4", HasSpec: true, Offset: 5},
		{Kind: SegmentLiteral, Text: " b ", Offset: 11},
		{Kind: SegmentPlaceholder, Ident: "__0", Offset: 14},
	}
	if diff := cmp.Diff(want, tpl.Segments); diff != "" {
		t.Errorf("Parse() segments mismatch (-want +got):\n%s", diff)
	}

	var rebuilt strings.Builder
	for _, seg := range tpl.Segments {
		rebuilt.WriteString(seg.Token())
	}
	assert.Equal(t, tpl.Rewritten, rebuilt.String())
}

func TestFieldOrder(t *testing.T) {
	tpl, err := Parse("{zeta} {} {alpha} {zeta}")
	require.NoError(t, err)

	assert.Equal(t, []string{"__0", "alpha", "zeta"}, tpl.FieldsIn(OrderSorted))
	assert.Equal(t, []string{"zeta", "__0", "alpha"}, tpl.FieldsIn(OrderDiscovered))
	assert.True(t, tpl.Has("alpha"))
	assert.False(t, tpl.Has("beta"))
}

func TestParseFieldOrder(t *testing.T) {
	order, ok := ParseFieldOrder("Discovered")
	require.True(t, ok)
	assert.Equal(t, OrderDiscovered, order)

	order, ok = ParseFieldOrder("")
	require.True(t, ok)
	assert.Equal(t, OrderSorted, order)

	_, ok = ParseFieldOrder("random")
	assert.False(t, ok)
}

func TestUnterminatedPlaceholder(t *testing.T) {
	tests := []struct {
		name     string
		template string
		offset   int
	}{
		{name: "bare brace at end", template: "abc {", offset: 4},
		{name: "identifier without close", template: "abc {name", offset: 4},
		{name: "specifier without close", template: "{a} {b:?", offset: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.template)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrUnterminatedPlaceholder))

			var perr *ParseError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, tt.offset, perr.Offset)
			assert.Equal(t, tt.template[tt.offset:], perr.Fragment)
		})
	}
}

func TestTruncateUnterminated(t *testing.T) {
	tpl, err := Parse("abc {x} {name:?", WithTruncateUnterminated())
	require.NoError(t, err)

	assert.Equal(t, "abc {x} ", tpl.Rewritten)
	assert.Equal(t, []string{"x"}, tpl.Fields)

	tpl, err = Parse("{", WithTruncateUnterminated())
	require.NoError(t, err)
	assert.Equal(t, "", tpl.Rewritten)
	assert.Empty(t, tpl.Fields)
}

func TestPositionalOverflow(t *testing.T) {
	tpl, err := Parse("{255}")
	require.NoError(t, err)
	assert.Equal(t, "{__255}", tpl.Rewritten)

	_, err = Parse("x {256:?} y")
	require.ErrorIs(t, err, ErrPositionalOverflow)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 2, perr.Offset)
	assert.Equal(t, "{256:?}", perr.Fragment)

	_, err = Parse("{99999999999999999999999}")
	require.ErrorIs(t, err, ErrPositionalOverflow)
}

func TestAutoIndexOverflow(t *testing.T) {
	_, err := Parse(strings.Repeat("{}", MaxPositional+1))
	require.NoError(t, err)

	_, err = Parse(strings.Repeat("{}", MaxPositional+2))
	require.ErrorIs(t, err, ErrPositionalOverflow)
}

func TestCanonicalIdent(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{raw: "0", want: "__0"},
		{raw: "12", want: "__12"},
		{raw: "name", want: "name"},
		{raw: "+1", want: "+1"},
		{raw: "1a", want: "1a"},
		{raw: "__3", want: "__3"},
	}
	for _, tt := range tests {
		got, err := CanonicalIdent(tt.raw)
		require.NoError(t, err, tt.raw)
		assert.Equal(t, tt.want, got, tt.raw)
	}
}

func TestPositionalIndex(t *testing.T) {
	n, ok := PositionalIndex("__12")
	require.True(t, ok)
	assert.Equal(t, 12, n)

	for _, ident := range []string{"name", "__", "__x", "_1", "__256"} {
		_, ok := PositionalIndex(ident)
		assert.False(t, ok, ident)
	}
}

func TestParseIsSafeForConcurrentUse(t *testing.T) {
	done := make(chan []string)
	for i := 0; i < 8; i++ {
		go func() {
			tpl, err := Parse("{} {name} {} {1}")
			if err != nil {
				done <- nil
				return
			}
			done <- tpl.Fields
		}()
	}
	for i := 0; i < 8; i++ {
		assert.Equal(t, []string{"__0", "__1", "name"}, <-done)
	}
}

func TestUnescape(t *testing.T) {
	assert.Equal(t, "{a} }", Unescape("{{a}} }"))
	assert.Equal(t, "{{", Unescape("{{{{"))
	assert.Equal(t, "plain", Unescape("plain"))
}
