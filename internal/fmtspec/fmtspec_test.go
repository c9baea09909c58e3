package fmtspec

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		spec string
		kind Kind
		want string
	}{
		{spec: "", kind: KindAny, want: "%v"},
		{spec: "", kind: KindString, want: "%s"},
		{spec: "", kind: KindInt, want: "%d"},
		{spec: "", kind: KindFloat, want: "%v"},
		{spec: "?", kind: KindAny, want: "%+v"},
		{spec: "#?", kind: KindAny, want: "%#v"},
		{spec: "x", kind: KindInt, want: "%x"},
		{spec: "#x", kind: KindInt, want: "%#x"},
		{spec: "04x", kind: KindInt, want: "%04x"},
		{spec: "08X", kind: KindAny, want: "%08X"},
		{spec: ".2", kind: KindFloat, want: "%.2f"},
		{spec: ".2", kind: KindAny, want: "%.2v"},
		{spec: ".3", kind: KindString, want: "%.3s"},
		{spec: ">6", kind: KindAny, want: "%6v"},
		{spec: "<6", kind: KindString, want: "%-6s"},
		{spec: " <6", kind: KindString, want: "%-6s"},
		{spec: "+", kind: KindInt, want: "%+d"},
		{spec: "+.1e", kind: KindFloat, want: "%+.1e"},
		{spec: "b", kind: KindInt, want: "%b"},
		{spec: "o", kind: KindInt, want: "%o"},
		{spec: "10.4", kind: KindFloat, want: "%10.4f"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%q/%d", tt.spec, tt.kind), func(t *testing.T) {
			got, err := Translate(tt.spec, tt.kind)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTranslateUnsupported(t *testing.T) {
	specs := []string{
		"^10",
		"*<5",
		"-5",
		"width$",
		"1$",
		".*",
		".prec$",
		"z",
		"x?",
		"5.2q",
	}
	for _, spec := range specs {
		t.Run(spec, func(t *testing.T) {
			_, err := Translate(spec, KindAny)
			require.ErrorIs(t, err, ErrUnsupportedSpec)
		})
	}
}

func TestParse(t *testing.T) {
	s, err := Parse("<+#08.3e")
	require.NoError(t, err)

	assert.Equal(t, byte('<'), s.Align)
	assert.True(t, s.Plus)
	assert.True(t, s.Alternate)
	assert.True(t, s.Zero)
	assert.Equal(t, 8, s.Width)
	assert.Equal(t, 3, s.Precision)
	assert.True(t, s.HasPrecision)
	assert.Equal(t, byte('e'), s.Type)
}

func TestVerbsFormatLikeTheTemplateIntends(t *testing.T) {
	verb, err := Translate("04x", KindInt)
	require.NoError(t, err)
	assert.Equal(t, "002a", fmt.Sprintf(verb, 42))

	verb, err = Translate(".2", KindFloat)
	require.NoError(t, err)
	assert.Equal(t, "3.14", fmt.Sprintf(verb, 3.14159))

	verb, err = Translate("<5", KindString)
	require.NoError(t, err)
	assert.Equal(t, "ab   |", fmt.Sprintf(verb+"|", "ab"))
}

func TestTranslateCachesResult(t *testing.T) {
	first, err := Translate("#?", KindAny)
	require.NoError(t, err)

	_, ok := cache.Load(cacheKey{spec: "#?", kind: KindAny})
	assert.True(t, ok)

	second, err := Translate("#?", KindAny)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
