// Package render renders interpolation templates at runtime.
//
// It is the dynamic counterpart of the generated String methods: the same
// normalized template and specifier rules, resolved against a value map instead
// of struct fields.
package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cristianoliveira/displaygen/internal/fmtspec"
	"github.com/cristianoliveira/displaygen/internal/interpolate"
)

// ErrMissingValue indicates a placeholder with no value to substitute.
var ErrMissingValue = errors.New("missing value")

// TemplateEngine provides template parsing and value substitution.
type TemplateEngine interface {
	// Parse normalizes a template.
	Parse(template string) (*interpolate.Template, error)

	// Substitute renders a template with values keyed by canonical identifier.
	Substitute(template string, values Values) (string, error)
}

// templateEngine implements TemplateEngine.
type templateEngine struct {
	opts []interpolate.Option
}

// NewTemplateEngine creates a new template engine instance.
func NewTemplateEngine(opts ...interpolate.Option) TemplateEngine {
	return &templateEngine{opts: opts}
}

func (te *templateEngine) Parse(template string) (*interpolate.Template, error) {
	return interpolate.Parse(template, te.opts...)
}

func (te *templateEngine) Substitute(template string, values Values) (string, error) {
	if template == "" {
		return "", nil
	}
	t, err := te.Parse(template)
	if err != nil {
		return "", err
	}
	return Render(t, values)
}

// Render substitutes values into a parsed template. Every field of the
// template must have a value; extra values are ignored.
func Render(t *interpolate.Template, values Values) (string, error) {
	resolver := NewValueResolver()
	var b strings.Builder
	b.Grow(len(t.Rewritten))

	for _, seg := range t.Segments {
		if seg.Kind == interpolate.SegmentLiteral {
			b.WriteString(interpolate.Unescape(seg.Text))
			continue
		}
		value, err := resolver.Resolve(seg.Ident, values)
		if err != nil {
			return "", err
		}
		verb, err := fmtspec.Translate(seg.Spec, KindOfValue(value))
		if err != nil {
			return "", fmt.Errorf("render {%s}: %w", seg.Ident, err)
		}
		fmt.Fprintf(&b, verb, value)
	}

	return b.String(), nil
}

// Sprintf renders template with positional arguments only.
func Sprintf(template string, args ...any) (string, error) {
	return NewTemplateEngine().Substitute(template, Positional(args...))
}
