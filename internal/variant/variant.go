// Package variant describes the declarations a template is rendered for.
//
// A variant has one of three shapes: Unit (no fields), Positional (ordered,
// unnamed fields) or Named. Each shape knows how to bind a canonical template
// identifier to one of its fields.
package variant

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/cristianoliveira/displaygen/internal/fmtspec"
	"github.com/cristianoliveira/displaygen/internal/interpolate"
)

// ErrUnboundField indicates a template identifier with no matching field.
var ErrUnboundField = errors.New("template references unknown field")

// ShapeKind enumerates the variant shapes.
type ShapeKind int

const (
	ShapeUnit ShapeKind = iota
	ShapePositional
	ShapeNamed
)

// String returns the shape name.
func (k ShapeKind) String() string {
	switch k {
	case ShapeUnit:
		return "unit"
	case ShapePositional:
		return "positional"
	case ShapeNamed:
		return "named"
	default:
		return "unknown"
	}
}

// Field is one field of a variant.
type Field struct {
	// Name is the Go selector used to reach the field.
	Name string
	// Index is the declaration position of the field.
	Index int
	// Type is the Go type expression as written in source.
	Type string
}

// Kind returns the formatting hint for the field type.
func (f Field) Kind() fmtspec.Kind {
	return KindOf(f.Type)
}

// Shape binds template identifiers to fields.
type Shape interface {
	Kind() ShapeKind
	// Bind returns the field referenced by a canonical identifier.
	Bind(ident string) (Field, bool)
	Fields() []Field
}

// Unit is a variant without fields.
type Unit struct{}

func (Unit) Kind() ShapeKind           { return ShapeUnit }
func (Unit) Bind(string) (Field, bool) { return Field{}, false }
func (Unit) Fields() []Field           { return nil }

// Positional is a variant whose fields are addressed by position.
type Positional struct {
	Items []Field
}

func (p Positional) Kind() ShapeKind { return ShapePositional }

// Bind resolves __<n> to the n-th field.
func (p Positional) Bind(ident string) (Field, bool) {
	n, ok := interpolate.PositionalIndex(ident)
	if !ok || n >= len(p.Items) {
		return Field{}, false
	}
	return p.Items[n], true
}

func (p Positional) Fields() []Field { return p.Items }

// Named is a variant whose fields are addressed by name.
type Named struct {
	Items []Field
}

func (n Named) Kind() ShapeKind { return ShapeNamed }

// Bind resolves a name to a field. An exact match wins; otherwise a name that
// differs only in the case of its first letter is accepted, so {x} reaches X.
func (n Named) Bind(ident string) (Field, bool) {
	for _, f := range n.Items {
		if f.Name == ident {
			return f, true
		}
	}
	for _, f := range n.Items {
		if foldFirst(f.Name) == foldFirst(ident) {
			return f, true
		}
	}
	return Field{}, false
}

func (n Named) Fields() []Field { return n.Items }

// Variant is one declaration plus the template it is displayed with.
type Variant struct {
	// TypeName is the receiver type.
	TypeName string
	// Name is the constant name for unit enum members; empty otherwise.
	Name     string
	Shape    Shape
	Template string
	// Underlying is the underlying type of an enum type, such as int.
	Underlying string
	// File is the source file the variant was declared in, if known.
	File string
	// Line is the declaration line, if known.
	Line int
}

// Label identifies the variant in messages.
func (v Variant) Label() string {
	if v.Name != "" {
		return v.TypeName + "." + v.Name
	}
	return v.TypeName
}

// Bindings resolves every field of t against the variant shape, keyed by
// canonical identifier.
func (v Variant) Bindings(t *interpolate.Template) (map[string]Field, error) {
	out := make(map[string]Field, len(t.Fields))
	for _, ident := range t.Fields {
		f, ok := v.Shape.Bind(ident)
		if !ok {
			return nil, fmt.Errorf("%w: %s has no field for {%s}", ErrUnboundField, v.Label(), ident)
		}
		out[ident] = f
	}
	return out, nil
}

// KindOf maps a Go type expression to a formatting hint.
func KindOf(typ string) fmtspec.Kind {
	switch strings.TrimSpace(typ) {
	case "string":
		return fmtspec.KindString
	case "float32", "float64":
		return fmtspec.KindFloat
	case "int", "int8", "int16", "int32", "int64",
		"uint", "uint8", "uint16", "uint32", "uint64", "uintptr", "byte":
		return fmtspec.KindInt
	default:
		return fmtspec.KindAny
	}
}

func foldFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}
