// Package codegen turns normalized templates into Go String methods.
//
// Each receiver type gets one method. A type whose variants are enum constants
// gets a switch with one case per constant; a struct type gets a single
// fmt.Sprintf call with its fields bound to the template identifiers.
package codegen

import (
	"errors"
	"fmt"
	"go/format"
	"strconv"
	"strings"

	"github.com/cristianoliveira/displaygen/internal/fmtspec"
	"github.com/cristianoliveira/displaygen/internal/interpolate"
	"github.com/cristianoliveira/displaygen/internal/variant"
)

var (
	// ErrMixedShape indicates a type declared both as enum constants and as a struct variant.
	ErrMixedShape = errors.New("type mixes enum constants and struct variants")
	// ErrDuplicateVariant indicates two templates for the same declaration.
	ErrDuplicateVariant = errors.New("duplicate variant")
)

// Header starts every generated file.
const Header = "// Code generated by displaygen. DO NOT EDIT."

// Options configures a Generator.
type Options struct {
	// MethodName is the generated method, String by default.
	MethodName string
	// Receiver is the receiver variable name, v by default.
	Receiver string
	// ParseOptions are passed to the template normalizer.
	ParseOptions []interpolate.Option
}

// Generator emits Go source for variants.
type Generator struct {
	opts Options
}

// New creates a Generator, filling defaults for empty options.
func New(opts Options) *Generator {
	if opts.MethodName == "" {
		opts.MethodName = "String"
	}
	if opts.Receiver == "" {
		opts.Receiver = "v"
	}
	return &Generator{opts: opts}
}

// Expr is the Go expression a single variant renders to, plus whether it
// needs the fmt package.
type Expr struct {
	Code    string
	UsesFmt bool
}

// Variant builds the expression that renders one variant. Fields the template
// does not reference are left out.
func (g *Generator) Variant(v variant.Variant) (Expr, *interpolate.Template, error) {
	t, err := interpolate.Parse(v.Template, g.opts.ParseOptions...)
	if err != nil {
		return Expr{}, nil, fmt.Errorf("%s: %w", v.Label(), err)
	}
	bindings, err := v.Bindings(t)
	if err != nil {
		return Expr{}, nil, err
	}

	var (
		layout strings.Builder
		args   []string
	)
	for _, seg := range t.Segments {
		if seg.Kind == interpolate.SegmentLiteral {
			layout.WriteString(strings.ReplaceAll(interpolate.Unescape(seg.Text), "%", "%%"))
			continue
		}
		field := bindings[seg.Ident]
		verb, err := fmtspec.Translate(seg.Spec, field.Kind())
		if err != nil {
			return Expr{}, nil, fmt.Errorf("%s {%s}: %w", v.Label(), seg.Ident, err)
		}
		layout.WriteString(verb)
		args = append(args, g.opts.Receiver+"."+field.Name)
	}

	if len(args) == 0 {
		return Expr{Code: strconv.Quote(interpolate.Unescape(t.Rewritten))}, t, nil
	}
	return Expr{
		Code:    fmt.Sprintf("fmt.Sprintf(%s, %s)", strconv.Quote(layout.String()), strings.Join(args, ", ")),
		UsesFmt: true,
	}, t, nil
}

// Method is the generated method for one receiver type.
type Method struct {
	TypeName string
	Code     string
	UsesFmt  bool
	// Templates holds the parsed template per variant label.
	Templates map[string]*interpolate.Template
	// Exprs holds the rendered expression per variant label.
	Exprs map[string]Expr
}

// Method builds the method for variants that all share one receiver type.
func (g *Generator) Method(variants []variant.Variant) (Method, error) {
	if len(variants) == 0 {
		return Method{}, errors.New("codegen: no variants")
	}
	typeName := variants[0].TypeName
	enum := variants[0].Name != ""
	seen := make(map[string]bool, len(variants))
	for _, v := range variants {
		if v.TypeName != typeName {
			return Method{}, fmt.Errorf("codegen: variant %s does not belong to %s", v.Label(), typeName)
		}
		if (v.Name != "") != enum {
			return Method{}, fmt.Errorf("%w: %s", ErrMixedShape, typeName)
		}
		if seen[v.Label()] {
			return Method{}, fmt.Errorf("%w: %s", ErrDuplicateVariant, v.Label())
		}
		seen[v.Label()] = true
	}
	if !enum && len(variants) > 1 {
		return Method{}, fmt.Errorf("%w: %s", ErrDuplicateVariant, typeName)
	}

	m := Method{
		TypeName:  typeName,
		Templates: make(map[string]*interpolate.Template, len(variants)),
		Exprs:     make(map[string]Expr, len(variants)),
	}
	recv := g.opts.Receiver
	var b strings.Builder
	fmt.Fprintf(&b, "func (%s %s) %s() string {\n", recv, typeName, g.opts.MethodName)

	if !enum {
		expr, t, err := g.Variant(variants[0])
		if err != nil {
			return Method{}, err
		}
		m.Templates[variants[0].Label()] = t
		m.Exprs[variants[0].Label()] = expr
		m.UsesFmt = expr.UsesFmt
		fmt.Fprintf(&b, "\treturn %s\n}\n", expr.Code)
		m.Code = b.String()
		return m, nil
	}

	fmt.Fprintf(&b, "\tswitch %s {\n", recv)
	for _, v := range variants {
		expr, t, err := g.Variant(v)
		if err != nil {
			return Method{}, err
		}
		m.Templates[v.Label()] = t
		m.Exprs[v.Label()] = expr
		fmt.Fprintf(&b, "\tcase %s:\n\t\treturn %s\n", v.Name, expr.Code)
	}
	underlying := variants[0].Underlying
	if underlying == "" {
		underlying = "int"
	}
	fmt.Fprintf(&b, "\tdefault:\n\t\treturn fmt.Sprintf(%s, %s(%s))\n\t}\n}\n",
		strconv.Quote(typeName+"(%v)"), underlying, recv)
	m.UsesFmt = true
	m.Code = b.String()
	return m, nil
}

// File is one generated output file.
type File struct {
	// RelativePath is the file name relative to the package directory.
	RelativePath string
	Data         []byte
	Methods      []Method
}

// File renders a complete, gofmt-formatted Go file for pkg. Variants are
// grouped by receiver type in first-seen order.
func (g *Generator) File(path, pkg string, variants []variant.Variant) (File, error) {
	var (
		order  []string
		groups = make(map[string][]variant.Variant)
	)
	for _, v := range variants {
		if _, ok := groups[v.TypeName]; !ok {
			order = append(order, v.TypeName)
		}
		groups[v.TypeName] = append(groups[v.TypeName], v)
	}

	out := File{RelativePath: path}
	usesFmt := false
	for _, name := range order {
		m, err := g.Method(groups[name])
		if err != nil {
			return File{}, err
		}
		usesFmt = usesFmt || m.UsesFmt
		out.Methods = append(out.Methods, m)
	}

	var b strings.Builder
	b.WriteString(Header)
	fmt.Fprintf(&b, "\n\npackage %s\n", pkg)
	if usesFmt {
		b.WriteString("\nimport \"fmt\"\n")
	}
	for _, m := range out.Methods {
		b.WriteString("\n")
		b.WriteString(m.Code)
	}

	src, err := format.Source([]byte(b.String()))
	if err != nil {
		return File{}, fmt.Errorf("codegen: format %s: %w", path, err)
	}
	out.Data = src
	return out, nil
}
