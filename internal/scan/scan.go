// Package scan finds display directives in Go source.
//
// A directive is a line comment of the form //display:"template" placed in the
// doc comment of a type or constant declaration:
//
//	//display:"({x}, {y})"
//	type Point struct{ X, Y int }
//
//	//display:"{} and {}"
//	type Pair struct {
//		int
//		string
//	}
//
//	const (
//		//display:"red"
//		Red Color = iota
//	)
//
// Structs whose fields are all embedded are positional; other structs are
// named; constants of a defined type are unit variants of that type.
package scan

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/cristianoliveira/displaygen/internal/variant"
)

var (
	// ErrBadDirective indicates a directive whose template is not a Go string literal.
	ErrBadDirective = errors.New("malformed directive")
	// ErrUnsupportedDecl indicates a directive on a declaration that cannot be displayed.
	ErrUnsupportedDecl = errors.New("unsupported declaration")
	// ErrNoPackage indicates a directory without Go files.
	ErrNoPackage = errors.New("no Go package found")
)

// DefaultDirective is the directive name used when Options leaves it empty.
const DefaultDirective = "display"

// Options controls which files are scanned and how directives are spelled.
type Options struct {
	// Directive is the comment prefix without slashes and colon.
	Directive string
	// SkipSuffixes lists file suffixes to ignore, typically generated output.
	SkipSuffixes []string
}

// File holds the variants declared in one source file, in source order.
type File struct {
	Path     string
	Variants []variant.Variant
}

// Package is the scan result for one directory.
type Package struct {
	Name  string
	Dir   string
	Files []File
}

// Variants returns every variant of the package in file order.
func (p *Package) Variants() []variant.Variant {
	var out []variant.Variant
	for _, f := range p.Files {
		out = append(out, f.Variants...)
	}
	return out
}

// Dir scans the non-test Go files of dir.
func Dir(dir string, opts Options) (*Package, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scan: read dir: %w", err)
	}

	sources := make(map[string][]byte)
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}
		if hasAnySuffix(name, opts.SkipSuffixes) {
			continue
		}
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("scan: read %s: %w", path, err)
		}
		sources[path] = data
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoPackage, dir)
	}

	pkg, err := Sources(sources, opts)
	if err != nil {
		return nil, err
	}
	pkg.Dir = dir
	return pkg, nil
}

// Sources scans in-memory files keyed by path. All files must belong to the
// same package.
func Sources(sources map[string][]byte, opts Options) (*Package, error) {
	if opts.Directive == "" {
		opts.Directive = DefaultDirective
	}

	paths := make([]string, 0, len(sources))
	for p := range sources {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	fset := token.NewFileSet()
	files := make([]*ast.File, 0, len(paths))
	pkg := &Package{}
	for _, p := range paths {
		f, err := parser.ParseFile(fset, p, sources[p], parser.ParseComments)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		if pkg.Name == "" {
			pkg.Name = f.Name.Name
		} else if f.Name.Name != pkg.Name {
			return nil, fmt.Errorf("scan: %s: package %s, expected %s", p, f.Name.Name, pkg.Name)
		}
		files = append(files, f)
	}

	underlying := collectTypes(files)
	for i, f := range files {
		s := &fileScanner{
			fset:       fset,
			path:       paths[i],
			prefix:     "//" + opts.Directive + ":",
			underlying: underlying,
		}
		variants, err := s.scan(f)
		if err != nil {
			return nil, err
		}
		if len(variants) > 0 {
			pkg.Files = append(pkg.Files, File{Path: paths[i], Variants: variants})
		}
	}
	return pkg, nil
}

// collectTypes maps every package-level type name to its underlying type expression.
func collectTypes(files []*ast.File) map[string]string {
	out := make(map[string]string)
	for _, f := range files {
		for _, decl := range f.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok || gd.Tok != token.TYPE {
				continue
			}
			for _, spec := range gd.Specs {
				ts := spec.(*ast.TypeSpec)
				out[ts.Name.Name] = types.ExprString(ts.Type)
			}
		}
	}
	return out
}

type fileScanner struct {
	fset       *token.FileSet
	path       string
	prefix     string
	underlying map[string]string
}

func (s *fileScanner) scan(f *ast.File) ([]variant.Variant, error) {
	var out []variant.Variant
	for _, decl := range f.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok {
			continue
		}
		switch gd.Tok {
		case token.TYPE:
			for _, spec := range gd.Specs {
				ts := spec.(*ast.TypeSpec)
				tpl, found, err := s.directive(ts.Doc, soleDoc(gd))
				if err != nil {
					return nil, err
				}
				if !found {
					continue
				}
				v, err := s.typeVariant(ts, tpl)
				if err != nil {
					return nil, err
				}
				out = append(out, v)
			}
		case token.CONST:
			vs, err := s.constVariants(gd)
			if err != nil {
				return nil, err
			}
			out = append(out, vs...)
		}
	}
	return out, nil
}

func (s *fileScanner) typeVariant(ts *ast.TypeSpec, tpl string) (variant.Variant, error) {
	v := variant.Variant{
		TypeName: ts.Name.Name,
		Template: tpl,
		File:     s.path,
		Line:     s.fset.Position(ts.Pos()).Line,
	}
	st, ok := ts.Type.(*ast.StructType)
	if !ok {
		return variant.Variant{}, fmt.Errorf("%w: %s:%d: %s is not a struct", ErrUnsupportedDecl, s.path, v.Line, v.TypeName)
	}
	v.Shape = structShape(st)
	return v, nil
}

func structShape(st *ast.StructType) variant.Shape {
	if st.Fields == nil || len(st.Fields.List) == 0 {
		return variant.Unit{}
	}

	var (
		fields      []variant.Field
		allEmbedded = true
	)
	for _, f := range st.Fields.List {
		typ := types.ExprString(f.Type)
		if len(f.Names) == 0 {
			fields = append(fields, variant.Field{Name: embeddedName(f.Type), Index: len(fields), Type: typ})
			continue
		}
		allEmbedded = false
		for _, name := range f.Names {
			fields = append(fields, variant.Field{Name: name.Name, Index: len(fields), Type: typ})
		}
	}
	if allEmbedded {
		return variant.Positional{Items: fields}
	}
	return variant.Named{Items: fields}
}

// constVariants handles a const block. A constant without an explicit type
// inherits the type of the spec before it, as iota blocks do.
func (s *fileScanner) constVariants(gd *ast.GenDecl) ([]variant.Variant, error) {
	var (
		out      []variant.Variant
		lastType string
	)
	for _, spec := range gd.Specs {
		vs := spec.(*ast.ValueSpec)
		if vs.Type != nil {
			lastType = types.ExprString(vs.Type)
		} else if len(vs.Values) > 0 {
			lastType = ""
		}

		tpl, found, err := s.directive(vs.Doc, soleDoc(gd))
		if err != nil {
			return nil, err
		}
		if !found {
			continue
		}
		line := s.fset.Position(vs.Pos()).Line
		underlying, ok := s.underlying[lastType]
		if lastType == "" || !ok {
			return nil, fmt.Errorf("%w: %s:%d: constant %s needs a type declared in this package", ErrUnsupportedDecl, s.path, line, vs.Names[0].Name)
		}
		for _, name := range vs.Names {
			out = append(out, variant.Variant{
				TypeName:   lastType,
				Name:       name.Name,
				Shape:      variant.Unit{},
				Template:   tpl,
				Underlying: underlying,
				File:       s.path,
				Line:       line,
			})
		}
	}
	return out, nil
}

// directive looks for the directive in the spec doc, then in the declaration
// doc when the declaration holds a single spec.
func (s *fileScanner) directive(groups ...*ast.CommentGroup) (string, bool, error) {
	for _, g := range groups {
		if g == nil {
			continue
		}
		for _, c := range g.List {
			raw, ok := strings.CutPrefix(c.Text, s.prefix)
			if !ok {
				continue
			}
			tpl, err := strconv.Unquote(strings.TrimSpace(raw))
			if err != nil {
				pos := s.fset.Position(c.Pos())
				return "", false, fmt.Errorf("%w: %s:%d: %s", ErrBadDirective, s.path, pos.Line, c.Text)
			}
			return tpl, true, nil
		}
	}
	return "", false, nil
}

func soleDoc(gd *ast.GenDecl) *ast.CommentGroup {
	if len(gd.Specs) == 1 {
		return gd.Doc
	}
	return nil
}

func embeddedName(expr ast.Expr) string {
	switch e := expr.(type) {
	case *ast.Ident:
		return e.Name
	case *ast.StarExpr:
		return embeddedName(e.X)
	case *ast.SelectorExpr:
		return e.Sel.Name
	case *ast.IndexExpr:
		return embeddedName(e.X)
	case *ast.IndexListExpr:
		return embeddedName(e.X)
	default:
		return types.ExprString(expr)
	}
}

func hasAnySuffix(name string, suffixes []string) bool {
	for _, suffix := range suffixes {
		if suffix != "" && strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}
