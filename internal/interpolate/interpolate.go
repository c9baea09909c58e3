// Package interpolate normalizes interpolation templates.
//
// A template is text with {...} placeholders. Every placeholder is rewritten to
// carry an explicit identifier: empty placeholders take the next auto index,
// integer literals become explicit positional references, names stay as they
// are. Positional identifiers are spelled __<n>. A specifier after the first
// ':' is kept verbatim and never interpreted here.
//
//	"{} {1} {name:?}"  ->  "{__0} {__1} {name:?}"   fields: __0 __1 name
//
// A doubled "{{" is an escape and is copied through unchanged.
package interpolate

import (
	"math"
	"slices"
	"strconv"
	"strings"
)

// MaxPositional is the largest positional index a template may use.
const MaxPositional = math.MaxUint8

// PositionalPrefix prefixes every positional canonical identifier.
const PositionalPrefix = "__"

type options struct {
	truncateUnterminated bool
}

// Option configures Parse.
type Option func(*options)

// WithTruncateUnterminated silently drops an unterminated trailing placeholder
// instead of failing. The dangling text produces no token and no field.
func WithTruncateUnterminated() Option {
	return func(o *options) {
		o.truncateUnterminated = true
	}
}

// Normalize rewrites template and returns the rewritten text with its sorted
// field set.
func Normalize(template string) (string, []string, error) {
	t, err := Parse(template)
	if err != nil {
		return "", nil, err
	}
	return t.Rewritten, t.Fields, nil
}

// Parse scans template once, left to right, and returns the normalized result.
func Parse(template string, opts ...Option) (*Template, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	p := &parser{
		src:     template,
		opts:    o,
		seen:    make(map[string]struct{}),
		counter: -1,
	}
	if err := p.run(); err != nil {
		return nil, err
	}

	fields := slices.Clone(p.discovered)
	slices.Sort(fields)
	if fields == nil {
		fields = []string{}
	}
	discovered := p.discovered
	if discovered == nil {
		discovered = []string{}
	}

	return &Template{
		Source:     template,
		Rewritten:  p.out.String(),
		Fields:     fields,
		Discovered: discovered,
		Segments:   p.segments,
	}, nil
}

// CanonicalIdent applies the identifier rules to a raw, non-empty identifier.
// Integer literals become __<n>; anything else is returned unchanged.
func CanonicalIdent(raw string) (string, error) {
	if !isDigits(raw) {
		return raw, nil
	}
	n, err := strconv.ParseUint(raw, 10, 8)
	if err != nil {
		return "", ErrPositionalOverflow
	}
	return positional(int(n)), nil
}

// PositionalIndex reports the index encoded in a canonical positional identifier.
func PositionalIndex(ident string) (int, bool) {
	rest, ok := strings.CutPrefix(ident, PositionalPrefix)
	if !ok || !isDigits(rest) {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n > MaxPositional {
		return 0, false
	}
	return n, true
}

func positional(n int) string {
	return PositionalPrefix + strconv.Itoa(n)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// scanState is the parser position. The outer states walk literal text, the
// inner states walk the body of one placeholder.
type scanState int

const (
	stateLiteral scanState = iota
	stateEscapeCheck
	stateIdent
	stateSpec
)

type parser struct {
	src  string
	opts options

	out      strings.Builder
	lit      strings.Builder
	litStart int

	ident strings.Builder
	spec  strings.Builder
	open  int

	seen       map[string]struct{}
	discovered []string
	segments   []Segment
	counter    int
}

// run walks the template byte by byte. The structural characters are ASCII, so
// multi-byte runes pass through untouched.
func (p *parser) run() error {
	state := stateLiteral
	for i := 0; i < len(p.src); i++ {
		c := p.src[i]
		switch state {
		case stateLiteral:
			if c == '{' {
				p.open = i
				state = stateEscapeCheck
				continue
			}
			p.literal(i, c)

		case stateEscapeCheck:
			switch c {
			case '{':
				p.literal(p.open, '{')
				p.literal(i, '{')
				state = stateLiteral
			case '}':
				if err := p.close(); err != nil {
					return err
				}
				state = stateLiteral
			case ':':
				state = stateSpec
			default:
				p.ident.WriteByte(c)
				state = stateIdent
			}

		case stateIdent:
			switch c {
			case '}':
				if err := p.close(); err != nil {
					return err
				}
				state = stateLiteral
			case ':':
				state = stateSpec
			default:
				p.ident.WriteByte(c)
			}

		case stateSpec:
			if c == '}' {
				if err := p.close(); err != nil {
					return err
				}
				state = stateLiteral
				continue
			}
			p.spec.WriteByte(c)
		}
	}

	if state != stateLiteral {
		if !p.opts.truncateUnterminated {
			return &ParseError{
				Template: p.src,
				Offset:   p.open,
				Fragment: p.src[p.open:],
				Err:      ErrUnterminatedPlaceholder,
			}
		}
		p.reset()
	}
	p.flushLiteral()
	return nil
}

func (p *parser) literal(offset int, c byte) {
	if p.lit.Len() == 0 {
		p.litStart = offset
	}
	p.lit.WriteByte(c)
}

func (p *parser) flushLiteral() {
	if p.lit.Len() == 0 {
		return
	}
	text := p.lit.String()
	p.out.WriteString(text)
	p.segments = append(p.segments, Segment{
		Kind:   SegmentLiteral,
		Text:   text,
		Offset: p.litStart,
	})
	p.lit.Reset()
}

// close finishes the placeholder opened at p.open.
func (p *parser) close() error {
	defer p.reset()

	ident, err := p.canonical()
	if err != nil {
		end := strings.IndexByte(p.src[p.open:], '}')
		return &ParseError{
			Template: p.src,
			Offset:   p.open,
			Fragment: p.src[p.open : p.open+end+1],
			Err:      err,
		}
	}

	p.flushLiteral()
	seg := Segment{
		Kind:    SegmentPlaceholder,
		Ident:   ident,
		Spec:    p.spec.String(),
		HasSpec: p.spec.Len() > 0,
		Offset:  p.open,
	}
	p.out.WriteString(seg.Token())
	p.segments = append(p.segments, seg)

	if _, ok := p.seen[ident]; !ok {
		p.seen[ident] = struct{}{}
		p.discovered = append(p.discovered, ident)
	}
	return nil
}

func (p *parser) canonical() (string, error) {
	if p.ident.Len() == 0 {
		if p.counter >= MaxPositional {
			return "", ErrPositionalOverflow
		}
		p.counter++
		return positional(p.counter), nil
	}
	return CanonicalIdent(p.ident.String())
}

func (p *parser) reset() {
	p.ident.Reset()
	p.spec.Reset()
}
