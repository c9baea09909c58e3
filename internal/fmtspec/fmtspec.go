// Package fmtspec translates placeholder specifiers into fmt verbs.
//
// Specifiers follow the [[fill]align][sign]['#']['0'][width]['.'precision][type]
// grammar. Only the subset with a direct fmt equivalent is accepted.
package fmtspec

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
)

// ErrUnsupportedSpec indicates a specifier with no fmt equivalent.
var ErrUnsupportedSpec = errors.New("unsupported format spec")

// Kind hints at the Go type being formatted when the specifier has no type.
type Kind int

const (
	KindAny Kind = iota
	KindString
	KindFloat
	KindInt
)

// Spec is a parsed specifier.
type Spec struct {
	Fill      rune
	Align     byte
	Plus      bool
	Alternate bool
	Zero      bool
	Width     int
	Precision int
	// HasPrecision distinguishes ".0" from no precision.
	HasPrecision bool
	// Type is the trailing type character, or 0. '?' means debug.
	Type byte
}

// Parse parses a specifier. An empty string yields the zero Spec.
func Parse(spec string) (Spec, error) {
	s := Spec{Fill: ' ', Width: -1, Precision: -1}
	r := []rune(spec)
	i := 0

	if len(r) >= 2 && isAlign(r[1]) {
		s.Fill, s.Align = r[0], byte(r[1])
		i = 2
	} else if len(r) >= 1 && isAlign(r[0]) {
		s.Align = byte(r[0])
		i = 1
	}
	if s.Align == '^' {
		return Spec{}, unsupported(spec, "center alignment")
	}
	if s.Fill != ' ' {
		return Spec{}, unsupported(spec, "fill character")
	}

	if i < len(r) && (r[i] == '+' || r[i] == '-') {
		if r[i] == '-' {
			return Spec{}, unsupported(spec, "minus sign")
		}
		s.Plus = true
		i++
	}
	if i < len(r) && r[i] == '#' {
		s.Alternate = true
		i++
	}
	if i < len(r) && r[i] == '0' {
		s.Zero = true
		i++
	}

	width, next := digits(r, i)
	if next < len(r) && (r[next] == '$' || r[next] == '*') {
		return Spec{}, unsupported(spec, "parameterized width")
	}
	if next > i {
		s.Width = width
		i = next
	}

	if i < len(r) && r[i] == '.' {
		i++
		prec, next := digits(r, i)
		if next == i || (next < len(r) && r[next] == '$') {
			return Spec{}, unsupported(spec, "parameterized precision")
		}
		s.Precision, s.HasPrecision = prec, true
		i = next
	}

	switch rest := string(r[i:]); rest {
	case "":
	case "?", "x", "X", "o", "b", "e", "E":
		s.Type = rest[0]
	default:
		return Spec{}, unsupported(spec, "type "+strconv.Quote(rest))
	}

	return s, nil
}

// Verb renders the fmt directive for s, using kind when s has no type.
func (s Spec) Verb(kind Kind) string {
	var b strings.Builder
	b.WriteByte('%')

	verb := byte('v')
	switch s.Type {
	case '?':
		if s.Alternate {
			b.WriteByte('#')
		} else {
			b.WriteByte('+')
		}
	case 0:
		verb = defaultVerb(kind, s.HasPrecision)
	default:
		verb = s.Type
	}

	if s.Align == '<' {
		b.WriteByte('-')
	}
	if s.Plus && s.Type != '?' {
		b.WriteByte('+')
	}
	if s.Alternate && s.Type != '?' {
		b.WriteByte('#')
	}
	if s.Zero {
		b.WriteByte('0')
	}
	if s.Width >= 0 {
		b.WriteString(strconv.Itoa(s.Width))
	}
	if s.HasPrecision {
		b.WriteByte('.')
		b.WriteString(strconv.Itoa(s.Precision))
	}
	b.WriteByte(verb)
	return b.String()
}

type cacheKey struct {
	spec string
	kind Kind
}

var cache sync.Map

// Translate parses spec and returns its fmt directive. Results are cached.
func Translate(spec string, kind Kind) (string, error) {
	key := cacheKey{spec: spec, kind: kind}
	if v, ok := cache.Load(key); ok {
		return v.(string), nil
	}
	s, err := Parse(spec)
	if err != nil {
		return "", err
	}
	verb := s.Verb(kind)
	cache.Store(key, verb)
	return verb, nil
}

func defaultVerb(kind Kind, hasPrecision bool) byte {
	switch kind {
	case KindString:
		return 's'
	case KindInt:
		return 'd'
	case KindFloat:
		if hasPrecision {
			return 'f'
		}
	}
	return 'v'
}

func isAlign(r rune) bool {
	return r == '<' || r == '>' || r == '^'
}

func digits(r []rune, i int) (int, int) {
	n := 0
	j := i
	for j < len(r) && r[j] >= '0' && r[j] <= '9' {
		n = n*10 + int(r[j]-'0')
		j++
	}
	return n, j
}

func unsupported(spec, what string) error {
	return fmt.Errorf("%w: %q: %s", ErrUnsupportedSpec, spec, what)
}
