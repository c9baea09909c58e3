package render

import (
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"

	"github.com/cristianoliveira/displaygen/internal/fmtspec"
	"github.com/cristianoliveira/displaygen/internal/interpolate"
)

// Values maps canonical identifiers to the values substituted for them.
type Values map[string]any

// Positional builds values for __0, __1, ... from args.
func Positional(args ...any) Values {
	v := make(Values, len(args))
	for i, arg := range args {
		v[fmt.Sprintf("%s%d", interpolate.PositionalPrefix, i)] = arg
	}
	return v
}

// Named builds values from a name map.
func Named(m map[string]any) Values {
	return Values(maps.Clone(m))
}

// With returns a copy of v with name set to value.
func (v Values) With(name string, value any) Values {
	out := maps.Clone(v)
	if out == nil {
		out = make(Values, 1)
	}
	out[name] = value
	return out
}

// Merge returns a copy of v overlaid with other.
func (v Values) Merge(other Values) Values {
	out := make(Values, len(v)+len(other))
	maps.Copy(out, v)
	maps.Copy(out, other)
	return out
}

// Keys returns the identifiers in v, sorted.
func (v Values) Keys() []string {
	return slices.Sorted(maps.Keys(v))
}

// ValueResolver resolves a canonical identifier to its value.
type ValueResolver interface {
	Resolve(ident string, values Values) (any, error)
}

// valueResolver implements ValueResolver.
type valueResolver struct{}

// NewValueResolver creates a new value resolver instance.
func NewValueResolver() ValueResolver {
	return &valueResolver{}
}

// Resolve returns the value for ident. Missing values report the identifiers
// that are available.
func (vr *valueResolver) Resolve(ident string, values Values) (any, error) {
	if value, ok := values[ident]; ok {
		return value, nil
	}
	available := values.Keys()
	if len(available) == 0 {
		return nil, fmt.Errorf("%w: {%s}", ErrMissingValue, ident)
	}
	return nil, fmt.Errorf("%w: {%s} (available: %s)", ErrMissingValue, ident, strings.Join(available, ", "))
}

// KindOfValue picks the formatting hint for a runtime value. Types with their
// own String or Error method always format with %v.
func KindOfValue(value any) fmtspec.Kind {
	switch value.(type) {
	case nil, fmt.Stringer, error:
		return fmtspec.KindAny
	}
	switch reflect.TypeOf(value).Kind() {
	case reflect.String:
		return fmtspec.KindString
	case reflect.Float32, reflect.Float64:
		return fmtspec.KindFloat
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return fmtspec.KindInt
	default:
		return fmtspec.KindAny
	}
}
