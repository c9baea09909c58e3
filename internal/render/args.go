package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cristianoliveira/displaygen/internal/interpolate"
)

// ParseArgs builds Values from command line words. A word of the form
// key=value binds a name, or an index when key is numeric; any other word is
// the next positional value. Keys are canonicalized the same way placeholders
// are, so "0=x" binds {0} and {}.
func ParseArgs(args []string) (Values, error) {
	values := make(Values, len(args))
	next := 0
	for _, arg := range args {
		key, raw, ok := strings.Cut(arg, "=")
		if !ok || key == "" || strings.ContainsAny(key, " {}:") {
			values[fmt.Sprintf("%s%d", interpolate.PositionalPrefix, next)] = ParseValue(arg)
			next++
			continue
		}
		ident, err := interpolate.CanonicalIdent(key)
		if err != nil {
			return nil, fmt.Errorf("render: argument %q: %w", arg, err)
		}
		values[ident] = ParseValue(raw)
	}
	return values, nil
}

// ParseValue converts a word to the Go value it most likely denotes so that
// specifiers like {:.2} or {:x} apply: integers, floats and booleans are
// converted, a double-quoted word is always a string.
func ParseValue(s string) any {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		if unquoted, err := strconv.Unquote(s); err == nil {
			return unquoted
		}
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if strings.ContainsAny(s, ".eE") {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	if s == "true" || s == "false" {
		return s == "true"
	}
	return s
}
