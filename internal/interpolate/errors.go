package interpolate

import (
	"errors"
	"fmt"
)

var (
	// ErrUnterminatedPlaceholder indicates the template ended inside a placeholder.
	ErrUnterminatedPlaceholder = errors.New("unterminated placeholder")
	// ErrPositionalOverflow indicates a positional index beyond MaxPositional.
	ErrPositionalOverflow = errors.New("positional index out of range")
)

// ParseError describes where a template was rejected.
type ParseError struct {
	// Template is the whole input.
	Template string
	// Offset is the byte offset of the opening brace of the offending placeholder.
	Offset int
	// Fragment is the raw placeholder text that was being read.
	Fragment string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("interpolate: %v at offset %d: %q", e.Err, e.Offset, e.Fragment)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
