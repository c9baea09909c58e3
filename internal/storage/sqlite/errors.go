package sqlite

import "errors"

var (
	// ErrRunNotFound indicates that no run matches the given ID.
	ErrRunNotFound = errors.New("run not found")
	// ErrAmbiguousRunID indicates a run ID prefix that matches several runs.
	ErrAmbiguousRunID = errors.New("ambiguous run ID")
	// ErrInvalidEntry indicates an entry without a run or type name.
	ErrInvalidEntry = errors.New("invalid manifest entry")
)
