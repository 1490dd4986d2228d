package legacy

import (
	"errors"
	"fmt"
)

// ErrUnknownFormat is reported when no candidate reader recognizes a
// source.
var ErrUnknownFormat = errors.New("no legacy reader recognizes the source")

// FormatError wraps a failure from a legacy reader with the operation that
// failed and the source it failed on. The original cause is preserved and
// reachable through errors.Unwrap.
type FormatError struct {
	// Op is the failed operation, "open" or "read".
	Op string

	// Source is the source name the operation ran against.
	Source string

	// Err is the underlying cause.
	Err error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Source, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }
