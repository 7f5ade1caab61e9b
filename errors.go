package pagedoc

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure classes of a render.
var (
	ErrConfiguration = errors.New("pagedoc: invalid configuration")
	ErrSinkWrite     = errors.New("pagedoc: output sink failure")
	ErrUnknownBlock  = errors.New("pagedoc: unknown block kind")
	ErrFinalized     = errors.New("pagedoc: document is finalized")
)

// Error represents a failure of a specific render operation.
// Kind is one of the package sentinels and Err carries the cause; both
// are visible to errors.Is and errors.As.
type Error struct {
	Op   string // operation name, e.g. "Validate", "Resolve", "Write"
	Kind error  // sentinel class
	Err  error  // underlying error
}

func (e *Error) Error() string {
	switch {
	case e.Err != nil && e.Kind != nil:
		return fmt.Sprintf("pagedoc.%s: %v: %v", e.Op, e.Kind, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("pagedoc.%s: %v", e.Op, e.Err)
	case e.Kind != nil:
		return fmt.Sprintf("pagedoc.%s: %v", e.Op, e.Kind)
	}
	return fmt.Sprintf("pagedoc.%s: unknown error", e.Op)
}

func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// newError creates an Error of the given kind for operation op.
func newError(op string, kind, err error) *Error {
	return &Error{Op: op, Kind: kind, Err: err}
}

func configError(op, format string, args ...any) *Error {
	return newError(op, ErrConfiguration, fmt.Errorf(format, args...))
}
