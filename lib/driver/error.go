package driver

import (
	"context"
	"errors"
	"fmt"
)

// Error is the only error type session operations are allowed to
// surface. callers branch on Op/Selector instead of unwinding through
// driver-specific failures.
type Error struct {
	Op       string
	Selector string
	Err      error
}

func (e *Error) Error() string {
	if e.Selector == "" {
		return fmt.Sprintf("driver: %s: %s", e.Op, e.Err)
	}
	return fmt.Sprintf("driver: %s %q: %s", e.Op, e.Selector, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Timeout reports whether the operation failed by exceeding its bound.
func (e *Error) Timeout() bool {
	return errors.Is(e.Err, context.DeadlineExceeded)
}

func opError(op, selector string, err error) error {
	if err == nil {
		return nil
	}
	var derr *Error
	if errors.As(err, &derr) {
		return err
	}
	return &Error{Op: op, Selector: selector, Err: err}
}
