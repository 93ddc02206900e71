package helper

import "fmt"

// Error wraps an error with the operation that failed.
type Error struct {
	Op  string
	Err error
}

// NewError wraps err with the name of the failed operation.
// It returns nil if err is nil.
func NewError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Err: err}
}

func (e *Error) Error() string {
	return fmt.Sprintf("error in %s: %v", e.Op, e.Err)
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}
