package domain

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrUsage marks a programmer error in a test declaration.
	ErrUsage = errors.New("usage error")
	// ErrNotStatic is returned when a member path needs an object but none was supplied.
	ErrNotStatic = errors.New("non-static member requires an object")
	// ErrBuildFailed is returned when an assertion fails during the verification phase.
	ErrBuildFailed = errors.New("verification phase failed")
	// ErrBudgetExceeded is returned when the configured maximum error count is reached.
	ErrBudgetExceeded = errors.New("maximum error count reached")
	// ErrTestsFailed is returned by the run command when errors were recorded.
	ErrTestsFailed = errors.New("tests failed")
)

// UsageError describes an incorrectly written test. It always matches ErrUsage.
type UsageError struct {
	Op  string
	Err error
}

// NewUsageError builds a UsageError with a stack trace attached to the cause.
func NewUsageError(op string, format string, args ...interface{}) *UsageError {
	return &UsageError{Op: op, Err: errors.Errorf(format, args...)}
}

// WrapUsage wraps err (typically ErrNotStatic) as a UsageError.
func WrapUsage(op string, err error, format string, args ...interface{}) *UsageError {
	return &UsageError{Op: op, Err: errors.Wrapf(err, format, args...)}
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *UsageError) Unwrap() error { return e.Err }

// Is makes every UsageError match ErrUsage.
func (e *UsageError) Is(target error) bool {
	return target == ErrUsage
}
