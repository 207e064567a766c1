package errors

import (
	"fmt"
)

// ResourceError describes a failure to acquire or use an operating system
// resource: opening, mapping or unmapping a file, or writing output. These are
// never retried.
type ResourceError interface {
	error
	Errno() Errno
	// Op is the short name of the failing operation, e.g. "open" or "mmap".
	Op() string
	Unwrap() error
}

type resourceError struct {
	errno         Errno
	op            string
	message       string
	originalError error
}

// Error implements the `error` object interface. The message follows perror(3):
// "<op> error: <path>: <description>".
func (e resourceError) Error() string {
	return e.message
}

func (e resourceError) Errno() Errno {
	return e.errno
}

func (e resourceError) Op() string {
	return e.op
}

func (e resourceError) Unwrap() error {
	return e.originalError
}

// New creates a new [ResourceError] with a default message derived from the
// error code.
func New(op string, errnoCode Errno) ResourceError {
	return resourceError{
		errno:   errnoCode,
		op:      op,
		message: fmt.Sprintf("%s error: %s", op, StrError(errnoCode)),
	}
}

// NewFromError wraps an error returned by the operating system while
// performing `op` on `path`. The errno code is derived with [FromError].
func NewFromError(op string, path string, originalError error) ResourceError {
	errnoCode := FromError(originalError)
	description := StrError(errnoCode)
	if errnoCode == EUNKNOWN {
		description = originalError.Error()
	}

	return resourceError{
		errno:         errnoCode,
		op:            op,
		message:       fmt.Sprintf("%s error: %s: %s", op, path, description),
		originalError: originalError,
	}
}

// NewWithMessage creates a new ResourceError from an error code with a custom
// message.
func NewWithMessage(op string, errnoCode Errno, message string) ResourceError {
	return resourceError{
		errno:   errnoCode,
		op:      op,
		message: fmt.Sprintf("%s error: %s: %s", op, StrError(errnoCode), message),
	}
}
