package pzip

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

type PzipError interface {
	error
	WithMessage(message string) PzipError
	Wrap(err error) PzipError
}

type basePzipError string

const rootError = basePzipError("")

var ErrNoInputFiles = rootError.WithMessage("No input files given")
var ErrInvalidArgument = rootError.WithMessage("Invalid argument")
var ErrWriteFailed = rootError.WithMessage("Failed to write output")

func (e basePzipError) Error() string {
	return string(e)
}

func (e basePzipError) WithMessage(message string) PzipError {
	return customPzipError{
		message:       message,
		originalError: e,
	}
}

func (e basePzipError) Wrap(err error) PzipError {
	return customPzipError{
		message:       fmt.Sprintf("%s: %s", e.Error(), err.Error()),
		originalError: multierror.Append(e, err),
	}
}

// -----------------------------------------------------------------------------

type customPzipError struct {
	message       string
	originalError error
}

// Error implements the `error` object interface. When called, it returns a string
// describing the error.
func (e customPzipError) Error() string {
	return e.message
}

func (e customPzipError) WithMessage(message string) PzipError {
	return customPzipError{
		message:       fmt.Sprintf("%s: %s", e.message, message),
		originalError: e,
	}
}

func (e customPzipError) Wrap(err error) PzipError {
	return customPzipError{
		message:       fmt.Sprintf("%s: %s", e.Error(), err.Error()),
		originalError: multierror.Append(e, err),
	}
}

func (e customPzipError) Unwrap() error {
	return e.originalError
}
