package pzip_test

import (
	"errors"
	"testing"

	"github.com/dargueta/pzip"
	"github.com/stretchr/testify/assert"
)

func TestPzipErrorWithMessage(t *testing.T) {
	newErr := pzip.ErrInvalidArgument.WithMessage("workers must be positive")
	assert.Equal(
		t, "Invalid argument: workers must be positive", newErr.Error(), "error message is wrong")
	assert.ErrorIs(t, newErr, pzip.ErrInvalidArgument)
	assert.NotErrorIs(t, newErr, pzip.ErrNoInputFiles)
}

func TestPzipErrorWrap(t *testing.T) {
	originalErr := errors.New("short write")
	newErr := pzip.ErrWriteFailed.Wrap(originalErr)
	expectedMessage := "Failed to write output: short write"

	assert.EqualValues(t, expectedMessage, newErr.Error(), "error message is wrong")
	assert.ErrorIs(t, newErr, originalErr, "original error not set as parent")
	assert.ErrorIs(t, newErr, pzip.ErrWriteFailed, "pzip error not set as parent")
}
