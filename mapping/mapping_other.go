//go:build !unix

package mapping

import (
	"io"
	"os"
)

// Without mmap the whole file is read into memory instead. Releasing it just
// drops the reference.
func mapReadOnly(handle *os.File, size int64) ([]byte, ReleaseFunc, error) {
	data := make([]byte, size)
	_, err := io.ReadFull(handle, data)
	if err != nil {
		return nil, nil, err
	}
	return data, func([]byte) error { return nil }, nil
}
