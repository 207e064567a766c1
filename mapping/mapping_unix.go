//go:build unix

package mapping

import (
	"os"

	"golang.org/x/sys/unix"
)

func mapReadOnly(handle *os.File, size int64) ([]byte, ReleaseFunc, error) {
	data, err := unix.Mmap(int(handle.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_PRIVATE)
	if err != nil {
		return nil, nil, err
	}

	// Chunks are handed out front to back.
	_ = unix.Madvise(data, unix.MADV_SEQUENTIAL)
	return data, unix.Munmap, nil
}
