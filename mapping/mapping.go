// Package mapping gives read-only, zero-copy access to input files.
//
// A [File] owns the bytes of one input. Chunks of it are handed to several
// goroutines at once, so the bytes must never be written to. The file also keeps
// track of which of its chunks have been merged into the output; once all of
// them have, nothing refers to the bytes anymore and the mapping can be
// released.

package mapping

import (
	"fmt"
	"os"

	"github.com/boljen/go-bitmap"
	"github.com/dargueta/pzip/errors"
)

// ReleaseFunc frees the memory backing a file's data. It's called at most once.
type ReleaseFunc func(data []byte) error

// File is one input, loaded into memory.
//
// Ordinal and NumChunks are set once by [File.SetLayout] before any chunk of the
// file is given to another goroutine, and never change afterward.
type File struct {
	// Name is the path or label the file was opened with.
	Name string
	// Index is the position of the file in the argument list.
	Index int
	// Ordinal is the position of the file among the non-empty inputs, or -1 if
	// it hasn't been laid out (or is empty).
	Ordinal int
	// NumChunks is the number of chunks the file was split into.
	NumChunks int
	// RunsAppended counts the runs this file's chunks added to the output after
	// coalescing. Only the goroutine holding the merge turn may touch it.
	RunsAppended int

	data        []byte
	size        int
	merged      bitmap.Bitmap
	mergedCount int
	release     ReleaseFunc
	released    bool
}

// FromBytes wraps an in-memory buffer in a [File]. The buffer must not be
// modified while the file is in use. Releasing it does nothing.
func FromBytes(name string, index int, data []byte) *File {
	return &File{
		Name:    name,
		Index:   index,
		Ordinal: -1,
		data:    data,
		size:    len(data),
	}
}

// Open maps the file at `path` into memory, read-only. Empty files aren't
// mapped at all; they come back as a [File] with no data.
//
// All failures are [errors.ResourceError] values.
func Open(path string, index int) (*File, error) {
	handle, err := os.Open(path)
	if err != nil {
		return nil, errors.NewFromError("open", path, err)
	}
	// The mapping stays valid after the descriptor is closed.
	defer handle.Close()

	info, err := handle.Stat()
	if err != nil {
		return nil, errors.NewFromError("fstat", path, err)
	}
	if info.IsDir() {
		return nil, errors.NewWithMessage("open", errors.EISDIR, path)
	}

	file := &File{Name: path, Index: index, Ordinal: -1}
	if info.Size() == 0 {
		return file, nil
	}

	data, release, err := mapReadOnly(handle, info.Size())
	if err != nil {
		return nil, errors.NewFromError("mmap", path, err)
	}
	file.data = data
	file.size = len(data)
	file.release = release
	return file, nil
}

// Size returns the number of bytes in the file. It stays valid after the file is
// released.
func (file *File) Size() int {
	return file.size
}

// Data returns the file's contents. The slice is shared; callers must not
// modify it or keep it after the file is released.
func (file *File) Data() []byte {
	return file.data
}

// SetLayout records where the file sits among the non-empty inputs and how many
// chunks it was split into.
func (file *File) SetLayout(ordinal, numChunks int) {
	file.Ordinal = ordinal
	file.NumChunks = numChunks
	file.merged = bitmap.New(numChunks)
	file.mergedCount = 0
}

// MarkMerged records that chunk `chunk` has been merged into the output. It
// returns true when this was the last unmerged chunk of the file.
//
// Merging a chunk twice, or one that doesn't exist, is an error.
func (file *File) MarkMerged(chunk int) (bool, error) {
	if chunk < 0 || chunk >= file.NumChunks {
		return false, fmt.Errorf(
			"%s: chunk %d not in range [0, %d)", file.Name, chunk, file.NumChunks)
	}
	if file.merged.Get(chunk) {
		return false, fmt.Errorf("%s: chunk %d merged twice", file.Name, chunk)
	}

	file.merged.Set(chunk, true)
	file.mergedCount++
	return file.mergedCount == file.NumChunks, nil
}

// FullyMerged returns true if every chunk of the file has been merged. Empty
// files are trivially fully merged.
func (file *File) FullyMerged() bool {
	return file.mergedCount == file.NumChunks
}

// Release frees the file's data. Calling it more than once is harmless. The
// data must not be used afterward.
func (file *File) Release() error {
	if file.released {
		return nil
	}
	file.released = true

	data := file.data
	file.data = nil
	if file.release == nil || data == nil {
		return nil
	}

	err := file.release(data)
	if err != nil {
		return errors.NewFromError("munmap", file.Name, err)
	}
	return nil
}

// Released returns true once [File.Release] has been called.
func (file *File) Released() bool {
	return file.released
}
