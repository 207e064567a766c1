// Package chunker splits input files into fixed-size pieces of work.
//
// Chunks of a file are numbered from 0, with no gaps, and all but the last are
// exactly ChunkSize bytes long. Files are numbered twice: by their position in
// the argument list ([mapping.File.Index]) and by their position among the
// non-empty files ([mapping.File.Ordinal]). Empty files produce no chunks and no
// ordinal, so the merge order never has a hole in it.

package chunker

import (
	"fmt"

	"github.com/dargueta/pzip/mapping"
	"go.uber.org/zap"
)

// WorkItem is one chunk of one file. It borrows the file's bytes; it doesn't
// copy them.
type WorkItem struct {
	// File is the file the chunk belongs to. Its Ordinal and NumChunks are
	// already set when the item is enqueued.
	File *mapping.File
	// Chunk is the index of this chunk within the file, starting from 0.
	Chunk int
	// Offset is the position of the first byte of the chunk within the file.
	Offset int
	// Length is the number of bytes in the chunk.
	Length int
}

// Bytes returns the chunk's data. The slice is shared with every other chunk of
// the file and must not be modified.
func (item WorkItem) Bytes() []byte {
	return item.File.Data()[item.Offset : item.Offset+item.Length]
}

// IsLast returns true if this is the final chunk of its file.
func (item WorkItem) IsLast() bool {
	return item.Chunk == item.File.NumChunks-1
}

// Sink receives work items from the chunker.
type Sink interface {
	Enqueue(item WorkItem) error
	// Close signals that no more items are coming.
	Close()
}

// Opener loads the input named `name`, the `index`th in the argument list.
type Opener func(name string, index int) (*mapping.File, error)

type Chunker struct {
	// ChunkSize is the size of every chunk except possibly the last of each
	// file, in bytes.
	ChunkSize int
	Open      Opener
	Logger    *zap.Logger
}

// NumChunks gives the number of chunks a file of `size` bytes is split into,
// i.e. size / chunkSize rounded up.
func NumChunks(size, chunkSize int) int {
	return (size + chunkSize - 1) / chunkSize
}

// Run opens each input in order and enqueues its chunks to `sink`, then closes
// the sink. It returns every file it opened, empty ones included, in argument
// order.
//
// If opening a file fails, Run closes the sink and returns the files opened so
// far along with the error. Every file it returns has had all of its chunks
// enqueued.
func (chunker *Chunker) Run(names []string, sink Sink) ([]*mapping.File, error) {
	defer sink.Close()

	if chunker.ChunkSize < 1 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", chunker.ChunkSize)
	}

	logger := chunker.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	files := make([]*mapping.File, 0, len(names))
	nextOrdinal := 0

	for index, name := range names {
		file, err := chunker.Open(name, index)
		if err != nil {
			return files, err
		}
		files = append(files, file)

		if file.Size() == 0 {
			logger.Debug("skipping empty file", zap.String("file", name))
			continue
		}

		// The layout has to be on the file before its first chunk is visible
		// to the workers. The sink's lock publishes it along with the item.
		numChunks := NumChunks(file.Size(), chunker.ChunkSize)
		file.SetLayout(nextOrdinal, numChunks)
		nextOrdinal++

		logger.Debug(
			"chunking file",
			zap.String("file", name),
			zap.Int("ordinal", file.Ordinal),
			zap.Int("bytes", file.Size()),
			zap.Int("chunks", numChunks),
		)

		offset := 0
		for chunk := 0; chunk < numChunks; chunk++ {
			length := chunker.ChunkSize
			if chunk == numChunks-1 {
				length = file.Size() - offset
			}

			err := sink.Enqueue(WorkItem{
				File:   file,
				Chunk:  chunk,
				Offset: offset,
				Length: length,
			})
			if err != nil {
				return files, fmt.Errorf(
					"failed to enqueue chunk %d of %q: %w", chunk, name, err)
			}
			offset += length
		}
	}

	return files, nil
}
