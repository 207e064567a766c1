// Package pzip compresses files with run-length encoding, using every processor
// on the machine.
//
// Inputs are split into fixed-size chunks that are compressed in parallel. The
// results are merged back in order, so the output is exactly what compressing
// the concatenation of all inputs in one pass would have produced: runs that
// cross a chunk boundary, or even a file boundary, come out as one run.
//
// The output is a sequence of 5-byte records, a 32-bit little-endian run length
// followed by the byte value. See [compression.RecordWriter].
package pzip

import (
	"fmt"
	"io"

	"github.com/dargueta/pzip/errors"
	"github.com/dargueta/pzip/mapping"
	"github.com/dargueta/pzip/pipeline"
	"github.com/dargueta/pzip/sysinfo"
	"github.com/dargueta/pzip/utilities/compression"
	"go.uber.org/zap"
)

type settings struct {
	workers   int
	chunkSize int
	logger    *zap.Logger
}

// Option changes how a compression run is carried out. No option changes the
// output.
type Option func(*settings) error

// WithWorkers sets the number of goroutines compressing chunks. The default is
// the number of online processors.
func WithWorkers(workers int) Option {
	return func(s *settings) error {
		if workers < 1 {
			return ErrInvalidArgument.WithMessage(
				fmt.Sprintf("worker count must be positive, got %d", workers))
		}
		s.workers = workers
		return nil
	}
}

// WithChunkSize sets the size of a unit of work, in bytes. The default is the
// size of a memory page.
func WithChunkSize(chunkSize int) Option {
	return func(s *settings) error {
		if chunkSize < 1 {
			return ErrInvalidArgument.WithMessage(
				fmt.Sprintf("chunk size must be positive, got %d", chunkSize))
		}
		s.chunkSize = chunkSize
		return nil
	}
}

// WithLogger sends debug diagnostics to `logger`. By default nothing is logged.
func WithLogger(logger *zap.Logger) Option {
	return func(s *settings) error {
		if logger == nil {
			logger = zap.NewNop()
		}
		s.logger = logger
		return nil
	}
}

// Summary describes a completed compression run.
type Summary struct {
	// BytesWritten is the size of the output.
	BytesWritten int64
	// Runs is the number of runs in the output, before any splitting of runs
	// too long for one record.
	Runs int
	// Files describes each input in argument order.
	Files []pipeline.FileStats
}

func buildSettings(options []Option) (settings, error) {
	s := settings{
		workers:   sysinfo.ProcessorCount(),
		chunkSize: sysinfo.PageSize(),
		logger:    zap.NewNop(),
	}
	for _, option := range options {
		if err := option(&s); err != nil {
			return s, err
		}
	}
	return s, nil
}

// CompressFiles compresses the files at `paths` as if they were one stream and
// writes the records to `output`. Empty files are skipped.
//
// Failing to map or unmap an input gives an [errors.ResourceError]. Failing to
// write gives an error matching [ErrWriteFailed]. Nothing is written unless
// every input was compressed.
func CompressFiles(output io.Writer, paths []string, options ...Option) (*Summary, error) {
	return compress(output, paths, pipeline.OpenFile, options)
}

// CompressBytes is like [CompressFiles] but takes its inputs from memory. The
// buffers must not be modified until it returns.
func CompressBytes(output io.Writer, inputs [][]byte, options ...Option) (*Summary, error) {
	names := make([]string, len(inputs))
	for i := range inputs {
		names[i] = fmt.Sprintf("input[%d]", i)
	}

	open := func(name string, index int) (*mapping.File, error) {
		return mapping.FromBytes(name, index, inputs[index]), nil
	}
	return compress(output, names, open, options)
}

func compress(
	output io.Writer, names []string, open func(string, int) (*mapping.File, error), options []Option,
) (*Summary, error) {
	if len(names) == 0 {
		return nil, ErrNoInputFiles
	}

	s, err := buildSettings(options)
	if err != nil {
		return nil, err
	}

	result, err := pipeline.Run(
		pipeline.Config{
			Workers:   s.workers,
			ChunkSize: s.chunkSize,
			Open:      open,
			Logger:    s.logger,
		},
		names,
	)
	if err != nil {
		return nil, err
	}

	writer := compression.NewRecordWriter(output)
	written, err := writer.WriteRuns(result.Runs)
	if err != nil {
		return nil, ErrWriteFailed.Wrap(errors.NewFromError("write", "output", err))
	}

	s.logger.Debug(
		"compression finished",
		zap.Int("files", len(names)),
		zap.Int("runs", len(result.Runs)),
		zap.Int64("bytes", written),
	)
	return &Summary{
		BytesWritten: written,
		Runs:         len(result.Runs),
		Files:        result.Files,
	}, nil
}
