// Package pipeline runs the parallel compressor: one goroutine splits the inputs
// into chunks while a pool of workers compresses them and merges the results in
// order.
//
// Everything the goroutines share lives on a [pipeline] value created per run;
// there is no package-level state.
package pipeline

import (
	"fmt"

	"github.com/dargueta/pzip/mapping"
	"github.com/dargueta/pzip/pipeline/chunker"
	"github.com/dargueta/pzip/pipeline/merger"
	"github.com/dargueta/pzip/pipeline/workqueue"
	c "github.com/dargueta/pzip/utilities/compression"
	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Config controls a single run. Neither Workers nor ChunkSize affect the output,
// only how the work is divided.
type Config struct {
	// Workers is the number of compressing goroutines. Must be at least 1.
	Workers int
	// ChunkSize is the size of a unit of work, in bytes. Must be at least 1.
	ChunkSize int
	// Open loads an input by name. If nil, inputs are memory-mapped files.
	Open chunker.Opener
	// Logger receives debug diagnostics. If nil, nothing is logged.
	Logger *zap.Logger
}

// Result is the outcome of a successful run.
type Result struct {
	// Runs is the compressed form of the concatenation of all inputs.
	Runs []c.ByteRun
	// Files describes each input, in argument order.
	Files []FileStats
}

type pipeline struct {
	queue  *workqueue.Queue[chunker.WorkItem]
	merger *merger.Merger
	logger *zap.Logger
}

// OpenFile is the default [chunker.Opener]; it memory-maps the file at `name`.
func OpenFile(name string, index int) (*mapping.File, error) {
	return mapping.Open(name, index)
}

// Run compresses every input in `names` and returns the merged runs.
//
// If any input can't be loaded, the run stops taking new files, lets the workers
// finish what was already queued, releases everything, and returns the error.
func Run(config Config, names []string) (*Result, error) {
	if config.Workers < 1 {
		return nil, fmt.Errorf("worker count must be positive, got %d", config.Workers)
	}
	if config.ChunkSize < 1 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", config.ChunkSize)
	}

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	open := config.Open
	if open == nil {
		open = OpenFile
	}

	p := &pipeline{
		queue:  workqueue.New[chunker.WorkItem](),
		merger: merger.New(config.Workers, logger),
		logger: logger,
	}
	splitter := chunker.Chunker{
		ChunkSize: config.ChunkSize,
		Open:      open,
		Logger:    logger,
	}

	var files []*mapping.File
	var group errgroup.Group

	// The chunker closes the queue when it returns, whether or not it failed,
	// so the workers always get to drain it and stop.
	group.Go(func() error {
		var err error
		files, err = splitter.Run(names, p.queue)
		return err
	})
	for id := 0; id < config.Workers; id++ {
		workerID := id
		group.Go(func() error {
			return p.work(workerID)
		})
	}

	runErr := group.Wait()

	// On success the workers have already released every file; this catches
	// the ones left over after a failure.
	var releaseErr error
	for _, file := range files {
		if err := file.Release(); err != nil {
			releaseErr = multierror.Append(releaseErr, err)
		}
	}

	if runErr != nil {
		if releaseErr != nil {
			return nil, multierror.Append(runErr, releaseErr)
		}
		return nil, runErr
	}
	if releaseErr != nil {
		return nil, releaseErr
	}

	return &Result{
		Runs:  p.merger.Result(),
		Files: collectStats(files),
	}, nil
}

// work is the loop each worker runs until the queue is closed and empty.
func (p *pipeline) work(id int) error {
	logger := p.logger.With(zap.Int("worker", id))
	logger.Debug("worker started")

	var errs error
	chunks := 0
	for {
		item, ok := p.queue.Dequeue()
		if !ok {
			break
		}

		runs := c.Compress(item.Bytes())
		fileDone, err := p.merger.Merge(item, runs)
		chunks++
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}

		// Nothing refers to the file's bytes once all of its chunks are merged.
		// Keep going after a failure so the rest of the queue still drains.
		if fileDone {
			if err := item.File.Release(); err != nil {
				errs = multierror.Append(errs, err)
			}
		}
	}

	logger.Debug("worker finished", zap.Int("chunks", chunks))
	return errs
}
