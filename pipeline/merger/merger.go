// Package merger stitches compressed chunks back together in input order.
//
// Workers finish compressing chunks in whatever order the scheduler lets them,
// but the output must list runs in the order of the input: by file, then by
// chunk within the file. The merger enforces this with a turn, the pair (file
// ordinal, chunk index) that may be appended next. Only the worker whose chunk
// matches the turn, the "baton holder", may touch the result sequence. When it's
// done it passes the turn on: to the next chunk of the same file, or to chunk 0
// of the next file if that was the last chunk.
//
// Waiting workers sleep on one of several condition variables, picked by chunk
// index modulo the number of slots. Passing the turn only wakes the workers
// sleeping on the slot of the new turn.
//
// When a run is cut in two by a chunk boundary, the halves are joined back
// together as the second chunk is appended. This also happens across file
// boundaries: the output is the run-length encoding of the concatenation of all
// the inputs, exactly what a sequential compressor would produce.

package merger

import (
	"fmt"
	"sync"

	"github.com/dargueta/pzip/pipeline/chunker"
	c "github.com/dargueta/pzip/utilities/compression"
	"go.uber.org/zap"
)

// Merger is the single owner of the result sequence.
type Merger struct {
	mu sync.Mutex
	// slots[i] is where workers wait for a turn whose chunk index is i modulo
	// len(slots). All of them share `mu`.
	slots []*sync.Cond
	// file and chunk make up the turn.
	file  int
	chunk int

	// result is only read or written by the baton holder, or after every worker
	// has stopped. It needs no lock of its own: handing over the turn goes
	// through `mu`, which orders each holder's writes before the next holder's.
	result []c.ByteRun
	logger *zap.Logger
}

// New creates a merger with `slotCount` turn slots, normally one per worker. The
// turn starts at chunk 0 of the first non-empty file.
func New(slotCount int, logger *zap.Logger) *Merger {
	if slotCount < 1 {
		slotCount = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	merger := &Merger{
		slots:  make([]*sync.Cond, slotCount),
		logger: logger,
	}
	for i := range merger.slots {
		merger.slots[i] = sync.NewCond(&merger.mu)
	}
	return merger
}

// Merge blocks until it's `item`'s turn, appends `runs` to the result sequence,
// then passes the turn on. It returns true if `item` was the last unmerged chunk
// of its file, meaning the file's data is no longer needed.
//
// Every chunk of every file before `item` must eventually be merged by some
// other goroutine, or this never returns.
func (merger *Merger) Merge(item chunker.WorkItem, runs []c.ByteRun) (bool, error) {
	merger.awaitTurn(item.File.Ordinal, item.Chunk)

	// We hold the baton from here until passTurn.
	before := len(merger.result)
	merger.result = c.AppendRuns(merger.result, runs)
	item.File.RunsAppended += len(merger.result) - before

	fileDone, markErr := item.File.MarkMerged(item.Chunk)

	// Pass the turn on even if the bookkeeping failed, so that the other workers
	// don't hang.
	merger.passTurn(item)

	if markErr != nil {
		return false, fmt.Errorf("merge bookkeeping failed: %w", markErr)
	}
	if fileDone {
		merger.logger.Debug(
			"file merged",
			zap.String("file", item.File.Name),
			zap.Int("ordinal", item.File.Ordinal),
			zap.Int("runs", item.File.RunsAppended),
		)
	}
	return fileDone, nil
}

func (merger *Merger) slotFor(chunk int) *sync.Cond {
	return merger.slots[chunk%len(merger.slots)]
}

// awaitTurn blocks until the turn is (file, chunk).
func (merger *Merger) awaitTurn(file, chunk int) {
	merger.mu.Lock()
	defer merger.mu.Unlock()

	slot := merger.slotFor(chunk)
	for merger.file != file || merger.chunk != chunk {
		slot.Wait()
	}
}

// passTurn advances the turn past `item` and wakes whoever waits for the new
// turn.
func (merger *Merger) passTurn(item chunker.WorkItem) {
	merger.mu.Lock()
	defer merger.mu.Unlock()

	if item.IsLast() {
		merger.file++
		merger.chunk = 0
	} else {
		merger.chunk++
	}
	merger.slotFor(merger.chunk).Broadcast()
}

// Turn returns the (file ordinal, chunk) pair that may be merged next.
func (merger *Merger) Turn() (file int, chunk int) {
	merger.mu.Lock()
	defer merger.mu.Unlock()
	return merger.file, merger.chunk
}

// Result returns the merged run sequence. Call it only after every worker has
// returned from its last [Merger.Merge].
func (merger *Merger) Result() []c.ByteRun {
	return merger.result
}
