package compression

import (
	"bufio"
	"errors"
	"io"
)

// RunLengthGrouper reads a byte stream and returns it one run at a time.
type RunLengthGrouper struct {
	rd *bufio.Reader
}

func NewRLEGrouper(rd io.Reader) RunLengthGrouper {
	return RunLengthGrouper{rd: bufio.NewReader(rd)}
}

// GetNextRun returns a [ByteRun] for the next byte or run of byte values in the
// stream. At the end of the stream it returns [InvalidRLERun] and [io.EOF].
func (grouper RunLengthGrouper) GetNextRun() (ByteRun, error) {
	firstByte, err := grouper.rd.ReadByte()
	// Bail if any error occurred, including EOF.
	if err != nil {
		return InvalidRLERun, err
	}

	var runLength int
	for runLength = 1; ; runLength++ {
		currentByte, err := grouper.rd.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return InvalidRLERun, err
		}
		if currentByte != firstByte {
			// Hit a different byte, back up and return.
			grouper.rd.UnreadByte()
			break
		}
	}
	return ByteRun{Byte: firstByte, RunLength: runLength}, nil
}

// CompressStream is the sequential reference compressor. It reads `input` until
// EOF and returns every run in order.
//
// Feeding it several files one after the other through [io.MultiReader] gives
// the same runs the parallel pipeline produces for those files.
func CompressStream(input io.Reader) ([]ByteRun, error) {
	grouper := NewRLEGrouper(input)

	var runs []ByteRun
	for {
		run, err := grouper.GetNextRun()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return runs, nil
			}
			return runs, err
		}
		runs = append(runs, run)
	}
}
