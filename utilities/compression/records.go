package compression

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

// RecordSize is the size of one encoded run, in bytes.
const RecordSize = 5

// MaxRecordRunLength is the longest run a single record can hold. Longer runs
// are split across several records.
const MaxRecordRunLength = math.MaxUint32

// ErrCorruptRecord is returned when a record has a run length of zero.
var ErrCorruptRecord = errors.New("corrupt record: run length is zero")

// RecordWriter encodes runs as records and writes them to a stream.
type RecordWriter struct {
	stream *bufio.Writer
	record [RecordSize]byte
}

func NewRecordWriter(output io.Writer) *RecordWriter {
	return &RecordWriter{stream: bufio.NewWriter(output)}
}

// WriteRun writes one run, splitting it into multiple records if it's too long
// to fit in one. The return value is the number of bytes written, only valid if
// no error occurred.
func (writer *RecordWriter) WriteRun(run ByteRun) (int64, error) {
	totalBytesWritten := int64(0)
	remaining := int64(run.RunLength)

	for remaining > 0 {
		count := remaining
		if count > MaxRecordRunLength {
			count = MaxRecordRunLength
		}

		binary.LittleEndian.PutUint32(writer.record[:4], uint32(count))
		writer.record[4] = run.Byte

		n, err := writer.stream.Write(writer.record[:])
		totalBytesWritten += int64(n)
		if err != nil {
			return totalBytesWritten, err
		}
		remaining -= count
	}
	return totalBytesWritten, nil
}

// WriteRuns writes every run in order, then flushes. The return value is the
// number of bytes written.
func (writer *RecordWriter) WriteRuns(runs []ByteRun) (int64, error) {
	totalBytesWritten := int64(0)
	for _, run := range runs {
		n, err := writer.WriteRun(run)
		totalBytesWritten += n
		if err != nil {
			return totalBytesWritten, err
		}
	}
	return totalBytesWritten, writer.Flush()
}

// Flush writes any buffered records to the underlying stream.
func (writer *RecordWriter) Flush() error {
	return writer.stream.Flush()
}

// RecordReader decodes records from a stream.
type RecordReader struct {
	stream *bufio.Reader
	record [RecordSize]byte
}

func NewRecordReader(input io.Reader) *RecordReader {
	return &RecordReader{stream: bufio.NewReader(input)}
}

// ReadRun decodes the next record. At the end of the stream it returns
// [InvalidRLERun] and [io.EOF]. A stream that ends partway through a record
// gives an error wrapping [io.ErrUnexpectedEOF].
func (reader *RecordReader) ReadRun() (ByteRun, error) {
	n, err := io.ReadFull(reader.stream, reader.record[:])
	if err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return InvalidRLERun, fmt.Errorf(
				"%w: truncated record, got %d of %d bytes", err, n, RecordSize)
		}
		return InvalidRLERun, err
	}

	count := binary.LittleEndian.Uint32(reader.record[:4])
	if count == 0 {
		return InvalidRLERun, ErrCorruptRecord
	}
	return ByteRun{Byte: reader.record[4], RunLength: int(count)}, nil
}

// DecodeRuns reads every record in `input` and returns the runs in order.
func DecodeRuns(input io.Reader) ([]ByteRun, error) {
	reader := NewRecordReader(input)

	var runs []ByteRun
	for {
		run, err := reader.ReadRun()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return runs, nil
			}
			return runs, err
		}
		runs = append(runs, run)
	}
}

// Expand reads records from `input` and writes the original bytes to `output`.
//
// The returned int64 gives the number of bytes written to the output (i.e. the
// decompressed size). If an error occurred, the value is undefined and should
// not be used.
func Expand(input io.Reader, output io.Writer) (int64, error) {
	reader := NewRecordReader(input)
	totalBytesWritten := int64(0)

	// Long runs are written out in pieces so a single record can't force a
	// multi-gigabyte allocation.
	const maxPiece = 64 * 1024
	var piece []byte

	for {
		run, err := reader.ReadRun()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return totalBytesWritten, nil
			}
			return totalBytesWritten, fmt.Errorf("error reading input: %w", err)
		}

		for run.RunLength > 0 {
			size := run.RunLength
			if size > maxPiece {
				size = maxPiece
			}
			if len(piece) < size || piece[0] != run.Byte {
				piece = bytes.Repeat([]byte{run.Byte}, size)
			}

			n, err := output.Write(piece[:size])
			totalBytesWritten += int64(n)
			if err != nil {
				return totalBytesWritten, fmt.Errorf("failed to write to output: %w", err)
			}
			run.RunLength -= size
		}
	}
}

// ExpandRuns returns the bytes represented by `runs`.
func ExpandRuns(runs []ByteRun) []byte {
	output := make([]byte, 0, TotalLength(runs))
	for _, run := range runs {
		output = append(output, bytes.Repeat([]byte{run.Byte}, run.RunLength)...)
	}
	return output
}
