package compression

// ByteRun represents a single run of a particular byte value.
type ByteRun struct {
	// Byte is the byte value for this run.
	Byte byte
	// RunLength gives the number of times the byte occurs in the run (not the
	// number of times it's repeated).
	//
	// A valid run will always have this be 1 or greater. A value less than 1
	// indicates either EOF was encountered, or an error occurred.
	RunLength int
}

// InvalidRLERun is returned by functions that produce a single run when there
// is no run to return.
var InvalidRLERun = ByteRun{Byte: 0, RunLength: 0}

// Compress run-length encodes one chunk of data. An empty chunk gives an empty
// (nil) slice.
//
// The result never contains two adjacent runs with the same byte. Runs that
// continue across the edges of the chunk are not visible here; joining them is
// the job of whoever stitches the chunks back together (see [AppendRuns]).
func Compress(chunk []byte) []ByteRun {
	if len(chunk) == 0 {
		return nil
	}

	// Most real data has long runs, so start small and let append grow it.
	runs := make([]ByteRun, 0, 16)
	current := chunk[0]
	count := 1

	for _, b := range chunk[1:] {
		if b == current {
			count++
			continue
		}
		runs = append(runs, ByteRun{Byte: current, RunLength: count})
		current = b
		count = 1
	}
	return append(runs, ByteRun{Byte: current, RunLength: count})
}

// AppendRuns appends `incoming` to `sequence` and returns the extended slice.
// If the last run of `sequence` and the first run of `incoming` have the same
// byte, they're merged into one run so that the result stays fully coalesced.
//
// `incoming` is not modified.
func AppendRuns(sequence []ByteRun, incoming []ByteRun) []ByteRun {
	if len(incoming) == 0 {
		return sequence
	}
	if len(sequence) == 0 {
		return append(sequence, incoming...)
	}

	tail := &sequence[len(sequence)-1]
	if tail.Byte == incoming[0].Byte {
		// The chunk boundary split a run in two. Fold the head of the incoming
		// runs into our tail.
		tail.RunLength += incoming[0].RunLength
		incoming = incoming[1:]
	}
	return append(sequence, incoming...)
}

// TotalLength returns the number of uncompressed bytes the runs represent.
func TotalLength(runs []ByteRun) int64 {
	total := int64(0)
	for _, run := range runs {
		total += int64(run.RunLength)
	}
	return total
}
