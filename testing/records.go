package testing

import (
	"bytes"
	"io"
	"testing"

	"github.com/dargueta/pzip/utilities/compression"
	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/bytesextra"
)

// ExpandRecords decodes a stream of encoded records and returns the original
// bytes. It fails the test if the stream is malformed.
func ExpandRecords(t *testing.T, encoded []byte) []byte {
	var output bytes.Buffer
	_, err := compression.Expand(bytes.NewReader(encoded), &output)
	require.NoError(t, err, "failed to expand records")
	return output.Bytes()
}

// LoadExpanded decodes `encoded` and returns a stream over the result.
//
//   - Writes to the stream do not affect `encoded`.
//   - The stream's size is fixed to `expectedSize`. Writing past the end of it
//     triggers an error.
func LoadExpanded(t *testing.T, encoded []byte, expectedSize int) io.ReadWriteSeeker {
	require.Equal(
		t, 0, len(encoded)%compression.RecordSize, "record stream has a partial record")

	expanded := ExpandRecords(t, encoded)
	require.Equal(t, expectedSize, len(expanded), "expanded data is wrong size")
	return bytesextra.NewReadWriteSeeker(expanded)
}
