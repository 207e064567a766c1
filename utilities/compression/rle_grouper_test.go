package compression_test

import (
	"bytes"
	"crypto/rand"
	"io"
	"testing"

	c "github.com/dargueta/pzip/utilities/compression"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type BasicTestCase struct {
	Data           []byte
	ExpectedResult c.ByteRun
	Name           string
}

var basicTestCases = []BasicTestCase{
	{[]byte{}, c.InvalidRLERun, "empty"},
	{[]byte{0, 0, 1, 0, 0, 0, 0}, c.ByteRun{Byte: byte(0), RunLength: 2}, "two initial"},
	{[]byte{6, 1, 5, 20, 31}, c.ByteRun{Byte: byte(6), RunLength: 1}, "one byte"},
	{[]byte{9, 9, 9, 9, 9, 9}, c.ByteRun{Byte: byte(9), RunLength: 6}, "entire run"},
}

func runBasicTestCase(t *testing.T, test BasicTestCase) {
	grouper := c.NewRLEGrouper(bytes.NewBuffer(test.Data))
	result, _ := grouper.GetNextRun()
	if result != test.ExpectedResult {
		t.Errorf("Expected %+v, got %+v", test.ExpectedResult, result)
	}
}

func TestRLEGrouper__Basic(t *testing.T) {
	for _, test := range basicTestCases {
		t.Run(
			test.Name,
			func(t *testing.T) {
				runBasicTestCase(t, test)
			},
		)
	}
}

func TestRLEGrouper__Sequence(t *testing.T) {
	data := []byte{1, 9, 4, 4, 4, 4, 4, 6, 6, 0, 1, 0, 0, 0}
	expected := []c.ByteRun{
		{byte(1), 1}, {byte(9), 1}, {byte(4), 5}, {byte(6), 2}, {byte(0), 1},
		{byte(1), 1}, {byte(0), 3}, c.InvalidRLERun,
	}

	buffer := bytes.NewBuffer(data)
	grouper := c.NewRLEGrouper(buffer)
	for i, expectedRun := range expected {
		result, err := grouper.GetNextRun()
		if result != expectedRun {
			t.Errorf(
				"run %d is wrong: expected %+v but got %+v",
				i,
				expectedRun,
				result,
			)
		}
		if expectedRun == c.InvalidRLERun && err != io.EOF {
			t.Errorf("expected err to be io.EOF, got %v", err)
		}
	}
}

// The sequential compressor and the per-chunk compressor agree on any single
// buffer.
func TestCompressStream__MatchesCompress(t *testing.T) {
	data := make([]byte, 3000)
	rand.Read(data)
	for i := range data {
		data[i] &= 0x01
	}

	runs, err := c.CompressStream(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, c.Compress(data), runs)
}

// Runs continue across reader boundaries, as if the inputs were one file.
func TestCompressStream__MultipleReaders(t *testing.T) {
	input := io.MultiReader(
		bytes.NewReader([]byte("aaaaabbbb")),
		bytes.NewReader([]byte{}),
		bytes.NewReader([]byte("bbccc")),
	)

	runs, err := c.CompressStream(input)
	require.NoError(t, err)
	assert.Equal(t, []c.ByteRun{{'a', 5}, {'b', 6}, {'c', 3}}, runs)
}
