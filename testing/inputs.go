// Package testing holds helpers shared by the test suites. Import it under a
// different name, e.g. pziptest, to keep it apart from the standard library's
// package of the same name.
package testing

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// RunHeavyBytes returns `size` bytes drawn from a small alphabet in runs of
// random length, so that they actually compress. The same seed always gives
// the same bytes.
func RunHeavyBytes(size int, seed int64) []byte {
	source := rand.New(rand.NewSource(seed))
	data := make([]byte, 0, size)

	for len(data) < size {
		value := byte('a' + source.Intn(4))
		runLength := 1 + source.Intn(40)
		for i := 0; i < runLength && len(data) < size; i++ {
			data = append(data, value)
		}
	}
	return data
}

// RandomBytes returns `size` uniformly random bytes. The same seed always gives
// the same bytes.
func RandomBytes(size int, seed int64) []byte {
	data := make([]byte, size)
	rand.New(rand.NewSource(seed)).Read(data)
	return data
}

// WriteTempFiles writes each element of `contents` to its own file in a
// temporary directory and returns the paths in the same order. The directory
// is removed when the test ends.
func WriteTempFiles(t *testing.T, contents ...[]byte) []string {
	directory := t.TempDir()
	paths := make([]string, len(contents))

	for i, data := range contents {
		paths[i] = filepath.Join(directory, fmt.Sprintf("input-%03d.bin", i))
		err := os.WriteFile(paths[i], data, 0o644)
		require.NoErrorf(t, err, "failed to write temp file %d", i)
	}
	return paths
}
