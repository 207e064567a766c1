package mapping_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dargueta/pzip/errors"
	"github.com/dargueta/pzip/mapping"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name string, data []byte) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestOpen__Basic(t *testing.T) {
	contents := []byte("aaaaabbbccccccccd")
	path := writeFile(t, "input.txt", contents)

	file, err := mapping.Open(path, 3)
	require.NoError(t, err)
	defer file.Release()

	assert.Equal(t, path, file.Name)
	assert.Equal(t, 3, file.Index)
	assert.Equal(t, -1, file.Ordinal, "ordinal is set before layout")
	assert.Equal(t, len(contents), file.Size())
	assert.Equal(t, contents, file.Data())
}

func TestOpen__EmptyFileIsNotMapped(t *testing.T) {
	path := writeFile(t, "empty.txt", nil)

	file, err := mapping.Open(path, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, file.Size())
	assert.Nil(t, file.Data())
	assert.True(t, file.FullyMerged())
	assert.NoError(t, file.Release())
}

func TestOpen__Missing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.txt")

	file, err := mapping.Open(path, 0)
	require.Error(t, err)
	assert.Nil(t, file)

	var resErr errors.ResourceError
	require.ErrorAs(t, err, &resErr)
	assert.Equal(t, errors.ENOENT, resErr.Errno())
	assert.Equal(t, "open", resErr.Op())
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "open error: ")
}

func TestOpen__Directory(t *testing.T) {
	_, err := mapping.Open(t.TempDir(), 0)
	require.Error(t, err)
	assert.Equal(t, errors.EISDIR, errors.FromError(err))
}

func TestRelease__Idempotent(t *testing.T) {
	path := writeFile(t, "input.bin", []byte{1, 2, 3, 4})
	file, err := mapping.Open(path, 0)
	require.NoError(t, err)

	assert.False(t, file.Released())
	assert.NoError(t, file.Release())
	assert.True(t, file.Released())
	assert.Nil(t, file.Data(), "data still reachable after release")
	assert.Equal(t, 4, file.Size(), "size should survive release")
	assert.NoError(t, file.Release(), "second release should be a no-op")
}

func TestMarkMerged(t *testing.T) {
	file := mapping.FromBytes("buffer", 0, make([]byte, 25))
	file.SetLayout(4, 3)
	assert.Equal(t, 4, file.Ordinal)
	assert.Equal(t, 3, file.NumChunks)

	done, err := file.MarkMerged(0)
	require.NoError(t, err)
	assert.False(t, done)

	done, err = file.MarkMerged(2)
	require.NoError(t, err)
	assert.False(t, done)
	assert.False(t, file.FullyMerged())

	_, err = file.MarkMerged(2)
	assert.Error(t, err, "merging a chunk twice should fail")

	_, err = file.MarkMerged(3)
	assert.Error(t, err, "merging a chunk past the end should fail")

	done, err = file.MarkMerged(1)
	require.NoError(t, err)
	assert.True(t, done)
	assert.True(t, file.FullyMerged())
}

func TestFromBytes__ReleaseIsNoOp(t *testing.T) {
	data := []byte("hello")
	file := mapping.FromBytes("greeting", 1, data)

	assert.Equal(t, data, file.Data())
	assert.NoError(t, file.Release())
	assert.Equal(t, []byte("hello"), data, "caller's buffer was touched")
}
