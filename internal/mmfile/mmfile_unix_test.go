//go:build unix

package mmfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapTemp_FileGoneMappingValid(t *testing.T) {
	dir := t.TempDir()
	const n = 3*writeStride + 123

	r, err := MapTemp(dir, n)
	require.NoError(t, err)
	defer func() { require.NoError(t, r.Unmap()) }()

	require.Equal(t, n, r.Len())
	require.NotEmpty(t, r.Path())
	assert.Equal(t, dir, filepath.Dir(r.Path()))

	_, statErr := os.Stat(r.Path())
	assert.True(t, os.IsNotExist(statErr), "backing file should be unlinked, got %v", statErr)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "temp dir should be empty")

	data := r.Bytes()
	for i := 0; i < len(data); i += 4096 {
		if data[i] != 0 {
			t.Fatalf("byte %d = 0x%x, want 0", i, data[i])
		}
	}
	assert.Zero(t, data[len(data)-1])
}

func TestMapTemp_BadDir(t *testing.T) {
	_, err := MapTemp(filepath.Join(t.TempDir(), "missing"), 4096)
	require.Error(t, err)
}

func TestMapAnon_Writable(t *testing.T) {
	r, err := MapAnon(1 << 20)
	require.NoError(t, err)
	defer func() { require.NoError(t, r.Unmap()) }()

	require.Equal(t, 1<<20, r.Len())
	assert.Empty(t, r.Path())

	data := r.Bytes()
	data[0] = 0x2a
	data[len(data)-1] = 0x2a
	assert.Equal(t, byte(0x2a), data[0])
	assert.Equal(t, byte(0), data[len(data)/2], "untouched anonymous pages read as zero")
}

func TestMapAnon_InvalidSize(t *testing.T) {
	_, err := MapAnon(0)
	require.Error(t, err)
	_, err = MapTemp(t.TempDir(), -1)
	require.Error(t, err)
}

func TestRegion_DoubleUnmap(t *testing.T) {
	r, err := MapAnon(4096)
	require.NoError(t, err)

	require.True(t, r.Mapped())
	require.NoError(t, r.Unmap())
	assert.False(t, r.Mapped())
	assert.Nil(t, r.Bytes())
	require.NoError(t, r.Unmap(), "second unmap should be a no-op")
}

func TestRegion_NilSafe(t *testing.T) {
	var r *Region
	assert.Nil(t, r.Bytes())
	assert.Zero(t, r.Len())
	assert.Empty(t, r.Path())
	assert.False(t, r.Mapped())
	assert.NoError(t, r.Unmap())
}
