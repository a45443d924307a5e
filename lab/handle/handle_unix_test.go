//go:build unix

package handle

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandle_FileMapped(t *testing.T) {
	dir := t.TempDir()
	h := newHandle(t, FileMapped, Options{TempDir: dir})

	require.NotEmpty(t, h.Path())
	_, err := os.Stat(h.Path())
	assert.True(t, os.IsNotExist(err), "backing file must be gone after construction")
	require.Len(t, h.Bytes(), testSize, "mapping must remain exactly n bytes")
	assert.Zero(t, h.Bytes()[testSize-1])

	require.NoError(t, h.Destroy())
	assert.Nil(t, h.Bytes())
	assert.Empty(t, h.Path())
}

func TestHandle_AnonMapped(t *testing.T) {
	h := newHandle(t, AnonMapped, Options{})
	require.Len(t, h.Bytes(), testSize)
	assert.Empty(t, h.Path())
	require.NoError(t, h.Destroy())
}

func TestHandle_AnonMappedTouched(t *testing.T) {
	h := newHandle(t, AnonMappedTouched, Options{Sentinel: 0x11})
	data := h.Bytes()
	require.Len(t, data, testSize)
	assert.True(t, allEqual(data, 0x11), "touched mapping must read back as the sentinel")
	require.NoError(t, h.Destroy())
}

func TestHandle_FileMappedBadDir(t *testing.T) {
	_, err := New("file", FileMapped, testSize, Options{TempDir: filepath.Join(t.TempDir(), "missing")})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConstructionFailed))

	var pathErr *os.PathError
	assert.True(t, errors.As(err, &pathErr), "cause should survive marking: %v", err)
}
