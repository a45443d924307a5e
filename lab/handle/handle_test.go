package handle

import (
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/joshuapare/memlab/lab/stack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSize = 1 << 20

func newHandle(t *testing.T, s Strategy, opts Options) *Handle {
	t.Helper()
	h, err := New(s.Label(), s, testSize, opts)
	require.NoError(t, err, "New(%s)", s)
	require.Equal(t, s.Kind(), h.Kind())
	return h
}

func allEqual(b []byte, v byte) bool {
	for _, c := range b {
		if c != v {
			return false
		}
	}
	return true
}

func TestHandle_HeapZeroed(t *testing.T) {
	h := newHandle(t, HeapZeroed, Options{})
	data := h.Bytes()
	require.Len(t, data, testSize)
	assert.True(t, allEqual(data, 0), "heap zeroed must read back as zero")
	require.NoError(t, h.Destroy())
	assert.Nil(t, h.Bytes())
}

func TestHandle_HeapFilled(t *testing.T) {
	h := newHandle(t, HeapFilled, Options{Sentinel: 0x5a})
	data := h.Bytes()
	require.Len(t, data, testSize)
	assert.True(t, allEqual(data, 0x5a), "heap filled must read back as the sentinel")
	require.NoError(t, h.Destroy())
}

func TestHandle_HeapUninitialized(t *testing.T) {
	h := newHandle(t, HeapUninitialized, Options{})
	data := h.Bytes()
	assert.Len(t, data, 0)
	assert.Equal(t, testSize, cap(data), "capacity holds the reservation")
	assert.Equal(t, testSize, h.Size())
	require.NoError(t, h.Destroy())
}

func TestHandle_DefaultSentinel(t *testing.T) {
	h := newHandle(t, HeapFilled, Options{})
	assert.True(t, allEqual(h.Bytes(), DefaultSentinel))
	require.NoError(t, h.Destroy())
}

func TestHandle_InvalidArguments(t *testing.T) {
	_, err := New("bad", Strategy(0), testSize, Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConstructionFailed))
	assert.True(t, errors.Is(err, ErrUnknownStrategy))

	_, err = New("empty", HeapZeroed, 0, Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConstructionFailed))

	_, err = New("huge", HeapUninitialized, -1, Options{})
	assert.True(t, errors.Is(err, ErrConstructionFailed))

	_, err = New("too deep", StackResident, stack.MaxSize+1, Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConstructionFailed))
	assert.True(t, errors.Is(err, stack.ErrInvalidSize))
}

func TestHandle_StackResident(t *testing.T) {
	base := stack.Live()

	h := newHandle(t, StackResident, Options{})
	assert.Nil(t, h.Bytes(), "stack contents are not exposed")
	require.Eventually(t, func() bool { return h.StackState() == stack.Running }, 5*time.Second, time.Millisecond)
	assert.Equal(t, base+1, stack.Live())

	require.NoError(t, h.Destroy())
	assert.Equal(t, stack.Terminated, h.StackState())
	assert.Equal(t, base, stack.Live(), "worker must be joined before Destroy returns")
}

func TestHandle_DoubleDestroy(t *testing.T) {
	h := newHandle(t, HeapZeroed, Options{})
	require.NoError(t, h.Destroy())
	assert.True(t, h.Destroyed())

	err := h.Destroy()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDestroyed))
	assert.False(t, errors.Is(err, ErrReleaseFailed))
}

func TestFill(t *testing.T) {
	for _, n := range []int{0, 1, 2, 3, 7, 4096, 4097} {
		b := make([]byte, n)
		Fill(b, 0xab)
		assert.True(t, allEqual(b, 0xab), "Fill of %d bytes", n)
	}
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "heap", KindHeap.String())
	assert.Equal(t, "mapped", KindMapped.String())
	assert.Equal(t, "stack", KindStack.String())
	assert.Equal(t, "unknown", Kind(0).String())
}

func TestHandle_ResidentOnlyForMappings(t *testing.T) {
	for _, s := range []Strategy{HeapZeroed, HeapFilled, StackResident} {
		h := newHandle(t, s, Options{})
		_, err := h.Resident()
		assert.True(t, errors.Is(err, ErrNoResidency), "%s: %v", s, err)
		require.NoError(t, h.Destroy())
	}
}
