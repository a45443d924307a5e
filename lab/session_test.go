package lab

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/joshuapare/memlab/internal/sizefmt"
	"github.com/joshuapare/memlab/lab/catalog"
	"github.com/joshuapare/memlab/lab/handle"
	"github.com/joshuapare/memlab/lab/selection"
	"github.com/joshuapare/memlab/lab/stack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestCatalog returns ten small entries: every strategy at 1M plus three
// extra heap rows at 2M.
func newTestCatalog(t *testing.T, tempDir string) *catalog.Catalog {
	t.Helper()
	table := catalog.Table{TempDir: tempDir}
	for _, s := range handle.Strategies() {
		table.Entries = append(table.Entries, catalog.Entry{Strategy: s, Size: sizefmt.MiB})
	}
	for _, s := range []handle.Strategy{handle.HeapZeroed, handle.HeapFilled, handle.HeapUninitialized} {
		table.Entries = append(table.Entries, catalog.Entry{Strategy: s, Size: 2 * sizefmt.MiB})
	}
	c, err := catalog.New(table)
	require.NoError(t, err)
	require.Equal(t, 10, c.Len())
	return c
}

func names(s *Session) []string {
	var out []string
	for _, a := range s.Allocations() {
		out = append(out, a.Name)
	}
	return out
}

// TestSession_CreateRemoveRoundTrip constructs every entry next to an existing
// allocation and removes it again; the live set must come back unchanged.
func TestSession_CreateRemoveRoundTrip(t *testing.T) {
	s := NewSession(newTestCatalog(t, t.TempDir()))
	defer func() { require.NoError(t, s.Close()) }()

	_, err := s.Create(2)
	require.NoError(t, err)
	before := names(s)

	for _, l := range s.Catalog().List() {
		idx, err := s.Create(l.Index)
		require.NoError(t, err, l.Name)
		assert.Equal(t, s.Len(), idx)

		require.NoError(t, s.Remove(idx), l.Name)
		assert.Equal(t, before, names(s), "after removing %s", l.Name)
	}
}

func TestSession_ApplyInputContract(t *testing.T) {
	s := NewSession(newTestCatalog(t, t.TempDir()))
	defer func() { require.NoError(t, s.Close()) }()

	_, err := s.Apply("abc")
	assert.True(t, errors.Is(err, selection.ErrInvalidNumber), "%v", err)

	_, err = s.Apply("0")
	assert.True(t, errors.Is(err, selection.ErrInvalidChoice), "%v", err)

	_, err = s.Apply("11")
	assert.True(t, errors.Is(err, selection.ErrInvalidChoice), "%v", err)

	_, err = s.Apply("-1")
	assert.True(t, errors.Is(err, selection.ErrInvalidChoice), "removing from an empty set: %v", err)
	assert.Zero(t, s.Len(), "rejected input must not change state")

	choice, err := s.Apply("10")
	require.NoError(t, err)
	assert.Equal(t, selection.Choice{Action: selection.Create, Index: 10}, choice)

	choice, err = s.Apply("3")
	require.NoError(t, err)
	assert.Equal(t, []string{"Heap uninitialized 2M", "Heap non-zero 1M"}, names(s))

	choice, err = s.Apply("-1")
	require.NoError(t, err)
	assert.Equal(t, selection.Choice{Action: selection.Remove, Index: 1}, choice)
	assert.Equal(t, []string{"Heap non-zero 1M"}, names(s), "index 2 shifted down to 1")

	for _, in := range []string{"\n", "   ", ""} {
		_, err = s.Apply(in)
		assert.True(t, errors.Is(err, selection.ErrInvalidNumber), "Apply(%q): %v", in, err)
	}
	_, err = s.Apply("-9223372036854775808")
	assert.True(t, errors.Is(err, selection.ErrInvalidChoice), "%v", err)
	assert.Equal(t, []string{"Heap non-zero 1M"}, names(s), "rejected input must not change state")

	choice, err = s.Apply("quit")
	require.NoError(t, err)
	assert.Equal(t, selection.Quit, choice.Action)
	assert.Equal(t, 1, s.Len())
}

func TestSession_ConstructionFailureIsLocal(t *testing.T) {
	s := NewSession(newTestCatalog(t, filepath.Join(t.TempDir(), "missing")))
	defer func() { require.NoError(t, s.Close()) }()

	_, err := s.Create(2)
	require.NoError(t, err)

	idx, ok := s.Catalog().Lookup("Memory mapped 1M")
	require.True(t, ok)
	_, err = s.Create(idx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, handle.ErrConstructionFailed), "%v", err)
	assert.False(t, IsFatal(err))
	assert.Equal(t, 1, s.Len(), "failed attempt must not be added")

	_, err = s.Create(3)
	assert.NoError(t, err, "session continues after a failed attempt")
}

func TestSession_RemoveStackJoinsWorker(t *testing.T) {
	s := NewSession(newTestCatalog(t, t.TempDir()))
	defer func() { require.NoError(t, s.Close()) }()
	base := stack.Live()

	idx, err := s.Create(1)
	require.NoError(t, err)
	assert.Equal(t, base+1, stack.Live())

	require.NoError(t, s.Remove(idx))
	assert.Equal(t, base, stack.Live(), "worker must be gone when Remove returns")
}

func TestSession_CloseReleasesEverything(t *testing.T) {
	s := NewSession(newTestCatalog(t, t.TempDir()))
	base := stack.Live()

	for _, idx := range []int{1, 1, 3, 7} {
		_, err := s.Create(idx)
		require.NoError(t, err)
	}
	require.Eventually(t, func() bool { return stack.Live() == base+2 }, time.Second, time.Millisecond)
	assert.Equal(t, 4*sizefmt.MiB, s.RequestedBytes())

	require.NoError(t, s.Close())
	assert.Zero(t, s.Len())
	assert.Equal(t, base, stack.Live())
	assert.Zero(t, s.RequestedBytes())
}

func TestSession_RemoveOutOfRange(t *testing.T) {
	s := NewSession(newTestCatalog(t, t.TempDir()))
	err := s.Remove(1)
	assert.True(t, errors.Is(err, selection.ErrInvalidChoice))

	_, err = s.Create(99)
	assert.True(t, errors.Is(err, selection.ErrInvalidChoice))
	assert.True(t, errors.Is(err, catalog.ErrNotFound))
}

func TestIsFatal(t *testing.T) {
	err := errors.Mark(errors.New("munmap: EINVAL"), handle.ErrReleaseFailed)
	assert.True(t, IsFatal(errors.Wrap(err, "remove 2")))
	assert.False(t, IsFatal(selection.ErrInvalidChoice))
	assert.False(t, IsFatal(nil))
}
