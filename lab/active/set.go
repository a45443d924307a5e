// Package active tracks the allocations that are currently alive.
//
// Indices are 1-based and contiguous. They are stable only until the next
// removal: removing index k shifts every higher index down by one.
package active

import (
	"slices"

	"github.com/cockroachdb/errors"
)

// ErrIndexOutOfRange is returned by RemoveAt and At for indices outside
// [1, Len()].
var ErrIndexOutOfRange = errors.New("active: index out of range")

// Handle is the part of an allocation the set needs: a display name and a
// synchronous release.
type Handle interface {
	Name() string
	Destroy() error
}

// Entry is one row of Entries.
type Entry struct {
	Index int
	Name  string
}

// Set is an ordered collection of live handles. The set owns each handle it
// holds and destroys it on removal. It is not safe for concurrent use.
type Set[H Handle] struct {
	handles []H
}

// New returns an empty set.
func New[H Handle]() *Set[H] {
	return &Set[H]{}
}

// Len returns the number of live handles.
func (s *Set[H]) Len() int { return len(s.handles) }

// Append takes ownership of h and returns its 1-based index.
func (s *Set[H]) Append(h H) int {
	s.handles = append(s.handles, h)
	return len(s.handles)
}

// At returns the handle at the 1-based index without removing it.
func (s *Set[H]) At(index int) (H, error) {
	if err := s.check(index); err != nil {
		var zero H
		return zero, err
	}
	return s.handles[index-1], nil
}

// RemoveAt destroys the handle at the 1-based index and drops it from the set,
// shifting later indices down by one. It returns once the handle's resource is
// released. A release error is returned after the slot has been removed.
func (s *Set[H]) RemoveAt(index int) error {
	if err := s.check(index); err != nil {
		return err
	}
	h := s.handles[index-1]

	s.handles = slices.Delete(s.handles, index-1, index)

	return h.Destroy()
}

// All returns the live handles in index order. The slice is a copy; the
// handles are still owned by the set.
func (s *Set[H]) All() []H {
	return slices.Clone(s.handles)
}

// Entries lists the live handles with their current indices.
func (s *Set[H]) Entries() []Entry {
	out := make([]Entry, len(s.handles))
	for i, h := range s.handles {
		out[i] = Entry{Index: i + 1, Name: h.Name()}
	}
	return out
}

// Clear destroys every handle, newest first, and empties the set. All handles
// are attempted; the first error is returned with the rest attached.
func (s *Set[H]) Clear() error {
	var err error
	for i := len(s.handles) - 1; i >= 0; i-- {
		err = errors.CombineErrors(err, s.handles[i].Destroy())
	}
	clear(s.handles)
	s.handles = s.handles[:0]
	return err
}

func (s *Set[H]) check(index int) error {
	if index < 1 || index > len(s.handles) {
		return errors.Wrapf(ErrIndexOutOfRange, "index %d not in [1, %d]", index, len(s.handles))
	}
	return nil
}
