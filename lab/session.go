package lab

import (
	"github.com/cockroachdb/errors"
	"github.com/joshuapare/memlab/internal/logger"
	"github.com/joshuapare/memlab/lab/active"
	"github.com/joshuapare/memlab/lab/catalog"
	"github.com/joshuapare/memlab/lab/handle"
	"github.com/joshuapare/memlab/lab/selection"
)

// Allocation describes one live allocation for display.
type Allocation struct {
	Index    int
	Name     string
	Strategy handle.Strategy
	Size     int

	// Resident is the mapped byte count backed by physical memory. It is only
	// meaningful when ResidentKnown is set (mappings on Linux).
	Resident      int
	ResidentKnown bool
}

// Session is the single controller over a catalog and its live allocations.
type Session struct {
	catalog *catalog.Catalog
	active  *active.Set[*handle.Handle]
}

// NewSession starts an empty session over c.
func NewSession(c *catalog.Catalog) *Session {
	return &Session{
		catalog: c,
		active:  active.New[*handle.Handle](),
	}
}

// Catalog returns the session's catalog.
func (s *Session) Catalog() *catalog.Catalog { return s.catalog }

// Len returns the number of live allocations.
func (s *Session) Len() int { return s.active.Len() }

// Allocations lists the live allocations with their current 1-based indices.
func (s *Session) Allocations() []Allocation {
	handles := s.active.All()
	out := make([]Allocation, len(handles))
	for i, h := range handles {
		a := Allocation{Index: i + 1, Name: h.Name(), Strategy: h.Strategy(), Size: h.Size()}
		if n, err := h.Resident(); err == nil {
			a.Resident, a.ResidentKnown = n, true
		}
		out[i] = a
	}
	return out
}

// RequestedBytes sums the sizes of the live allocations. It is bookkeeping,
// not a measurement of the process footprint.
func (s *Session) RequestedBytes() int {
	total := 0
	for _, h := range s.active.All() {
		total += h.Size()
	}
	return total
}

// Create constructs catalog entry index and appends it, returning its live
// index. An unknown index is ErrInvalidChoice; a failed construction adds
// nothing.
func (s *Session) Create(index int) (int, error) {
	d, err := s.catalog.Get(index)
	if err != nil {
		return 0, errors.Mark(err, selection.ErrInvalidChoice)
	}

	h, err := d.Construct()
	if err != nil {
		logger.Warn("allocation failed", "entry", index, "name", d.Name, "error", err)
		return 0, err
	}

	live := s.active.Append(h)
	logger.Info("allocation created",
		"entry", index, "name", d.Name, "strategy", d.Strategy.String(), "size", d.Size, "index", live)
	logger.MemStats("memory after create", "index", live, "requested", s.RequestedBytes())
	return live, nil
}

// Remove destroys live allocation index and returns once its memory is
// released. An unknown index is ErrInvalidChoice.
func (s *Session) Remove(index int) error {
	h, err := s.active.At(index)
	if err != nil {
		return errors.Mark(err, selection.ErrInvalidChoice)
	}

	if err := s.active.RemoveAt(index); err != nil {
		logger.Error("allocation release failed", "index", index, "name", h.Name(), "error", err)
		return err
	}
	logger.Info("allocation removed", "index", index, "name", h.Name(), "size", h.Size())
	logger.MemStats("memory after remove", "index", index, "requested", s.RequestedBytes())
	return nil
}

// Apply parses one line of menu input and carries it out. The returned choice
// is valid whenever the error is nil; a Quit choice changes nothing.
func (s *Session) Apply(input string) (selection.Choice, error) {
	choice, err := selection.Parse(input, s.catalog.Len(), s.active.Len())
	if err != nil {
		logger.Debug("selection rejected", "input", input, "error", err)
		return choice, err
	}

	switch choice.Action {
	case selection.Create:
		_, err = s.Create(choice.Index)
	case selection.Remove:
		err = s.Remove(choice.Index)
	}
	return choice, err
}

// Close destroys every live allocation, newest first.
func (s *Session) Close() error {
	n := s.active.Len()
	if err := s.active.Clear(); err != nil {
		logger.Error("session teardown failed", "allocations", n, "error", err)
		return err
	}
	if n > 0 {
		logger.Info("session closed", "released", n)
	}
	return nil
}

// IsFatal reports whether err means a resource could not be released, after
// which memory observations can no longer be trusted.
func IsFatal(err error) bool {
	return errors.Is(err, handle.ErrReleaseFailed)
}
