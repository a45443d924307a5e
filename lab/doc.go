// Package lab drives an interactive memory-allocation session.
//
// # Overview
//
// memlab lets an operator create and destroy named allocations, each using a
// different provisioning strategy, so that an external monitor (top, smem,
// /proc/<pid>/smaps, a container dashboard) can watch the process footprint
// move. memlab never measures memory itself; it only produces allocations with
// well-defined residency properties.
//
// # Packages
//
//   - lab/catalog: the immutable, ordered list of strategy × size descriptors
//   - lab/handle: the ownership capsule for one live allocation
//   - lab/stack: stack-resident workers and their rendezvous
//   - lab/active: the ordered set of live handles
//   - lab/selection: parsing the operator's signed-integer input
//
// # Strategies
//
//	Stack allocation          worker goroutine stack, filled with the sentinel
//	Heap zeroed               make([]byte, n)
//	Heap non-zero             make([]byte, n) filled with the sentinel
//	Heap uninitialized        make([]byte, 0, n), never written
//	Memory mapped             temp file written, mapped, then unlinked
//	Anonymous mapped          anonymous mapping, untouched
//	Anonymous mapped touched  anonymous mapping filled with the sentinel
//
// # Usage Example
//
//	s := lab.NewSession(catalog.Default())
//	defer s.Close()
//
//	idx, err := s.Create(5) // "Heap zeroed 10M"
//	if err != nil {
//	    return err
//	}
//	// ... watch the footprint ...
//	if err := s.Remove(idx); err != nil {
//	    return err
//	}
//
// # Input Contract
//
// Apply accepts the menu input: n creates catalog entry n, -n removes live
// allocation n, "" or "quit" ends the session. Live indices are stable only
// until the next removal, which shifts higher indices down by one.
//
// # Errors
//
// selection.ErrInvalidNumber and selection.ErrInvalidChoice leave the session
// untouched. handle.ErrConstructionFailed means one attempt failed and nothing
// was added. handle.ErrReleaseFailed means the teardown guarantee is broken;
// IsFatal reports it and callers should stop.
//
// # Thread Safety
//
// A Session has a single controller and is not safe for concurrent use.
package lab
