// Package handle provides the ownership capsule for a single live allocation.
//
// A Handle is a closed variant: it holds a heap buffer, a memory mapping or a
// stack-resident worker, selected by its Strategy. Callers see only its name,
// a few descriptive accessors and Destroy, which returns once the resource is
// released.
package handle

import (
	"os"
	"runtime/debug"

	"github.com/cockroachdb/errors"
	"github.com/joshuapare/memlab/internal/mmfile"
	"github.com/joshuapare/memlab/lab/stack"
)

// DefaultSentinel is the fill byte used to force pages to be committed.
const DefaultSentinel byte = 0x2a

// Options carries the construction parameters shared by every strategy.
type Options struct {
	Sentinel byte   // fill byte; DefaultSentinel when zero
	TempDir  string // directory for FileMapped backing files; os.TempDir when empty
}

func (o Options) sentinel() byte {
	if o.Sentinel == 0 {
		return DefaultSentinel
	}
	return o.Sentinel
}

// Handle owns exactly one allocation.
type Handle struct {
	name     string
	strategy Strategy
	size     int

	// Exactly one of these is set, according to strategy.Kind().
	heap   []byte
	region *mmfile.Region
	worker *stack.Worker

	destroyed bool
}

// New provisions size bytes using strategy s. Failures are marked
// ErrConstructionFailed and leave nothing allocated.
func New(name string, s Strategy, size int, opts Options) (*Handle, error) {
	if !s.Valid() {
		return nil, errors.Mark(errors.Wrapf(ErrUnknownStrategy, "value %d", uint8(s)), ErrConstructionFailed)
	}
	if size <= 0 {
		return nil, errors.Mark(errors.Newf("handle: invalid size %d for %q", size, name), ErrConstructionFailed)
	}

	h := &Handle{name: name, strategy: s, size: size}
	var err error
	switch s {
	case StackResident:
		h.worker, err = stack.Spawn(size, opts.sentinel())
	case HeapZeroed:
		h.heap, err = makeHeap(size, size)
	case HeapFilled:
		if h.heap, err = makeHeap(size, size); err == nil {
			Fill(h.heap, opts.sentinel())
		}
	case HeapUninitialized:
		// Capacity only: the bytes are reserved but never written.
		h.heap, err = makeHeap(0, size)
	case FileMapped:
		h.region, err = mmfile.MapTemp(opts.TempDir, size)
	case AnonMapped:
		h.region, err = mmfile.MapAnon(size)
	case AnonMappedTouched:
		if h.region, err = mmfile.MapAnon(size); err == nil {
			Fill(h.region.Bytes(), opts.sentinel())
		}
	}
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "handle: construct %q", name), ErrConstructionFailed)
	}
	return h, nil
}

// makeHeap converts the runtime's length panic into an error. Running out of
// memory is still fatal to the process.
func makeHeap(length, capacity int) (buf []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Newf("handle: heap allocation of %d bytes: %v", capacity, r)
		}
	}()
	return make([]byte, length, capacity), nil
}

// Fill sets every byte of b to v.
func Fill(b []byte, v byte) {
	if len(b) == 0 {
		return
	}
	b[0] = v
	for i := 1; i < len(b); i *= 2 {
		copy(b[i:], b[:i])
	}
}

// Name returns the display name.
func (h *Handle) Name() string { return h.name }

// Strategy returns the provisioning strategy.
func (h *Handle) Strategy() Strategy { return h.strategy }

// Kind returns the resource variant held.
func (h *Handle) Kind() Kind { return h.strategy.Kind() }

// Size returns the requested size in bytes.
func (h *Handle) Size() int { return h.size }

// Destroyed reports whether Destroy has been called.
func (h *Handle) Destroyed() bool { return h.destroyed }

// Bytes exposes the contents of heap and mapped allocations for inspection.
// HeapUninitialized returns a zero-length slice with the full capacity. Stack
// allocations and destroyed handles return nil.
func (h *Handle) Bytes() []byte {
	switch h.Kind() {
	case KindHeap:
		return h.heap
	case KindMapped:
		return h.region.Bytes()
	default:
		return nil
	}
}

// Path returns the unlinked backing file of a FileMapped allocation, or "".
func (h *Handle) Path() string {
	if h.Kind() != KindMapped {
		return ""
	}
	return h.region.Path()
}

// Resident reports how many bytes of a mapped allocation are currently backed
// by physical memory. Heap and stack allocations, and destroyed handles, return
// ErrNoResidency; platforms without mincore return mmfile.ErrUnsupported.
func (h *Handle) Resident() (int, error) {
	if h.Kind() != KindMapped || !h.region.Mapped() {
		return 0, ErrNoResidency
	}
	pages, _, err := mmfile.Resident(h.region.Bytes())
	if err != nil {
		return 0, errors.Wrapf(err, "handle: residency of %q", h.name)
	}
	return min(pages*os.Getpagesize(), h.size), nil
}

// StackState returns the worker state of a stack allocation. Other kinds
// report stack.Terminated.
func (h *Handle) StackState() stack.State {
	if h.worker == nil {
		return stack.Terminated
	}
	return h.worker.State()
}

// Destroy releases the resource and returns once it is gone: heap buffers are
// collected and returned to the OS, mappings are unmapped and stack workers are
// released and joined. Failures are marked ErrReleaseFailed.
func (h *Handle) Destroy() error {
	if h.destroyed {
		return errors.Wrapf(ErrDestroyed, "%q", h.name)
	}
	h.destroyed = true

	var err error
	switch h.Kind() {
	case KindHeap:
		h.heap = nil
		debug.FreeOSMemory()
	case KindMapped:
		err = h.region.Unmap()
		h.region = nil
	case KindStack:
		err = h.worker.Release()
		h.worker = nil
		debug.FreeOSMemory()
	default:
		panic("handle: unknown kind " + h.Kind().String())
	}
	if err != nil {
		return errors.Mark(errors.Wrapf(err, "handle: release %q", h.name), ErrReleaseFailed)
	}
	return nil
}
