package stack

import (
	"runtime"
	"sync/atomic"

	"github.com/cockroachdb/errors"
)

const (
	// FrameChunk is the number of buffer bytes held by each worker frame.
	FrameChunk = 64 << 10

	// MaxSize caps a worker buffer. Goroutine stacks grow by doubling up to
	// 1 GiB on 64-bit platforms, and exceeding that is a fatal error.
	MaxSize = 256 << 20
)

var (
	// ErrInvalidSize is returned by Spawn for sizes outside (0, MaxSize].
	ErrInvalidSize = errors.New("stack: invalid buffer size")

	// ErrZeroSentinel is returned by Spawn when the fill byte is zero.
	ErrZeroSentinel = errors.New("stack: sentinel must be nonzero")

	// ErrJoinFailed marks a worker that did not unwind cleanly.
	ErrJoinFailed = errors.New("stack: worker join failed")

	// ErrReleased is returned by a second Release.
	ErrReleased = errors.New("stack: worker already released")
)

// State is the lifecycle position of a Worker.
type State int32

const (
	Created State = iota
	Running
	Unwinding
	Terminated
)

func (s State) String() string {
	switch s {
	case Created:
		return "created"
	case Running:
		return "running"
	case Unwinding:
		return "unwinding"
	case Terminated:
		return "terminated"
	default:
		return "unknown"
	}
}

var live atomic.Int64

// Live returns the number of workers that have been spawned and not yet
// terminated.
func Live() int { return int(live.Load()) }

type result struct {
	sum uint64
	err error
}

// Worker holds a stack-resident buffer until Release.
type Worker struct {
	size     int
	sentinel byte
	rv       *Rendezvous
	done     chan result
	state    atomic.Int32

	// worker goroutine only
	arrived bool

	// controller only
	joined   bool
	checksum uint64
}

// Spawn starts a worker that commits size bytes of its own stack, filled with
// sentinel, and parks until Release.
func Spawn(size int, sentinel byte) (*Worker, error) {
	if size <= 0 || size > MaxSize {
		return nil, errors.Wrapf(ErrInvalidSize, "%d bytes (max %d)", size, MaxSize)
	}
	if sentinel == 0 {
		return nil, ErrZeroSentinel
	}

	w := &Worker{
		size:     size,
		sentinel: sentinel,
		rv:       NewRendezvous(),
		done:     make(chan result, 1),
	}
	live.Add(1)
	go w.run()
	return w, nil
}

// Size returns the buffer size in bytes.
func (w *Worker) Size() int { return w.size }

// State returns the current lifecycle state.
func (w *Worker) State() State { return State(w.state.Load()) }

// Checksum returns the sum of the buffer bytes reported by the worker while
// unwinding. It is zero until Release has returned.
func (w *Worker) Checksum() uint64 { return w.checksum }

// Release arrives at the rendezvous, letting the worker unwind, and waits for
// it to terminate. The worker has returned every frame before Release returns.
func (w *Worker) Release() error {
	if w.joined {
		return ErrReleased
	}
	w.rv.Arrive()
	res := <-w.done
	w.joined = true
	w.checksum = res.sum
	if res.err != nil {
		return errors.Mark(res.err, ErrJoinFailed)
	}
	return nil
}

func (w *Worker) run() {
	// Never unlocked: the OS thread exits together with this goroutine.
	runtime.LockOSThread()

	var res result
	defer func() {
		if r := recover(); r != nil {
			res.err = errors.Newf("stack: worker panicked: %v", r)
			if !w.arrived {
				w.arrived = true
				w.rv.Arrive()
			}
		}
		w.state.Store(int32(Terminated))
		live.Add(-1)
		w.done <- res
	}()

	res.sum = w.descend(w.size)
	if want := uint64(w.size) * uint64(w.sentinel); res.sum != want {
		res.err = errors.Newf("stack: buffer checksum %d, want %d", res.sum, want)
	}
}

// descend holds one chunk of the buffer in its frame and recurses until the
// whole buffer is on the stack; the innermost frame parks at the rendezvous.
//
//go:noinline
func (w *Worker) descend(remaining int) uint64 {
	var chunk [FrameChunk]byte
	n := min(remaining, FrameChunk)
	for i := range n {
		chunk[i] = w.sentinel
	}

	var sum uint64
	if remaining > FrameChunk {
		sum = w.descend(remaining - FrameChunk)
	} else {
		w.state.Store(int32(Running))
		w.arrived = true
		w.rv.Arrive()
		w.state.Store(int32(Unwinding))
	}

	for i := range n {
		sum += uint64(chunk[i])
	}
	return sum
}
