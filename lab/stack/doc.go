// Package stack keeps allocations resident in the stack of a dedicated worker.
//
// # Overview
//
// A Worker is a goroutine pinned to its own OS thread that builds an n-byte
// buffer out of its own stack frames, fills it with a sentinel so every page is
// committed, and then parks at a two-party Rendezvous. The controller owns the
// other side of the rendezvous:
//
//	w, err := stack.Spawn(10<<20, 0x2a)
//	if err != nil {
//	    return err
//	}
//	// ... observe the process footprint ...
//	if err := w.Release(); err != nil {
//	    return err // join failure: the teardown guarantee is broken
//	}
//
// # Buffer Layout
//
// Go places explicitly declared fixed-size arrays in the frame of the function
// that declares them, and goroutine stacks grow on demand. The worker therefore
// recurses ceil(n / FrameChunk) times, each frame holding one FrameChunk array,
// and the innermost frame parks. The whole buffer lives in the goroutine stack,
// never in the garbage-collected heap.
//
// # Lifecycle
//
//	Created -> Running (resident, parked) -> Unwinding -> Terminated
//
// The only way out of Running is the controller's matching Arrive inside
// Release. There is no cancellation and no timeout. Release returns only after
// the worker has unwound every frame and reported its result, so memory
// observations taken after Release see the stack already given back.
//
// While unwinding, each frame adds its bytes to a checksum that is returned to
// the controller and verified against n × sentinel. The reduction keeps the
// compiler from eliding the buffer.
//
// # Thread Safety
//
// A Worker has exactly one controller. Release must not be called concurrently.
package stack
