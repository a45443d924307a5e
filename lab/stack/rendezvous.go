package stack

import "sync"

// parties is the number of arrivals that open a Rendezvous.
const parties = 2

// Rendezvous is a single-use barrier for exactly two participants. Each
// participant calls Arrive once; neither returns until both have arrived.
type Rendezvous struct {
	mu       sync.Mutex
	arrivals int
	open     chan struct{}
}

// NewRendezvous returns a closed rendezvous waiting for two arrivals.
func NewRendezvous() *Rendezvous {
	return &Rendezvous{open: make(chan struct{})}
}

// Arrive registers the caller and blocks until the other participant has
// arrived too. A third arrival is a programming error and panics.
func (r *Rendezvous) Arrive() {
	r.mu.Lock()
	r.arrivals++
	n := r.arrivals
	if n == parties {
		close(r.open)
	}
	r.mu.Unlock()

	if n > parties {
		panic("stack: rendezvous already completed")
	}
	<-r.open
}

// Arrivals reports how many participants have arrived so far.
func (r *Rendezvous) Arrivals() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.arrivals
}
