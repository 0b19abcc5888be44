// Package connectivity provides concrete connectivity monitors: a static one
// for tests and CLI flags, and a file-backed one that tracks the state the
// platform writes to disk.
package connectivity

import (
	"sync"

	"cookbook/domain/connectivity"
)

// Static is a monitor with an explicitly set state. Useful for tests and for
// CLI runs where the transport is given as a flag.
type Static struct {
	mu          sync.RWMutex
	state       connectivity.State
	subscribers map[int]func(connectivity.State)
	nextID      int
}

// NewStatic creates a monitor fixed at the given state until Set is called.
func NewStatic(state connectivity.State) *Static {
	return &Static{
		state:       state,
		subscribers: make(map[int]func(connectivity.State)),
	}
}

// Current returns the current state.
func (s *Static) Current() connectivity.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Set replaces the state and notifies subscribers.
func (s *Static) Set(state connectivity.State) {
	s.mu.Lock()
	s.state = state
	fns := make([]func(connectivity.State), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(state)
	}
}

// Subscribe registers a change callback and returns its cancel function.
func (s *Static) Subscribe(fn func(connectivity.State)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subscribers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
}
