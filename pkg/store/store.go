package store

import (
	"sync"
)

// Store owns the state tree. Dispatch applies actions atomically in the order
// they arrive; State returns the current snapshot.
type Store struct {
	mu        sync.RWMutex
	state     State
	listeners []func(State)
}

// NewStore creates a store holding the given initial state.
func NewStore(initial State) *Store {
	return &Store{state: initial}
}

// Dispatch applies one action through Transition. The transition itself is
// atomic: no reader observes a half-applied action. Listeners run after the
// new state is installed, outside the lock.
func (s *Store) Dispatch(action Action) {
	s.mu.Lock()
	s.state = Transition(s.state, action)
	next := s.state
	listeners := s.listeners
	s.mu.Unlock()

	for _, listener := range listeners {
		listener(next)
	}
}

// State returns the current snapshot. Treat it as read-only: its slices and
// maps are shared with the tree.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// OnChange registers a listener invoked with the new state after every
// dispatch. This is how the presentation layer re-renders.
func (s *Store) OnChange(fn func(State)) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}
