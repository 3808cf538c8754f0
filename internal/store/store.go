// Package store provides the injectable container that all services share.
// It serializes updates to the state snapshot; persistence happens outside,
// in the services that own each slice.
package store

import (
	"sync"

	"github.com/mfcruz/gestor/internal/state"
)

// Op is a pure update over a snapshot.
type Op func(state.State) state.State

// Store holds the current snapshot. Updates are applied one at a time; reads
// get a deep copy, so callers can never mutate shared state.
type Store struct {
	mu    sync.Mutex
	state state.State
}

func New(initial state.State) *Store {
	return &Store{state: initial.Clone()}
}

// Apply runs one or more ops atomically and returns the resulting snapshot.
func (s *Store) Apply(ops ...Op) state.State {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, op := range ops {
		s.state = op(s.state)
	}

	return s.state.Clone()
}

// Snapshot returns a deep copy of the current snapshot.
func (s *Store) Snapshot() state.State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state.Clone()
}
