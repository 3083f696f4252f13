package state

import "sync"

// Store owns the authoritative ListState of one session. Dispatches are
// serialized; subscribers receive a snapshot after each dispatch.
type Store struct {
	mu     sync.Mutex
	state  ListState
	subs   map[int]func(ListState)
	nextID int

	notifyMu sync.Mutex
}

// NewStore creates a store seeded with initial.
func NewStore(initial ListState) *Store {
	return &Store{
		state: initial.clone(),
		subs:  map[int]func(ListState){},
	}
}

// State returns a snapshot of the current state.
func (s *Store) State() ListState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Dispatch applies a and returns a snapshot of the resulting state.
// Subscribers are called synchronously, in dispatch order, and must not
// dispatch from within the callback.
func (s *Store) Dispatch(a Action) ListState {
	_, after := s.Transition(a)
	return after
}

// Transition applies a like Dispatch and also returns the state it was
// applied to. No other dispatch can land between the two snapshots.
func (s *Store) Transition(a Action) (before, after ListState) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	before = s.state.clone()
	s.state = Reduce(s.state, a)
	snapshot := s.state.clone()
	subs := make([]func(ListState), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snapshot.clone())
	}
	return before, snapshot
}

// Subscribe registers fn for change notifications and returns a function
// that removes it.
func (s *Store) Subscribe(fn func(ListState)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.subs[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}
