package agent

import (
	cmap "github.com/orcaman/concurrent-map/v2"
)

// StateStore holds conversation state keyed by session id. It shares the key
// space with the SessionRegistry so eviction stays consistent.
type StateStore interface {
	Get(sessionID string) (*State, bool)
	Put(state *State)
	Delete(sessionID string)
}

type MemoryStateStore struct {
	states cmap.ConcurrentMap[string, *State]
}

func NewMemoryStateStore() *MemoryStateStore {
	return &MemoryStateStore{
		states: cmap.New[*State](),
	}
}

func (s *MemoryStateStore) Get(sessionID string) (*State, bool) {
	return s.states.Get(sessionID)
}

func (s *MemoryStateStore) Put(state *State) {
	s.states.Set(state.SessionID, state)
}

func (s *MemoryStateStore) Delete(sessionID string) {
	s.states.Remove(sessionID)
}
