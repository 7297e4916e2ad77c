package memory

import (
	"context"
	"sync"

	id "ftf/pkg/domain"
	audit "ftf/pkg/platform/audit"
)

// InMemoryStore keeps audit events per request. Used in unit tests and for
// local runs without postgres.
type InMemoryStore struct {
	mu     sync.RWMutex
	events map[id.RequestID][]audit.Event
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{events: make(map[id.RequestID][]audit.Event)}
}

func (s *InMemoryStore) Append(_ context.Context, event audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[event.RequestID] = append(s.events[event.RequestID], event)
	return nil
}

func (s *InMemoryStore) ListByRequest(_ context.Context, requestID id.RequestID) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]audit.Event{}, s.events[requestID]...), nil
}

func (s *InMemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = make(map[id.RequestID][]audit.Event)
}
