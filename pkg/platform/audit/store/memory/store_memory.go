package memory

import (
	"context"
	"sync"

	audit "facet/pkg/platform/audit"
)

// InMemoryStore keeps audit events per profile owner. Used by tests and
// development setups without a database.
type InMemoryStore struct {
	mu     sync.RWMutex
	events map[string][]audit.Event
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{events: make(map[string][]audit.Event)}
}

func (s *InMemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = make(map[string][]audit.Event)
}

func (s *InMemoryStore) Append(_ context.Context, event audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[event.OwnerID] = append(s.events[event.OwnerID], event)
	return nil
}

// ListByOwner returns all events recorded for one profile owner.
func (s *InMemoryStore) ListByOwner(_ context.Context, ownerID string) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]audit.Event{}, s.events[ownerID]...), nil
}
