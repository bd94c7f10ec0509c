package knownuser

import (
	"context"
	"sync"
)

// InMemoryService keeps the known-user relation in process memory.
type InMemoryService struct {
	mu    sync.RWMutex
	known map[string]map[string]bool
}

func NewInMemoryService() *InMemoryService {
	return &InMemoryService{known: make(map[string]map[string]bool)}
}

// MarkKnown records that the visitor is known to the owner. The relation is
// directional: being known to someone does not make them known to you.
func (s *InMemoryService) MarkKnown(ownerID, visitorID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.known[ownerID] == nil {
		s.known[ownerID] = make(map[string]bool)
	}
	s.known[ownerID][visitorID] = true
}

func (s *InMemoryService) IsKnownToUser(_ context.Context, ownerID, visitorID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.known[ownerID][visitorID], nil
}
