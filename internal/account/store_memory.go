package account

import (
	"context"
	"sync"
)

// InMemoryStore keeps account properties in process memory. It backs unit
// tests and single-node development setups.
type InMemoryStore struct {
	mu          sync.RWMutex
	properties  map[string]map[string]Property
	collections map[string]map[string][]Property
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		properties:  make(map[string]map[string]Property),
		collections: make(map[string]map[string][]Property),
	}
}

// SetProperty stores or replaces a property value for the user.
func (s *InMemoryStore) SetProperty(userID, key string, property Property) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.properties[userID] == nil {
		s.properties[userID] = make(map[string]Property)
	}
	s.properties[userID][key] = property
}

// AddToCollection appends a value to a multi-valued property.
func (s *InMemoryStore) AddToCollection(userID, key string, property Property) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.collections[userID] == nil {
		s.collections[userID] = make(map[string][]Property)
	}
	s.collections[userID][key] = append(s.collections[userID][key], property)
}

func (s *InMemoryStore) GetProperty(_ context.Context, userID, key string) (Property, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if property, ok := s.properties[userID][key]; ok {
		return property, nil
	}
	return Property{}, ErrPropertyNotFound
}

func (s *InMemoryStore) GetPropertyCollection(_ context.Context, userID, key string) ([]Property, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Property{}, s.collections[userID][key]...), nil
}
