package apps

import (
	"context"
	"sync"
)

// InMemoryEnablement tracks enabled apps per user in process memory.
type InMemoryEnablement struct {
	mu      sync.RWMutex
	enabled map[string]map[string]bool
}

func NewInMemoryEnablement() *InMemoryEnablement {
	return &InMemoryEnablement{enabled: make(map[string]map[string]bool)}
}

// Enable marks an app as active for the user.
func (e *InMemoryEnablement) Enable(userID, appID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.enabled[userID] == nil {
		e.enabled[userID] = make(map[string]bool)
	}
	e.enabled[userID][appID] = true
}

// Disable marks an app as inactive for the user.
func (e *InMemoryEnablement) Disable(userID, appID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.enabled[userID], appID)
}

func (e *InMemoryEnablement) IsEnabledForUser(_ context.Context, appID, userID string) (bool, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.enabled[userID][appID], nil
}
