package sessions

import (
	"context"
	"sync"

	"phonewidget_backend/platform/apperr"
)

// MemoryStore keeps instances in a process-local map. The mutex only guards
// the map itself; each instance is still mutated by one event at a time.
type MemoryStore struct {
	mu        sync.RWMutex
	instances map[string]Instance
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{instances: make(map[string]Instance)}
}

// Get returns the instance with the given id.
func (s *MemoryStore) Get(_ context.Context, id string) (Instance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	inst, ok := s.instances[id]
	if !ok {
		return Instance{}, apperr.NotFound("widget instance not found")
	}
	return inst, nil
}

// Put stores the instance, replacing any previous version.
func (s *MemoryStore) Put(_ context.Context, inst Instance) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.instances[inst.ID] = inst
	return nil
}

// Delete removes the instance. Deleting an unknown id is not an error.
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.instances, id)
	return nil
}

var _ Store = (*MemoryStore)(nil)
