package viewers

import (
	"context"
	"sync"
)

// MemoryPresenceStore is an in-memory PresenceStore. Suitable for
// single-instance deployments.
type MemoryPresenceStore struct {
	events map[string]map[string]struct{} // eventID -> viewerID set
	mu     sync.RWMutex
}

func NewMemoryPresenceStore() *MemoryPresenceStore {
	return &MemoryPresenceStore{
		events: make(map[string]map[string]struct{}),
	}
}

func (s *MemoryPresenceStore) Add(ctx context.Context, eventID, viewerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[eventID]; !ok {
		s.events[eventID] = make(map[string]struct{})
	}
	s.events[eventID][viewerID] = struct{}{}
	return nil
}

func (s *MemoryPresenceStore) Remove(ctx context.Context, eventID, viewerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if viewerSet, ok := s.events[eventID]; ok {
		delete(viewerSet, viewerID)
		if len(viewerSet) == 0 {
			delete(s.events, eventID)
		}
	}
	return nil
}

func (s *MemoryPresenceStore) Count(ctx context.Context, eventID string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.events[eventID])), nil
}

func (s *MemoryPresenceStore) Close() error {
	return nil
}
