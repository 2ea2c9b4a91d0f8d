package session

import (
	"context"
	"sync"
)

// MemoryStore keeps sessions in process memory. It is the configured
// default for development and the test double for service tests.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]Session),
	}
}

func (s *MemoryStore) Put(ctx context.Context, deviceID string, session Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[deviceID] = session
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, deviceID string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[deviceID]
	if !ok {
		return nil, ErrNotFound
	}
	return &session, nil
}

// Len reports the number of occupied device slots.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *MemoryStore) Clear(ctx context.Context, deviceID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, deviceID)
	return nil
}
