package sessions

import (
	"context"
	"encoding/json"
	"sync"
)

// MemoryStore is a process-local Store. It backs unit tests and local
// development without Redis.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: map[string][]byte{}}
}

func (s *MemoryStore) Load(ctx context.Context, id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok := s.sessions[id]
	if !ok {
		return newSession(id, nil), nil
	}

	values := map[string]json.RawMessage{}
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, err
	}
	return newSession(id, values), nil
}

func (s *MemoryStore) Save(ctx context.Context, sess *Session) error {
	raw, err := json.Marshal(sess.values)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.sessions[sess.id] = raw
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
	return nil
}
