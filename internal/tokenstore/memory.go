package tokenstore

import "sync"

// MemoryStore — эфемерная реализация Store для тестов и одноразовых сессий.
type MemoryStore struct {
	mu   sync.RWMutex
	pair Pair
	set  bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load() (Pair, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.set {
		return Pair{}, ErrNotFound
	}

	return s.pair, nil
}

func (s *MemoryStore) Save(p Pair) error {
	s.mu.Lock()
	s.pair = p
	s.set = true
	s.mu.Unlock()

	return nil
}

func (s *MemoryStore) SetAccess(access string) error {
	s.mu.Lock()
	s.pair.AccessToken = access
	s.set = true
	s.mu.Unlock()

	return nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	s.pair = Pair{}
	s.set = false
	s.mu.Unlock()

	return nil
}
