package cache

import (
	"context"
	"sync"
	"time"

	"pralay-server-go/internal/domain/verification/model"
)

type entry struct {
	verdict  *model.Verdict
	storedAt time.Time
}

type memoryStore struct {
	mutex    sync.Mutex
	items    map[string]entry
	order    []string
	capacity int
	ttl      time.Duration
}

// NewMemory builds the in-process cache. Eviction is FIFO on insertion
// order: when full, the earliest-inserted key goes first.
func NewMemory(cfg Config) Store {
	capacity := cfg.Capacity
	if capacity <= 0 {
		capacity = 50
	}
	return &memoryStore{
		items:    make(map[string]entry, capacity),
		capacity: capacity,
		ttl:      cfg.TTL,
	}
}

func (s *memoryStore) Get(_ context.Context, key string) (*model.Verdict, bool, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	e, ok := s.items[key]
	if !ok {
		return nil, false, nil
	}
	if s.ttl > 0 && time.Since(e.storedAt) > s.ttl {
		delete(s.items, key)
		s.removeFromOrder(key)
		return nil, false, nil
	}
	return e.verdict.Clone(), true, nil
}

func (s *memoryStore) Put(_ context.Context, key string, verdict *model.Verdict) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, exists := s.items[key]; !exists {
		for len(s.items) >= s.capacity && len(s.order) > 0 {
			oldest := s.order[0]
			s.order = s.order[1:]
			delete(s.items, oldest)
		}
		s.order = append(s.order, key)
	}
	s.items[key] = entry{verdict: verdict.Clone(), storedAt: time.Now()}
	return nil
}

func (s *memoryStore) Stats(_ context.Context) (map[string]any, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return map[string]any{
		"type":     "memory",
		"entries":  len(s.items),
		"capacity": s.capacity,
	}, nil
}

func (s *memoryStore) Close(_ context.Context) error {
	return nil
}

// caller holds the mutex
func (s *memoryStore) removeFromOrder(key string) {
	for i, k := range s.order {
		if k == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			return
		}
	}
}
