package usage

import (
	"context"
	"sync"
)

type memoryStore struct {
	mu   sync.Mutex
	data map[string]int
}

// NewMemoryStore constructs a process-local store.
func NewMemoryStore() *memoryStore {
	return &memoryStore{data: make(map[string]int)}
}

func (s *memoryStore) Add(ctx context.Context, date string, tokens int) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[date] += tokens
	return s.data[date], nil
}

func (s *memoryStore) Get(ctx context.Context, date string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data[date], nil
}
