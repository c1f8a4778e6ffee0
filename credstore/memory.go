package credstore

import (
	"context"
	"sync"
)

// MemStore is an in-memory Store for tests and ephemeral sessions.
type MemStore struct {
	mu    sync.Mutex
	value string
}

func NewMemStore() *MemStore {
	return &MemStore{}
}

func (s *MemStore) Get(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value, nil
}

func (s *MemStore) Set(ctx context.Context, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = value
	return nil
}

func (s *MemStore) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = ""
	return nil
}
