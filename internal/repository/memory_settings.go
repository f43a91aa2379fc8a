package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/patrickmn/go-cache"
)

// MemorySettingsStore keeps settings in process memory. Nothing expires.
type MemorySettingsStore struct {
	mu    sync.Mutex
	cache *cache.Cache
}

func NewMemorySettingsStore() *MemorySettingsStore {
	return &MemorySettingsStore{cache: cache.New(cache.NoExpiration, 0)}
}

func (s *MemorySettingsStore) Get(_ context.Context, key string) (string, bool, error) {
	if x, found := s.cache.Get(key); found {
		return x.(string), true, nil
	}
	return "", false, nil
}

func (s *MemorySettingsStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Set(key, value, cache.NoExpiration)
	return nil
}

func (s *MemorySettingsStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, found := s.cache.Get(key); !found {
		return fmt.Errorf("setting %s: %w", key, ErrNotFound)
	}
	s.cache.Delete(key)
	return nil
}

func (s *MemorySettingsStore) Update(_ context.Context, key string, fn UpdateFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var current string
	x, found := s.cache.Get(key)
	if found {
		current = x.(string)
	}
	next, err := fn(current, found)
	if err != nil {
		return err
	}
	s.cache.Set(key, next, cache.NoExpiration)
	return nil
}
