package kvstore

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/comitanigiacomo/salat-sync-engine/internal/core/domain"
)

var _ domain.KeyValueStore = (*MemoryStore)(nil)

type MemoryStore struct {
	store map[string]string

	mu sync.RWMutex
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		store: make(map[string]string),
	}
}

func (s *MemoryStore) Get(ctx context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.store[key]
	if !ok {
		return "", domain.ErrKeyNotFound
	}
	return value, nil
}

func (s *MemoryStore) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.store[key] = value
	return nil
}

func (s *MemoryStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0)
	for k := range s.store {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}

	sort.Strings(keys)
	return keys, nil
}

func (s *MemoryStore) MultiGet(ctx context.Context, keys []string) (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	values := make(map[string]string, len(keys))
	for _, k := range keys {
		if v, ok := s.store[k]; ok {
			values[k] = v
		}
	}
	return values, nil
}

func (s *MemoryStore) Update(ctx context.Context, key string, fn func(current string, exists bool) (string, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, exists := s.store[key]
	next, err := fn(current, exists)
	if err != nil {
		return err
	}

	s.store[key] = next
	return nil
}

func (s *MemoryStore) Ping(ctx context.Context) error {
	return nil
}
