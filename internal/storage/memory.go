package storage

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// MemoryStore keeps objects in a map. It serves the in-memory database
// engine and tests.
type MemoryStore struct {
	mu      sync.RWMutex
	bucket  string
	objects map[string][]byte
}

func NewMemory(bucket string) *MemoryStore {
	return &MemoryStore{
		bucket:  bucket,
		objects: make(map[string][]byte),
	}
}

func (s *MemoryStore) ListKeys(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.objects))
	for key := range s.objects {
		keys = append(keys, key)
	}

	return keys, nil
}

func (s *MemoryStore) RemoveKeys(_ context.Context, keys []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range keys {
		delete(s.objects, key)
	}

	return nil
}

func (s *MemoryStore) Put(_ context.Context, key string, r io.Reader, _ int64, _ string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read object: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = data

	return fmt.Sprintf("memory://store/%s/%s", s.bucket, key), nil
}

func (s *MemoryStore) ExtractKey(rawURL string) (string, bool) {
	return KeyFromURL(s.bucket, rawURL)
}
