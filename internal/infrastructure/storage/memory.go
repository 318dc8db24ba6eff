package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/Chrisx-39/FormMaster/internal/domain"
)

// MemoryStore almacenamiento en proceso; se usa cuando no hay endpoint de MinIO.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

// NewMemoryStore crea un almacenamiento vacío.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: make(map[string][]byte)}
}

// Put guarda una copia de content bajo key. contentType no se conserva.
func (s *MemoryStore) Put(_ context.Context, key string, content []byte, _ string) error {
	buf := make([]byte, len(content))
	copy(buf, content)
	s.mu.Lock()
	s.objects[key] = buf
	s.mu.Unlock()
	return nil
}

// Get devuelve el objeto o domain.ErrNotFound.
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.objects[key]
	if !ok {
		return nil, fmt.Errorf("objeto %s: %w", key, domain.ErrNotFound)
	}
	return b, nil
}
