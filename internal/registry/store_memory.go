package registry

import (
	"context"
	"sync"

	"github.com/AVN-Software/skern-tag-system/internal/domain"
	"github.com/AVN-Software/skern-tag-system/pkg/platform/sentinel"
)

// MemoryStore is an in-process registry for development and tests. The mutex
// makes check-and-insert atomic; records are copied on read so callers never
// share memory with the store.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]domain.RegistryRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]domain.RegistryRecord)}
}

func (s *MemoryStore) Put(_ context.Context, record domain.RegistryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.records[record.CertID]; exists {
		return sentinel.ErrConflict
	}
	s.records[record.CertID] = record
	return nil
}

func (s *MemoryStore) Get(_ context.Context, certID string) (*domain.RegistryRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[certID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &record, nil
}
