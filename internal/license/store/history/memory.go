// Package history persists the append-only status transition trail.
package history

import (
	"context"
	"sync"

	"ftf/internal/license/models"
	id "ftf/pkg/domain"
)

// MemoryStore is an in-memory HistoryStore. Entries are immutable once
// appended. Safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[id.RequestID][]models.StatusHistoryEntry
}

func NewMemory() *MemoryStore {
	return &MemoryStore{entries: make(map[id.RequestID][]models.StatusHistoryEntry)}
}

func (s *MemoryStore) Append(_ context.Context, entry models.StatusHistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[entry.RequestID] = append(s.entries[entry.RequestID], entry)
	return nil
}

func (s *MemoryStore) ListByRequest(_ context.Context, requestID id.RequestID) ([]models.StatusHistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := s.entries[requestID]
	out := make([]models.StatusHistoryEntry, len(entries))
	copy(out, entries)
	return out, nil
}
