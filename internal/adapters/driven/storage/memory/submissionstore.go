// Package memory provides in-memory store implementations, used by tests
// and as a fallback when no data directory is available.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/meridian-labs/themata/internal/core/domain"
	"github.com/meridian-labs/themata/internal/core/ports/driven"
)

// Ensure SubmissionStore implements the interface.
var _ driven.SubmissionStore = (*SubmissionStore)(nil)

// SubmissionStore is an in-memory implementation of driven.SubmissionStore.
type SubmissionStore struct {
	mu      sync.RWMutex
	records map[string]domain.SubmissionRecord
}

// NewSubmissionStore creates a new in-memory submission store.
func NewSubmissionStore() *SubmissionStore {
	return &SubmissionStore{
		records: make(map[string]domain.SubmissionRecord),
	}
}

// Save stores or updates a submission record.
func (s *SubmissionStore) Save(_ context.Context, rec domain.SubmissionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.ID] = rec
	return nil
}

// Get retrieves a record by submission id.
func (s *SubmissionStore) Get(_ context.Context, id string) (*domain.SubmissionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &rec, nil
}

// List returns all records, most recently updated first.
func (s *SubmissionStore) List(_ context.Context) ([]domain.SubmissionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.SubmissionRecord, 0, len(s.records))
	for _, rec := range s.records {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

// Delete removes a record.
func (s *SubmissionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, id)
	return nil
}
