package store

import (
	"context"
	"sort"
	"sync"

	"github.com/matzehuels/dashgrid/pkg/errors"
	"github.com/matzehuels/dashgrid/pkg/grid"
)

// MemoryStore is an in-memory store for development and testing.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]Record
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]Record)}
}

func (s *MemoryStore) Get(ctx context.Context, dashboardID string) (*Record, error) {
	if err := errors.ValidateDashboardID(dashboardID); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[dashboardID]
	if !ok {
		return nil, nil
	}
	// Copy so callers can't mutate the stored record.
	cp := rec
	cp.Snapshot = grid.Snapshot{Widgets: rec.Snapshot.Sorted()}
	return &cp, nil
}

func (s *MemoryStore) Set(ctx context.Context, rec *Record) error {
	if err := errors.ValidateDashboardID(rec.DashboardID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *rec
	cp.Snapshot = grid.Snapshot{Widgets: rec.Snapshot.Sorted()}
	s.records[rec.DashboardID] = cp
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, dashboardID string) error {
	if err := errors.ValidateDashboardID(dashboardID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.records, dashboardID)
	return nil
}

func (s *MemoryStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.records))
	for id := range s.records {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *MemoryStore) Close() error { return nil }

var _ Store = (*MemoryStore)(nil)
