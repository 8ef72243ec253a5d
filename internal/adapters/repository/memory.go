package repository

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/okian/attendsync/pkg/metrics"
)

// DefaultCapacity is the number of runs retained without WithCapacity.
const DefaultCapacity = 100

// MemoryStore is an in-memory, bounded Store. Insertion order defines recency.
type MemoryStore struct {
	mu       sync.RWMutex
	capacity int
	order    []string // oldest first
	runs     map[string]Run
	gauge    func(int)
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty store.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{
		capacity: DefaultCapacity,
		runs:     make(map[string]Run),
		gauge:    metrics.SetRunHistoryEntries,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Save records run. Saving an existing ID replaces it in place without
// changing its position.
func (s *MemoryStore) Save(ctx context.Context, run Run) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(run.ID) == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidRun)
	}

	s.mu.Lock()
	if _, ok := s.runs[run.ID]; !ok {
		s.order = append(s.order, run.ID)
		for len(s.order) > s.capacity {
			delete(s.runs, s.order[0])
			s.order = s.order[1:]
		}
	}
	s.runs[run.ID] = run
	n := len(s.order)
	s.mu.Unlock()

	s.gauge(n)
	return nil
}

// Get returns the run with id.
func (s *MemoryStore) Get(ctx context.Context, id string) (Run, error) {
	if err := ctx.Err(); err != nil {
		return Run{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, ok := s.runs[id]
	if !ok {
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return run, nil
}

// List returns up to limit runs, newest first.
func (s *MemoryStore) List(ctx context.Context, limit int) ([]Run, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.order)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]Run, 0, n)
	for i := len(s.order) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, s.runs[s.order[i]])
	}
	return out, nil
}

// Count returns the number of runs retained.
func (s *MemoryStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}
