package update

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"blushhush.app/internal/ids"
)

var _ Store = (*InMemory)(nil)

// InMemory is a Store for tests and local runs.
type InMemory struct {
	mu   sync.RWMutex
	recs map[string]*Record
}

func NewInMemory() *InMemory {
	return &InMemory{recs: make(map[string]*Record)}
}

func (s *InMemory) Create(_ context.Context, rec *Record) error {
	if rec.ProjectID == "" || rec.Title == "" {
		return fmt.Errorf("%w: project id and title are required", ErrValidation)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec.ID == "" {
		rec.ID = ids.New()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	cp := *rec
	cp.Images = append([]string(nil), rec.Images...)
	s.recs[rec.ID] = &cp
	return nil
}

func (s *InMemory) Find(_ context.Context, id string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.recs[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *rec
	return &cp, nil
}

func (s *InMemory) ListByProject(_ context.Context, projectID string) ([]*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var res []*Record
	for _, rec := range s.recs {
		if rec.ProjectID == projectID {
			cp := *rec
			res = append(res, &cp)
		}
	}
	sort.Slice(res, func(i, j int) bool {
		if !res[i].Date.Equal(res[j].Date) {
			return res[i].Date.After(res[j].Date)
		}
		return res[i].CreatedAt.After(res[j].CreatedAt)
	})
	return res, nil
}

// Len returns the number of stored records.
func (s *InMemory) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.recs)
}
