package profile

import (
	"context"
	"sort"
	"sync"
	"time"

	"blushhush.app/internal/auth"
	"blushhush.app/internal/ids"
)

var _ Store = (*InMemory)(nil)

// InMemory implements Store for tests and local tooling.
type InMemory struct {
	mu       sync.RWMutex
	profiles map[string]*Profile
}

func NewInMemory() *InMemory {
	return &InMemory{profiles: make(map[string]*Profile)}
}

func (s *InMemory) Create(ctx context.Context, p *Profile) error {
	if p.ID == "" {
		p.ID = ids.New()
	}
	if !p.Role.Valid() {
		return ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.profiles[p.ID]; ok {
		return ErrAlreadyExists
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	cp := *p
	s.profiles[p.ID] = &cp
	return nil
}

func (s *InMemory) Find(ctx context.Context, id string) (*Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *InMemory) ListByRole(ctx context.Context, role auth.Role) ([]*Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var res []*Profile
	for _, p := range s.profiles {
		if p.Role == role {
			cp := *p
			res = append(res, &cp)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].CreatedAt.Before(res[j].CreatedAt) })
	return res, nil
}
