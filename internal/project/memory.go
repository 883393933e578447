package project

import (
	"context"
	"sort"
	"sync"
	"time"

	"blushhush.app/internal/ids"
)

var _ Store = (*InMemory)(nil)

// InMemory implements Store for tests and local tooling.
type InMemory struct {
	mu       sync.RWMutex
	projects map[string]*Project
}

func NewInMemory() *InMemory {
	return &InMemory{projects: make(map[string]*Project)}
}

func (s *InMemory) Create(ctx context.Context, p *Project) error {
	if p.Name == "" || p.ClientID == "" || p.ManagerID == "" {
		return ErrInvalidInput
	}
	if p.ID == "" {
		p.ID = ids.New()
	}
	if p.Status == "" {
		p.Status = StatusPlanning
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *p
	s.projects[p.ID] = &cp
	return nil
}

func (s *InMemory) Find(ctx context.Context, id string) (*Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.projects[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *InMemory) ListByManager(ctx context.Context, managerID string) ([]*Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var res []*Project
	for _, p := range s.projects {
		if p.ManagerID == managerID {
			cp := *p
			res = append(res, &cp)
		}
	}
	sortByCreated(res)
	return res, nil
}

func (s *InMemory) FindByClient(ctx context.Context, clientID string) (*Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var match *Project
	for _, p := range s.projects {
		if p.ClientID != clientID {
			continue
		}
		if match == nil || p.CreatedAt.Before(match.CreatedAt) {
			match = p
		}
	}
	if match == nil {
		return nil, ErrNotFound
	}
	cp := *match
	return &cp, nil
}

func (s *InMemory) List(ctx context.Context) ([]*Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res := make([]*Project, 0, len(s.projects))
	for _, p := range s.projects {
		cp := *p
		res = append(res, &cp)
	}
	sortByCreated(res)
	return res, nil
}

func (s *InMemory) SetProgress(ctx context.Context, id string, progress int) error {
	if progress < 0 || progress > 100 {
		return ErrInvalidProgress
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.projects[id]
	if !ok {
		return ErrNotFound
	}
	p.Progress = progress
	return nil
}

func sortByCreated(res []*Project) {
	sort.Slice(res, func(i, j int) bool { return res[i].CreatedAt.Before(res[j].CreatedAt) })
}
