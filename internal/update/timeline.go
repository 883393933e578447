package update

import (
	"context"
	"fmt"

	"blushhush.app/internal/project"
)

// Entry is one timeline item: either a persisted update record or the
// synthetic project-start marker.
type Entry struct {
	Record
	Synthetic bool
}

// Service assembles the per-project timeline shown to clients and
// managers: all updates newest-first, terminated by a synthetic
// "Project Started" entry derived from the project itself.
type Service struct {
	updates  Store
	projects project.Store
}

func NewService(updates Store, projects project.Store) *Service {
	return &Service{updates: updates, projects: projects}
}

// Timeline returns the project's update history plus the start marker.
func (s *Service) Timeline(ctx context.Context, projectID string) ([]Entry, error) {
	p, err := s.projects.Find(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("load project: %w", err)
	}
	recs, err := s.updates.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("load updates: %w", err)
	}

	entries := make([]Entry, 0, len(recs)+1)
	for _, rec := range recs {
		entries = append(entries, Entry{Record: *rec})
	}
	entries = append(entries, Entry{
		Record: Record{
			ID:          "start-" + p.ID,
			ProjectID:   p.ID,
			Title:       "Project Started",
			Description: "Project initialization and planning.",
			Date:        p.CreatedAt,
			CreatedAt:   p.CreatedAt,
		},
		Synthetic: true,
	})
	return entries, nil
}

// ForClient resolves the client's project and returns its timeline.
func (s *Service) ForClient(ctx context.Context, clientID string) (*project.Project, []Entry, error) {
	p, err := s.projects.FindByClient(ctx, clientID)
	if err != nil {
		return nil, nil, fmt.Errorf("find client project: %w", err)
	}
	entries, err := s.Timeline(ctx, p.ID)
	if err != nil {
		return nil, nil, err
	}
	return p, entries, nil
}
