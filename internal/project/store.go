package project

import "context"

// Store describes persistence operations for projects.
type Store interface {
	Create(ctx context.Context, p *Project) error
	Find(ctx context.Context, id string) (*Project, error)
	ListByManager(ctx context.Context, managerID string) ([]*Project, error)
	FindByClient(ctx context.Context, clientID string) (*Project, error)
	List(ctx context.Context) ([]*Project, error)

	// SetProgress overwrites the project's progress percentage.
	// Last-write-wins between concurrent managers; no locking is done here.
	SetProgress(ctx context.Context, id string, progress int) error
}
