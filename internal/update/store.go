package update

import "context"

// Store describes persistence operations for update records.
type Store interface {
	Create(ctx context.Context, rec *Record) error
	Find(ctx context.Context, id string) (*Record, error)

	// ListByProject returns updates newest-first; the timeline renders
	// them top-down in that order.
	ListByProject(ctx context.Context, projectID string) ([]*Record, error)
}
