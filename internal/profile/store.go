package profile

import (
	"context"

	"blushhush.app/internal/auth"
)

// Store describes persistence operations for profiles.
type Store interface {
	Create(ctx context.Context, p *Profile) error
	Find(ctx context.Context, id string) (*Profile, error)
	ListByRole(ctx context.Context, role auth.Role) ([]*Profile, error)
}

// RoleResolver adapts a profile store to the session store's Resolver
// interface. Resolution is a pure lookup keyed by identity id: no side
// effects, safe to invoke repeatedly for the same identity.
type RoleResolver struct {
	store Store
}

// NewRoleResolver constructs a resolver over the given store.
func NewRoleResolver(store Store) *RoleResolver {
	return &RoleResolver{store: store}
}

// Resolve fetches the role for an identity id.
func (r *RoleResolver) Resolve(ctx context.Context, identityID string) (auth.Role, error) {
	p, err := r.store.Find(ctx, identityID)
	if err != nil {
		return auth.RoleUnresolved, err
	}
	return p.Role, nil
}
