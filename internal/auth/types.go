package auth

import (
	"fmt"
	"strings"
	"time"
)

// Role is the single authorization category resolved for an identity.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleClient  Role = "client"

	// RoleUnresolved is the zero value: session may exist but no role is
	// known yet (resolution pending or failed).
	RoleUnresolved Role = ""
)

// Valid reports whether r is one of the three concrete roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleManager || r == RoleClient
}

// ParseRole maps a raw profile value onto a known role. Unknown values
// fail closed instead of being coerced.
func ParseRole(raw string) (Role, error) {
	switch Role(strings.TrimSpace(strings.ToLower(raw))) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleManager:
		return RoleManager, nil
	case RoleClient:
		return RoleClient, nil
	default:
		return RoleUnresolved, fmt.Errorf("%w: %q", ErrInvalidRole, raw)
	}
}

// Session is a live authenticated connection issued by the identity
// gateway. The store holds at most one at a time.
type Session struct {
	AccessToken  string
	RefreshToken string
	IdentityID   string
	Email        string
	IssuedAt     time.Time
	ExpiresAt    time.Time
}

// Expired reports whether the session's access token has passed its expiry.
func (s *Session) Expired(now time.Time) bool {
	if s == nil {
		return true
	}
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// State is the process-wide auth tuple read by the navigation guard and
// screens. While Loading is true the (Session, Role) pair is not settled
// and no navigation decision may be derived from it.
type State struct {
	Session *Session
	Role    Role
	Loading bool
}

// Authenticated reports whether a session is present.
func (s State) Authenticated() bool { return s.Session != nil }

// Routable reports whether the state is settled enough to route by role.
func (s State) Routable() bool {
	return !s.Loading && s.Session != nil && s.Role != RoleUnresolved
}
