// Package nav keeps the current screen consistent with the auth state.
// The decision function is pure and recomputed from scratch on every
// input change, so re-evaluating it never issues a different redirect.
package nav

import "blushhush.app/internal/auth"

// RouteGroup is the top-level navigational partition the user is in.
type RouteGroup string

const (
	GroupNone    RouteGroup = ""
	GroupLanding RouteGroup = "landing"
	GroupSignIn  RouteGroup = "sign-in"
	GroupAdmin   RouteGroup = "admin"
	GroupManager RouteGroup = "manager"
	GroupClient  RouteGroup = "client"
)

// Protected reports whether the group is a role-specific area.
func (g RouteGroup) Protected() bool {
	switch g {
	case GroupAdmin, GroupManager, GroupClient:
		return true
	}
	return false
}

// GroupForRole maps a resolved role to its route group.
func GroupForRole(role auth.Role) RouteGroup {
	switch role {
	case auth.RoleAdmin:
		return GroupAdmin
	case auth.RoleManager:
		return GroupManager
	case auth.RoleClient:
		return GroupClient
	}
	return GroupNone
}

// Decision is the guard's output: either stay put or redirect to Target.
type Decision struct {
	Redirect bool
	Target   RouteGroup
}

var stay = Decision{}

func redirect(target RouteGroup) Decision {
	return Decision{Redirect: true, Target: target}
}

// Decide computes the minimal redirect keeping the screen consistent
// with the auth state. It never patches a previous decision; the whole
// decision is derived from its inputs each call.
//
// While loading nothing may be concluded from session or role, so the
// guard stays put and the shell renders its blocking placeholder.
// A session with an unresolved role is also stable: redirecting before
// the role lands would thrash.
// Cross-role presence (a client sitting inside the manager area) is
// deliberately not corrected here; mismatched access is the server
// policy layer's problem.
func Decide(state auth.State, current RouteGroup) Decision {
	if state.Loading {
		return stay
	}

	if state.Session == nil {
		if current.Protected() {
			return redirect(GroupSignIn)
		}
		return stay
	}

	if state.Role == auth.RoleUnresolved {
		return stay
	}

	if current.Protected() {
		return stay
	}
	return redirect(GroupForRole(state.Role))
}
