package nav

import (
	"testing"

	"github.com/stretchr/testify/require"

	"blushhush.app/internal/auth"
)

func session() *auth.Session {
	return &auth.Session{AccessToken: "at", IdentityID: "ident-1"}
}

func TestDecide(t *testing.T) {
	cases := []struct {
		name    string
		state   auth.State
		current RouteGroup
		want    Decision
	}{
		{
			name:    "loading never redirects",
			state:   auth.State{Loading: true},
			current: GroupAdmin,
			want:    Decision{},
		},
		{
			name:    "unauthenticated on protected group goes to sign-in",
			state:   auth.State{},
			current: GroupAdmin,
			want:    Decision{Redirect: true, Target: GroupSignIn},
		},
		{
			name:    "unauthenticated on sign-in is stable",
			state:   auth.State{},
			current: GroupSignIn,
			want:    Decision{},
		},
		{
			name:    "unauthenticated on landing is stable",
			state:   auth.State{},
			current: GroupLanding,
			want:    Decision{},
		},
		{
			name:    "session with pending role is stable",
			state:   auth.State{Session: session()},
			current: GroupLanding,
			want:    Decision{},
		},
		{
			name:    "resolved client on sign-in goes to client area",
			state:   auth.State{Session: session(), Role: auth.RoleClient},
			current: GroupSignIn,
			want:    Decision{Redirect: true, Target: GroupClient},
		},
		{
			name:    "resolved admin with no location goes to admin area",
			state:   auth.State{Session: session(), Role: auth.RoleAdmin},
			current: GroupNone,
			want:    Decision{Redirect: true, Target: GroupAdmin},
		},
		{
			name:    "resolved manager on landing goes to manager area",
			state:   auth.State{Session: session(), Role: auth.RoleManager},
			current: GroupLanding,
			want:    Decision{Redirect: true, Target: GroupManager},
		},
		{
			name:    "cross-role presence is not corrected",
			state:   auth.State{Session: session(), Role: auth.RoleClient},
			current: GroupManager,
			want:    Decision{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, Decide(tc.state, tc.current))

			// Recomputing from the same inputs yields the same decision.
			require.Equal(t, tc.want, Decide(tc.state, tc.current))

			// After following a redirect the state is stable.
			if tc.want.Redirect {
				require.Equal(t, Decision{}, Decide(tc.state, tc.want.Target))
			}
		})
	}
}

func TestGroupForRole(t *testing.T) {
	require.Equal(t, GroupAdmin, GroupForRole(auth.RoleAdmin))
	require.Equal(t, GroupManager, GroupForRole(auth.RoleManager))
	require.Equal(t, GroupClient, GroupForRole(auth.RoleClient))
	require.Equal(t, GroupNone, GroupForRole(auth.RoleUnresolved))
}
