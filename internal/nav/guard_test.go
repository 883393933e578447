package nav

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"blushhush.app/internal/auth"
)

type recordingRouter struct {
	mu    sync.Mutex
	moves []RouteGroup
}

func (r *recordingRouter) Navigate(group RouteGroup) {
	r.mu.Lock()
	r.moves = append(r.moves, group)
	r.mu.Unlock()
}

func (r *recordingRouter) snapshot() []RouteGroup {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]RouteGroup(nil), r.moves...)
}

func waitForMove(t *testing.T, r *recordingRouter, want RouteGroup) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		moves := r.snapshot()
		if len(moves) > 0 && moves[len(moves)-1] == want {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("router never moved to %s; moves: %v", want, r.snapshot())
}

func TestGuardRedirectsAfterSignIn(t *testing.T) {
	store := auth.NewStore(auth.ResolverFunc(func(context.Context, string) (auth.Role, error) {
		return auth.RoleManager, nil
	}))
	router := &recordingRouter{}
	guard := NewGuard(store, router)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go guard.Run(ctx)

	guard.OnNavigate(GroupSignIn)
	store.SetSession(&auth.Session{AccessToken: "at", IdentityID: "ident-1"})

	waitForMove(t, router, GroupManager)
	require.Equal(t, GroupManager, guard.Current())
}

func TestGuardKicksUnauthenticatedOffProtectedGroup(t *testing.T) {
	blocked := make(chan struct{})
	defer close(blocked)
	store := auth.NewStore(auth.ResolverFunc(func(ctx context.Context, _ string) (auth.Role, error) {
		<-blocked
		return auth.RoleUnresolved, ctx.Err()
	}))
	router := &recordingRouter{}
	guard := NewGuard(store, router)

	// Settle the store into the signed-out state first.
	store.SetSession(nil)
	guard.OnNavigate(GroupAdmin)

	waitForMove(t, router, GroupSignIn)
	require.Equal(t, []RouteGroup{GroupSignIn}, router.snapshot())
}

func TestGuardIgnoresDuplicateStates(t *testing.T) {
	store := auth.NewStore(auth.ResolverFunc(func(context.Context, string) (auth.Role, error) {
		return auth.RoleClient, nil
	}))
	router := &recordingRouter{}
	guard := NewGuard(store, router)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go guard.Run(ctx)

	guard.OnNavigate(GroupSignIn)
	store.SetSession(&auth.Session{AccessToken: "at", IdentityID: "ident-1"})
	waitForMove(t, router, GroupClient)

	// Re-evaluating after the redirect must not move again.
	guard.OnNavigate(GroupClient)
	time.Sleep(20 * time.Millisecond)
	require.Equal(t, []RouteGroup{GroupClient}, router.snapshot())
}

func TestGuardStaysDuringPendingResolution(t *testing.T) {
	gate := make(chan struct{})
	defer close(gate)
	store := auth.NewStore(auth.ResolverFunc(func(context.Context, string) (auth.Role, error) {
		<-gate
		return auth.RoleClient, nil
	}))
	router := &recordingRouter{}
	guard := NewGuard(store, router)

	store.SetSession(&auth.Session{AccessToken: "at", IdentityID: "ident-1"})
	guard.OnNavigate(GroupLanding)

	time.Sleep(20 * time.Millisecond)
	require.Empty(t, router.snapshot())
}
