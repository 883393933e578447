package nav

import (
	"context"
	"sync"

	"blushhush.app/internal/auth"
	"blushhush.app/internal/obs"
)

// Router is the navigation surface the guard drives. The mobile shell
// implements it over its router; tests implement it over a slice.
type Router interface {
	Navigate(group RouteGroup)
}

// RouterFunc adapts a function to the Router interface.
type RouterFunc func(group RouteGroup)

func (f RouterFunc) Navigate(group RouteGroup) { f(group) }

// Guard re-evaluates the routing decision whenever either input moves:
// auth state transitions arrive via the store subscription, navigation
// changes via OnNavigate. Both paths funnel into the same evaluation.
type Guard struct {
	mu      sync.Mutex
	store   *auth.Store
	router  Router
	current RouteGroup
}

func NewGuard(store *auth.Store, router Router) *Guard {
	return &Guard{store: store, router: router, current: GroupNone}
}

// Current returns the route group the guard believes the user is in.
func (g *Guard) Current() RouteGroup {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.current
}

// OnNavigate records a user-driven navigation and re-evaluates. The
// guard never fights in-flight navigation: it only reacts once the
// location has actually changed.
func (g *Guard) OnNavigate(group RouteGroup) {
	g.mu.Lock()
	g.current = group
	state := g.store.State()
	g.evaluateLocked(state)
	g.mu.Unlock()
}

// Run consumes auth state transitions until ctx is done. Call it from
// its own goroutine; it evaluates the current state once on entry so a
// late-started guard still converges.
func (g *Guard) Run(ctx context.Context) {
	states, cancel := g.store.Subscribe()
	defer cancel()

	g.apply(g.store.State())

	for {
		select {
		case <-ctx.Done():
			return
		case state, ok := <-states:
			if !ok {
				return
			}
			g.apply(state)
		}
	}
}

func (g *Guard) apply(state auth.State) {
	g.mu.Lock()
	g.evaluateLocked(state)
	g.mu.Unlock()
}

func (g *Guard) evaluateLocked(state auth.State) {
	d := Decide(state, g.current)
	if !d.Redirect || d.Target == g.current {
		return
	}
	g.current = d.Target
	obs.NavRedirect(string(d.Target))
	g.router.Navigate(d.Target)
}
