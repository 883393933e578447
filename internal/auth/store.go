package auth

import (
	"context"
	"sync"
	"time"

	"blushhush.app/internal/bus"
	"blushhush.app/internal/obs"
)

const defaultResolveTimeout = 10 * time.Second

// Resolver looks up the single role associated with an identity. It must
// be idempotent and free of side effects: the store may invoke it more
// than once for the same identity on auth-event replay.
type Resolver interface {
	Resolve(ctx context.Context, identityID string) (Role, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(ctx context.Context, identityID string) (Role, error)

func (f ResolverFunc) Resolve(ctx context.Context, identityID string) (Role, error) {
	return f(ctx, identityID)
}

// Store owns the process-wide auth state. It is the single writer;
// everything else (navigation guard, screens) reads via State or
// Subscribe. Session-change notifications from the identity gateway feed
// the one mutation entry point, SetSession.
type Store struct {
	mu       sync.Mutex
	state    State
	resolver Resolver

	events *bus.Bus[State]

	now            func() time.Time
	resolveTimeout time.Duration
}

// StoreOption configures Store behavior.
type StoreOption func(*Store)

// WithClock overrides the time source (useful for tests).
func WithClock(fn func() time.Time) StoreOption {
	return func(s *Store) {
		if fn != nil {
			s.now = fn
		}
	}
}

// WithResolveTimeout bounds a single role resolution attempt.
func WithResolveTimeout(d time.Duration) StoreOption {
	return func(s *Store) {
		if d > 0 {
			s.resolveTimeout = d
		}
	}
}

// NewStore constructs the session store. The initial state is loading:
// until the gateway delivers the first notification (sign-in or startup
// token rehydration) nothing may be concluded from it.
func NewStore(resolver Resolver, opts ...StoreOption) *Store {
	s := &Store{
		state:          State{Loading: true},
		resolver:       resolver,
		events:         bus.New[State](16),
		now:            time.Now,
		resolveTimeout: defaultResolveTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current auth state snapshot.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe returns a channel of state snapshots published after every
// transition, and a cancel function detaching the subscriber.
func (s *Store) Subscribe() (<-chan State, func()) {
	return s.events.Subscribe()
}

// SetSession is the single mutation entry point, driven by gateway
// session-change notifications. A nil session means "session absent":
// session and role are cleared immediately, without waiting on any
// pending resolution. A non-nil session enters the loading state and
// kicks off role resolution in the background.
func (s *Store) SetSession(session *Session) {
	s.mu.Lock()
	if session == nil {
		obs.SessionEvent("absent")
		s.state = State{Session: nil, Role: RoleUnresolved, Loading: false}
		s.publishLocked()
		s.mu.Unlock()
		return
	}

	obs.SessionEvent("present")
	s.state = State{Session: session, Role: RoleUnresolved, Loading: true}
	s.publishLocked()
	s.mu.Unlock()

	go s.resolveRole(session.IdentityID)
}

// resolveRole performs one resolver lookup and applies the result,
// stamped with the identity it was computed for. A late result for an
// identity that is no longer current is discarded: it must never clobber
// the state of a newer session or of a signed-out store.
func (s *Store) resolveRole(identityID string) {
	ctx, cancel := context.WithTimeout(context.Background(), s.resolveTimeout)
	defer cancel()

	role, err := s.resolver.Resolve(ctx, identityID)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Session == nil || s.state.Session.IdentityID != identityID {
		obs.RoleResolution("stale")
		return
	}

	if err != nil {
		// Non-fatal: the guard treats an authenticated session with an
		// unresolved role as "authenticated but not yet routable".
		obs.RoleResolution("error")
		obs.Error("role resolution failed", map[string]any{
			"identity_id": identityID,
			"error":       err.Error(),
		})
		s.state = State{Session: s.state.Session, Role: RoleUnresolved, Loading: false}
		s.publishLocked()
		return
	}

	obs.RoleResolution("ok")
	s.state = State{Session: s.state.Session, Role: role, Loading: false}
	s.publishLocked()
}

func (s *Store) publishLocked() {
	s.events.Publish(s.state)
}
