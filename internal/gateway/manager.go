package gateway

import (
	"context"
	"time"

	"blushhush.app/internal/audit"
	"blushhush.app/internal/auth"
	"blushhush.app/internal/obs"
)

// Manager glues the gateway, the token store and the session store
// together: every session change it produces flows into the session
// store through its single mutation entry point.
type Manager struct {
	gw       Gateway
	tokens   TokenStore
	sessions *auth.Store
	now      func() time.Time
}

// ManagerOption configures Manager behavior.
type ManagerOption func(*Manager)

// WithManagerClock overrides the time source.
func WithManagerClock(fn func() time.Time) ManagerOption {
	return func(m *Manager) {
		if fn != nil {
			m.now = fn
		}
	}
}

func NewManager(gw Gateway, tokens TokenStore, sessions *auth.Store, opts ...ManagerOption) *Manager {
	m := &Manager{
		gw:       gw,
		tokens:   tokens,
		sessions: sessions,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// OnSessionChange exposes the stream of auth state transitions the
// manager produces. The returned cancel detaches the subscriber.
func (m *Manager) OnSessionChange() (<-chan auth.State, func()) {
	return m.sessions.Subscribe()
}

// SignIn exchanges credentials, persists the tokens and pushes the
// session into the session store. On failure the store is told the
// session is absent, so the UI lands on the sign-in screen.
func (m *Manager) SignIn(ctx context.Context, email, password string) error {
	s, err := m.gw.SignIn(ctx, email, password)
	if err != nil {
		m.sessions.SetSession(nil)
		return err
	}
	if err := m.tokens.Save(s.AccessToken, s.RefreshToken); err != nil {
		obs.Error("token persist failed", map[string]any{"error": err.Error()})
	}
	m.sessions.SetSession(s)
	_ = audit.LogEvent(auth.ContextWithIdentity(ctx, s.IdentityID, auth.RoleUnresolved), "sign_in", map[string]any{
		"email": s.Email,
	})
	return nil
}

// SignOut clears local state first, then best-effort revokes the
// session remotely. The user is signed out even when the network is
// down.
func (m *Manager) SignOut(ctx context.Context) error {
	st := m.sessions.State()
	m.sessions.SetSession(nil)
	if err := m.tokens.Clear(); err != nil {
		obs.Error("token clear failed", map[string]any{"error": err.Error()})
	}
	if st.Session != nil {
		if err := m.gw.SignOut(ctx, st.Session.AccessToken); err != nil {
			obs.Error("remote sign-out failed", map[string]any{"error": err.Error()})
		}
		_ = audit.LogEvent(auth.ContextWithIdentity(ctx, st.Session.IdentityID, st.Role), "sign_out", nil)
	}
	return nil
}

// Rehydrate restores the session from persisted tokens on startup. An
// expired access token is traded for a fresh one via the refresh token;
// when nothing usable is stored the store is told the session is
// absent, ending the initial loading state.
func (m *Manager) Rehydrate(ctx context.Context) {
	access, refresh, ok, err := m.tokens.Load()
	if err != nil {
		obs.Error("token load failed", map[string]any{"error": err.Error()})
		m.sessions.SetSession(nil)
		return
	}
	if !ok {
		m.sessions.SetSession(nil)
		return
	}

	s, err := SessionFromTokens(access, refresh)
	if err != nil {
		obs.Error("stored token unusable", map[string]any{"error": err.Error()})
		_ = m.tokens.Clear()
		m.sessions.SetSession(nil)
		return
	}

	if tokenLifetime(s, m.now().UTC()) < time.Minute && refresh != "" {
		fresh, err := m.gw.Refresh(ctx, refresh)
		if err != nil {
			obs.Error("token refresh failed", map[string]any{"error": err.Error()})
			_ = m.tokens.Clear()
			m.sessions.SetSession(nil)
			return
		}
		if err := m.tokens.Save(fresh.AccessToken, fresh.RefreshToken); err != nil {
			obs.Error("token persist failed", map[string]any{"error": err.Error()})
		}
		s = fresh
	}

	m.sessions.SetSession(s)
}
