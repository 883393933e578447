// Package gateway talks to the hosted auth service: credential
// exchange, token refresh and sign-out. It hands sessions to the auth
// store but never decides roles or navigation itself.
package gateway

import (
	"context"
	"errors"

	"blushhush.app/internal/auth"
)

var (
	ErrBadCredentials = errors.New("gateway: invalid credentials")
	ErrUnavailable    = errors.New("gateway: auth service unavailable")
)

// Gateway exchanges credentials and tokens for sessions.
type Gateway interface {
	SignIn(ctx context.Context, email, password string) (*auth.Session, error)
	Refresh(ctx context.Context, refreshToken string) (*auth.Session, error)
	SignOut(ctx context.Context, accessToken string) error
}
