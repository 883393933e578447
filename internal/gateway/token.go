package gateway

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"blushhush.app/internal/auth"
)

// Claims is the subset of access-token claims the client core needs.
// Tokens are verified server-side; locally they are only decoded to
// recover the identity and expiry, so no signature check happens here.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// DecodeClaims parses the access token without verifying its signature.
func DecodeClaims(accessToken string) (*Claims, error) {
	var claims Claims
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(accessToken, &claims); err != nil {
		return nil, fmt.Errorf("%w: %v", auth.ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing sub claim", auth.ErrInvalidToken)
	}
	return &claims, nil
}

// SessionFromTokens rebuilds a session from persisted tokens, e.g. on
// app start before any network call.
func SessionFromTokens(accessToken, refreshToken string) (*auth.Session, error) {
	claims, err := DecodeClaims(accessToken)
	if err != nil {
		return nil, err
	}
	s := &auth.Session{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		IdentityID:   claims.Subject,
		Email:        claims.Email,
	}
	if claims.IssuedAt != nil {
		s.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		s.ExpiresAt = claims.ExpiresAt.Time
	}
	return s, nil
}

// tokenLifetime reports how long the session stays valid from now.
func tokenLifetime(s *auth.Session, now time.Time) time.Duration {
	if s.ExpiresAt.IsZero() {
		return 0
	}
	return s.ExpiresAt.Sub(now)
}
