package gateway

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"blushhush.app/internal/auth"
)

func signedToken(t *testing.T, claims Claims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := tok.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func TestDecodeClaims(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	raw := signedToken(t, Claims{
		Email: "m@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "ident-1",
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})

	claims, err := DecodeClaims(raw)
	if err != nil {
		t.Fatalf("DecodeClaims: %v", err)
	}
	if claims.Subject != "ident-1" || claims.Email != "m@example.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestDecodeClaimsRejectsGarbage(t *testing.T) {
	if _, err := DecodeClaims("not-a-jwt"); !errors.Is(err, auth.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestDecodeClaimsRequiresSubject(t *testing.T) {
	raw := signedToken(t, Claims{Email: "m@example.com"})
	if _, err := DecodeClaims(raw); !errors.Is(err, auth.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestSessionFromTokens(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	raw := signedToken(t, Claims{
		Email: "m@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "ident-1",
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})

	s, err := SessionFromTokens(raw, "rt-1")
	if err != nil {
		t.Fatalf("SessionFromTokens: %v", err)
	}
	if s.IdentityID != "ident-1" || s.RefreshToken != "rt-1" {
		t.Fatalf("unexpected session: %+v", s)
	}
	if !s.ExpiresAt.Equal(exp) {
		t.Fatalf("unexpected expiry: %v != %v", s.ExpiresAt, exp)
	}
}
