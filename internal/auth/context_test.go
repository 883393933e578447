package auth

import (
	"context"
	"testing"
)

func TestContextIdentityRoundTrip(t *testing.T) {
	ctx := ContextWithIdentity(context.Background(), "user-7", RoleManager)

	id, ok := IdentityFromContext(ctx)
	if !ok || id != "user-7" {
		t.Fatalf("unexpected identity: %q ok=%v", id, ok)
	}
	if !HasRole(ctx, RoleManager) {
		t.Fatal("expected manager role")
	}
	if HasRole(ctx, RoleAdmin) {
		t.Fatal("unexpected admin role")
	}
}

func TestContextWithoutIdentity(t *testing.T) {
	if _, ok := IdentityFromContext(context.Background()); ok {
		t.Fatal("expected no identity")
	}
	if _, ok := RoleFromContext(context.Background()); ok {
		t.Fatal("expected no role")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	ctx := ContextWithToken(context.Background(), "bearer-xyz")
	tok, ok := TokenFromContext(ctx)
	if !ok || tok != "bearer-xyz" {
		t.Fatalf("unexpected token: %q", tok)
	}
	if _, ok := TokenFromContext(context.Background()); ok {
		t.Fatal("expected no token")
	}
}
