package auth

import (
	"context"
	"strings"
)

type identityContextKey struct{}
type roleContextKey struct{}
type tokenContextKey struct{}

// ContextWithIdentity stores the authenticated identity id and role in
// the context so downstream calls (audit, stores) can attribute work.
func ContextWithIdentity(ctx context.Context, identityID string, role Role) context.Context {
	identityID = strings.TrimSpace(identityID)
	if identityID == "" {
		return ctx
	}
	ctx = context.WithValue(ctx, identityContextKey{}, identityID)
	if role != RoleUnresolved {
		ctx = context.WithValue(ctx, roleContextKey{}, role)
	}
	return ctx
}

// IdentityFromContext extracts the authenticated identity id.
func IdentityFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	v, ok := ctx.Value(identityContextKey{}).(string)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// RoleFromContext returns the role stored in context, if any.
func RoleFromContext(ctx context.Context) (Role, bool) {
	if ctx == nil {
		return RoleUnresolved, false
	}
	v, ok := ctx.Value(roleContextKey{}).(Role)
	if !ok || v == RoleUnresolved {
		return RoleUnresolved, false
	}
	return v, true
}

// HasRole checks whether the context carries the given role.
func HasRole(ctx context.Context, role Role) bool {
	got, ok := RoleFromContext(ctx)
	return ok && got == role
}

// ContextWithToken stores the raw bearer token for outgoing remote calls.
func ContextWithToken(ctx context.Context, token string) context.Context {
	if token == "" {
		return ctx
	}
	return context.WithValue(ctx, tokenContextKey{}, token)
}

// TokenFromContext returns the bearer token if previously attached.
func TokenFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	v, ok := ctx.Value(tokenContextKey{}).(string)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}
