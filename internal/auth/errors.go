package auth

import "errors"

var (
	ErrInvalidRole  = errors.New("auth: invalid role")
	ErrNoSession    = errors.New("auth: no session")
	ErrNotResolved  = errors.New("auth: role not resolved")
	ErrInvalidToken = errors.New("auth: invalid token")
)
