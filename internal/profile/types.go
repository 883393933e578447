package profile

import (
	"errors"
	"time"

	"blushhush.app/internal/auth"
)

// Profile is the per-identity record in the relational store. The role
// column is the authorization source of truth for the app.
type Profile struct {
	ID        string
	Role      auth.Role
	FullName  string
	AvatarURL string
	CreatedAt time.Time
}

var (
	ErrNotFound      = errors.New("profile: not found")
	ErrAlreadyExists = errors.New("profile: already exists")
	ErrInvalidInput  = errors.New("profile: invalid input")
)
