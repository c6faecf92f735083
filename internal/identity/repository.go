package identity

import (
	"context"
	"errors"
)

var (
	// ErrNotFound occurs when no user matches the lookup key.
	ErrNotFound = errors.New("user not found")

	// ErrExists occurs when registering an email that is already taken.
	ErrExists = errors.New("user already exists")
)

// Repository persists users. All state is in-memory for the process lifetime;
// the interface exists so tests can inject isolated stores.
type Repository interface {
	Create(ctx context.Context, user User) error
	FindByEmail(ctx context.Context, email string) (User, error)
	FindByID(ctx context.Context, id string) (User, error)
	UpdateTokenVersion(ctx context.Context, id string, version int) error
	UpdateLastLogin(ctx context.Context, id string) error
}
