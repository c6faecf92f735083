package identity

import "time"

// User represents a registered dashboard account.
type User struct {
	ID           string
	Email        string
	PasswordHash []byte
	TokenVersion int
	CreatedAt    time.Time
	LastLogin    time.Time
}

// Credentials carries a login attempt.
type Credentials struct {
	Email    string
	Password string
}

// RegisterInput carries a signup request.
type RegisterInput struct {
	Email           string
	Password        string
	ConfirmPassword string
}
