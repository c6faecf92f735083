package identity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

var (
	// ErrInvalidCredentials is returned for both unknown emails and wrong
	// passwords so login failures stay indistinguishable.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrPasswordMismatch occurs when the confirmation password differs.
	ErrPasswordMismatch = errors.New("passwords do not match")

	// ErrPasswordTooShort occurs when the password is under 6 characters.
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")

	// ErrMissingFields occurs when a required signup field is empty.
	ErrMissingFields = errors.New("all fields are required")
)

// Service manages account lifecycle.
type Service struct {
	repo Repository
}

// NewService creates a new identity service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Register validates the signup request and stores a new user with a
// bcrypt-hashed password.
func (s *Service) Register(ctx context.Context, input RegisterInput) (User, error) {
	email := normalizeEmail(input.Email)
	if email == "" || input.Password == "" || input.ConfirmPassword == "" {
		return User{}, ErrMissingFields
	}
	if input.Password != input.ConfirmPassword {
		return User{}, ErrPasswordMismatch
	}
	if len(input.Password) < minPasswordLength {
		return User{}, ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	user := User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return User{}, err
	}

	return user, nil
}

// Authenticate verifies credentials and records the login time.
func (s *Service) Authenticate(ctx context.Context, creds Credentials) (User, error) {
	user, err := s.repo.FindByEmail(ctx, normalizeEmail(creds.Email))
	if err != nil {
		return User{}, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(creds.Password)); err != nil {
		return User{}, ErrInvalidCredentials
	}

	if err := s.repo.UpdateLastLogin(ctx, user.ID); err != nil {
		return User{}, err
	}
	user.LastLogin = time.Now().UTC()

	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
