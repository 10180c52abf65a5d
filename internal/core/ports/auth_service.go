package ports

import (
	"context"

	"github.com/taskboard/tracker-api/internal/core/domain"
)

type AuthService interface {
	Signup(ctx context.Context, name, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Me(ctx context.Context, userID string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
}

// TokenService issues and verifies signed, time-limited bearer tokens.
type TokenService interface {
	Issue(userID string) (string, error)
	// Verify returns the user id carried by token, or domain.ErrTokenInvalid.
	Verify(token string) (string, error)
}

// PasswordHasher is a one-way salted hash with verification.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}
