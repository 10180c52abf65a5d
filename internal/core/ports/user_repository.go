package ports

import (
	"context"

	"github.com/taskboard/tracker-api/internal/core/domain"
)

// UserRepository is the credential store adapter.
type UserRepository interface {
	// Create persists a new account. A duplicate email yields domain.ErrUserExists.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
}
