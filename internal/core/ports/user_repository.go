package ports

import (
	"context"

	"github.com/futtest/voting-system/internal/core/domain"
)

// UserRepository defines the interface for credential persistence. The file
// implementation re-reads the whole document on every call and serializes
// mutations internally, so callers never cache records across calls.
type UserRepository interface {
	List(ctx context.Context) ([]domain.User, error)
	FindByLogin(ctx context.Context, login string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Count(ctx context.Context) (int, error)
}
