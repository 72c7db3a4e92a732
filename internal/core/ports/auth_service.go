package ports

import (
	"context"

	"github.com/futtest/voting-system/internal/core/domain"
)

type AuthService interface {
	Login(ctx context.Context, login, password string) (*domain.SessionIdentity, error)
	Register(ctx context.Context, login, password, confirm string) (*domain.User, error)
}
