package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/futtest/voting-system/internal/api/metrics"
	"github.com/futtest/voting-system/internal/core/domain"
	"github.com/futtest/voting-system/internal/core/ports"
)

const (
	minLoginLength    = 3
	minPasswordLength = 6
)

// AuthService implements credential verification and member registration.
type AuthService struct {
	repo       ports.UserRepository
	bcryptCost int
}

func NewAuthService(repo ports.UserRepository, bcryptCost int) *AuthService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{repo: repo, bcryptCost: bcryptCost}
}

// Login verifies a login/password pair against the credential store and
// returns the identity to bind to a session. It never touches the store
// beyond a read, and it returns the same error for an unknown login and a
// wrong password.
func (s *AuthService) Login(ctx context.Context, login, password string) (*domain.SessionIdentity, error) {
	if login == "" || password == "" {
		return nil, domain.ErrMissingCredentials
	}

	user, err := s.repo.FindByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	start := time.Now()
	mismatch := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	metrics.PasswordVerifyDuration.Observe(time.Since(start).Seconds())

	if mismatch != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	return &domain.SessionIdentity{
		UserID: user.ID,
		Login:  user.Login,
		Role:   user.Role,
	}, nil
}

// Register creates a member account. Validation rules reject short logins,
// short passwords, and mismatched confirmations before any store access.
func (s *AuthService) Register(ctx context.Context, login, password, confirm string) (*domain.User, error) {
	switch {
	case len(login) < minLoginLength:
		return nil, fmt.Errorf("%w: login must have at least %d characters", domain.ErrValidation, minLoginLength)
	case len(password) < minPasswordLength:
		return nil, fmt.Errorf("%w: password must have at least %d characters", domain.ErrValidation, minPasswordLength)
	case password != confirm:
		return nil, fmt.Errorf("%w: passwords do not match", domain.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Login:        login,
		PasswordHash: string(hash),
		Role:         domain.RoleMember,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues("failure").Inc()
		return nil, err
	}

	metrics.RegistrationsTotal.WithLabelValues("success").Inc()
	return created, nil
}
