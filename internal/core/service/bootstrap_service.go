package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/futtest/voting-system/internal/core/domain"
	"github.com/futtest/voting-system/internal/core/ports"
	"github.com/futtest/voting-system/internal/pkg/credsdoc"
)

const (
	loginPrefix = "superadmin_"

	// 3 bytes → 6 hex chars for the login suffix, 6 bytes → 48 bits of
	// password entropy in base64url.
	loginSuffixBytes = 3
	passwordBytes    = 6
)

// BootstrapService guarantees a super-admin account exists before the server
// accepts requests.
type BootstrapService struct {
	repo       ports.UserRepository
	credsPath  string
	bcryptCost int
	log        zerolog.Logger
}

func NewBootstrapService(repo ports.UserRepository, credsPath string, bcryptCost int, log zerolog.Logger) *BootstrapService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &BootstrapService{repo: repo, credsPath: credsPath, bcryptCost: bcryptCost, log: log}
}

// EnsureSuperAdmin provisions a super-admin with random credentials on first
// run and records the plaintext pair in the credentials document. Idempotent:
// when any super_admin record already exists it does nothing. A failure to
// persist the record aborts startup; a failure to write the document is only
// logged, since the hash is already durable and the two files are independent.
func (s *BootstrapService) EnsureSuperAdmin(ctx context.Context) error {
	users, err := s.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}
	for _, u := range users {
		if u.Role == domain.RoleSuperAdmin {
			s.log.Debug().Str("login", u.Login).Msg("super admin already provisioned")
			return nil
		}
	}

	login, password, err := generateCredentials()
	if err != nil {
		return fmt.Errorf("bootstrap: generate credentials: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("bootstrap: hash password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Login:        login,
		PasswordHash: string(hash),
		Role:         domain.RoleSuperAdmin,
		CreatedAt:    time.Now().UTC(),
	}
	if _, err := s.repo.Create(ctx, user); err != nil {
		return fmt.Errorf("bootstrap: persist super admin: %w", err)
	}

	// The document is the only place the plaintext password is recorded; it
	// is never logged.
	if err := credsdoc.Upsert(s.credsPath, login, password); err != nil {
		s.log.Warn().Err(err).Str("path", s.credsPath).
			Msg("super admin created but credentials document not written")
	} else {
		s.log.Info().Str("login", login).Str("path", s.credsPath).
			Msg("super admin created on first start, credentials recorded")
	}

	return nil
}

func generateCredentials() (login, password string, err error) {
	suffix := make([]byte, loginSuffixBytes)
	if _, err = rand.Read(suffix); err != nil {
		return "", "", err
	}
	secret := make([]byte, passwordBytes)
	if _, err = rand.Read(secret); err != nil {
		return "", "", err
	}
	login = loginPrefix + hex.EncodeToString(suffix)
	password = base64.RawURLEncoding.EncodeToString(secret)
	return login, password, nil
}
