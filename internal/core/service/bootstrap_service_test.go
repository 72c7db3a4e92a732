package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/futtest/voting-system/internal/core/domain"
	"github.com/futtest/voting-system/internal/infrastructure/db/file"
)

func newBootstrapFixture(t *testing.T) (*BootstrapService, *file.UserRepository, string) {
	t.Helper()
	dir := t.TempDir()
	repo := file.NewUserRepository(filepath.Join(dir, "users.json"))
	credsPath := filepath.Join(dir, "README.me")
	svc := NewBootstrapService(repo, credsPath, bcrypt.MinCost, zerolog.Nop())
	return svc, repo, credsPath
}

// readCredentials extracts the login/password pair from the credentials
// document's delimited block.
func readCredentials(t *testing.T, path string) (login, password string) {
	t.Helper()
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read credentials document: %v", err)
	}
	for _, line := range strings.Split(string(raw), "\n") {
		if v, ok := strings.CutPrefix(line, "- Login: "); ok {
			login = v
		}
		if v, ok := strings.CutPrefix(line, "- Password: "); ok {
			password = v
		}
	}
	if login == "" || password == "" {
		t.Fatalf("credentials block not found in:\n%s", raw)
	}
	return login, password
}

func TestBootstrap_CreatesSuperAdmin(t *testing.T) {
	svc, repo, credsPath := newBootstrapFixture(t)

	if err := svc.EnsureSuperAdmin(context.Background()); err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}

	users, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("expected 1 user, got %d", len(users))
	}
	admin := users[0]
	if admin.Role != domain.RoleSuperAdmin {
		t.Fatalf("expected super_admin role, got %s", admin.Role)
	}
	if !strings.HasPrefix(admin.Login, "superadmin_") {
		t.Fatalf("unexpected login: %s", admin.Login)
	}
	if admin.ID == "" || admin.CreatedAt.IsZero() {
		t.Fatalf("expected id and creation time, got %+v", admin)
	}

	login, password := readCredentials(t, credsPath)
	if login != admin.Login {
		t.Fatalf("document login %q does not match stored login %q", login, admin.Login)
	}
	// The store holds only the hash; the document's plaintext must verify
	// against it.
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		t.Fatalf("document password does not match stored hash: %v", err)
	}
	if strings.Contains(admin.PasswordHash, password) {
		t.Fatalf("store must not contain the plaintext password")
	}
}

func TestBootstrap_Idempotent(t *testing.T) {
	svc, repo, _ := newBootstrapFixture(t)

	if err := svc.EnsureSuperAdmin(context.Background()); err != nil {
		t.Fatalf("first bootstrap failed: %v", err)
	}
	if err := svc.EnsureSuperAdmin(context.Background()); err != nil {
		t.Fatalf("second bootstrap failed: %v", err)
	}

	users, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	admins := 0
	for _, u := range users {
		if u.Role == domain.RoleSuperAdmin {
			admins++
		}
	}
	if admins != 1 {
		t.Fatalf("expected exactly one super_admin, got %d", admins)
	}
}

func TestBootstrap_LeavesPromotedAdminsAlone(t *testing.T) {
	svc, repo, credsPath := newBootstrapFixture(t)

	hash, _ := bcrypt.GenerateFromPassword([]byte("chosen"), bcrypt.MinCost)
	if _, err := repo.Create(context.Background(), &domain.User{
		ID: "u1", Login: "root", PasswordHash: string(hash), Role: domain.RoleSuperAdmin,
	}); err != nil {
		t.Fatalf("seed admin: %v", err)
	}

	if err := svc.EnsureSuperAdmin(context.Background()); err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}

	count, err := repo.Count(context.Background())
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("bootstrap must be a no-op when a super_admin exists, got %d users", count)
	}
	if _, err := os.Stat(credsPath); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("no-op bootstrap must not touch the credentials document")
	}
}

func TestBootstrap_DocumentFailureIsNotFatal(t *testing.T) {
	dir := t.TempDir()
	repo := file.NewUserRepository(filepath.Join(dir, "users.json"))

	// Pointing the document at a directory forces the write to fail.
	credsPath := filepath.Join(dir, "subdir")
	if err := os.Mkdir(credsPath, 0o700); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	svc := NewBootstrapService(repo, credsPath, bcrypt.MinCost, zerolog.Nop())

	if err := svc.EnsureSuperAdmin(context.Background()); err != nil {
		t.Fatalf("document failure must not abort bootstrap: %v", err)
	}

	users, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(users) != 1 || users[0].Role != domain.RoleSuperAdmin {
		t.Fatalf("super admin record must persist despite document failure: %+v", users)
	}
}

func TestBootstrap_GeneratedCredentialsVerify(t *testing.T) {
	svc, _, credsPath := newBootstrapFixture(t)
	if err := svc.EnsureSuperAdmin(context.Background()); err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}

	login, password := readCredentials(t, credsPath)
	if len(password) < 8 {
		t.Fatalf("password too short for 48 bits of entropy: %q", password)
	}

	repo := file.NewUserRepository(filepath.Join(filepath.Dir(credsPath), "users.json"))
	authSvc := NewAuthService(repo, bcrypt.MinCost)

	if _, err := authSvc.Login(context.Background(), login, "wrong-password"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}

	identity, err := authSvc.Login(context.Background(), login, password)
	if err != nil {
		t.Fatalf("login with generated credentials failed: %v", err)
	}
	if identity.Role != domain.RoleSuperAdmin {
		t.Fatalf("expected super_admin identity, got %+v", identity)
	}
}
