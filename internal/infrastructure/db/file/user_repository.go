// Package file implements the credential store as a single JSON document with
// whole-file replace semantics: every read loads the full document, every
// mutation rewrites it atomically. A single in-process mutex serializes
// load-mutate-save sequences so concurrent writers cannot clobber each other;
// the design assumes one server process owns the file.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/futtest/voting-system/internal/core/domain"
)

type UserRepository struct {
	path string
	mu   sync.Mutex
}

func NewUserRepository(path string) *UserRepository {
	return &UserRepository{path: path}
}

// document is the on-disk shape: {"users":[...]}, insertion order preserved.
type document struct {
	Users []fileUser `json:"users"`
}

type fileUser struct {
	ID           string    `json:"id"`
	Login        string    `json:"login"`
	PasswordHash string    `json:"passwordHash"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// List returns every stored record. A missing file yields an empty collection;
// unreadable or structurally invalid content yields a storage error.
func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	doc, err := r.load()
	if err != nil {
		return nil, err
	}
	users := make([]domain.User, 0, len(doc.Users))
	for _, fu := range doc.Users {
		users = append(users, toDomain(fu))
	}
	return users, nil
}

// FindByLogin looks up a record by exact, case-sensitive login.
func (r *UserRepository) FindByLogin(ctx context.Context, login string) (*domain.User, error) {
	doc, err := r.load()
	if err != nil {
		return nil, err
	}
	for _, fu := range doc.Users {
		if fu.Login == login {
			u := toDomain(fu)
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// Create appends a record using a load-append-save sequence under the writer
// mutex. Logins are unique; a duplicate yields domain.ErrUserExists.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load()
	if err != nil {
		return nil, err
	}
	for _, fu := range doc.Users {
		if fu.Login == user.Login {
			return nil, domain.ErrUserExists
		}
	}

	doc.Users = append(doc.Users, fromDomain(*user))
	if err := r.save(doc); err != nil {
		return nil, err
	}

	created := *user
	return &created, nil
}

func (r *UserRepository) Count(ctx context.Context) (int, error) {
	doc, err := r.load()
	if err != nil {
		return 0, err
	}
	return len(doc.Users), nil
}

func (r *UserRepository) load() (*document, error) {
	raw, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &document{Users: []fileUser{}}, nil
		}
		return nil, fmt.Errorf("%w: read %s: %v", domain.ErrStorage, filepath.Base(r.path), err)
	}

	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: corrupt document: %v", domain.ErrStorage, err)
	}
	return &doc, nil
}

// save replaces the document atomically: marshal, write to a temp file in the
// same directory, rename over the target. Readers never observe a partial
// write.
func (r *UserRepository) save(doc *document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: marshal document: %v", domain.ErrStorage, err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(r.path)
	tmp, err := os.CreateTemp(dir, ".users-*.json")
	if err != nil {
		return fmt.Errorf("%w: create temp file: %v", domain.ErrStorage, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: write temp file: %v", domain.ErrStorage, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: close temp file: %v", domain.ErrStorage, err)
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: replace document: %v", domain.ErrStorage, err)
	}
	return nil
}

func toDomain(fu fileUser) domain.User {
	return domain.User{
		ID:           fu.ID,
		Login:        fu.Login,
		PasswordHash: fu.PasswordHash,
		Role:         fu.Role,
		CreatedAt:    fu.CreatedAt,
	}
}

func fromDomain(u domain.User) fileUser {
	return fileUser{
		ID:           u.ID,
		Login:        u.Login,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		CreatedAt:    u.CreatedAt,
	}
}
