package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/futtest/voting-system/internal/core/domain"
)

var identity = domain.SessionIdentity{UserID: "u1", Login: "alice", Role: domain.RoleSuperAdmin}

func TestMemoryStore_CreateAndGet(t *testing.T) {
	store := NewMemoryStore(time.Hour)

	token, err := store.Create(context.Background(), identity)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if token == "" {
		t.Fatalf("expected opaque token")
	}

	got, err := store.Get(context.Background(), token)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if *got != identity {
		t.Fatalf("expected %+v, got %+v", identity, *got)
	}
}

func TestMemoryStore_TokensAreUnique(t *testing.T) {
	store := NewMemoryStore(time.Hour)

	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		token, err := store.Create(context.Background(), identity)
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if _, dup := seen[token]; dup {
			t.Fatalf("duplicate token issued: %s", token)
		}
		seen[token] = struct{}{}
	}
}

func TestMemoryStore_UnknownToken(t *testing.T) {
	store := NewMemoryStore(time.Hour)

	if _, err := store.Get(context.Background(), "no-such-token"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestMemoryStore_Expiry(t *testing.T) {
	store := NewMemoryStore(10 * time.Millisecond)

	token, err := store.Create(context.Background(), identity)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	time.Sleep(25 * time.Millisecond)

	if _, err := store.Get(context.Background(), token); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected expired session to be gone, got %v", err)
	}
}

func TestMemoryStore_DestroyIsIdempotent(t *testing.T) {
	store := NewMemoryStore(time.Hour)

	token, err := store.Create(context.Background(), identity)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := store.Destroy(context.Background(), token); err != nil {
		t.Fatalf("destroy: %v", err)
	}
	if err := store.Destroy(context.Background(), token); err != nil {
		t.Fatalf("second destroy must succeed: %v", err)
	}
	if err := store.Destroy(context.Background(), "never-existed"); err != nil {
		t.Fatalf("destroying an absent token must succeed: %v", err)
	}

	if _, err := store.Get(context.Background(), token); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected session gone after destroy, got %v", err)
	}
}
