package ports

import (
	"context"

	"github.com/futtest/voting-system/internal/core/domain"
)

// SessionStore abstracts session state keyed by an opaque token, so sessions
// can live in process memory (default) or in Redis. Implementations generate
// the token on Create and apply a fixed TTL from creation; there is no
// sliding renewal.
type SessionStore interface {
	// Create stores the identity under a fresh random token and returns it.
	Create(ctx context.Context, identity domain.SessionIdentity) (string, error)
	// Get resolves a token. Returns domain.ErrSessionNotFound when the token
	// is unknown or the session has expired.
	Get(ctx context.Context, token string) (*domain.SessionIdentity, error)
	// Destroy removes a session. Destroying an absent token is a no-op.
	Destroy(ctx context.Context, token string) error
}
