package ports

import (
	"context"
	"time"

	"github.com/clinicore/clinic-system/internal/core/domain"
)

// UserRepository defines persistence operations for operator accounts.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// Upsert creates the user or replaces its password hash when it already
	// exists. Used only by the bootstrap routine.
	Upsert(ctx context.Context, user *domain.User) (*domain.User, error)
}

// SessionStore holds server-side login sessions keyed by an opaque id.
type SessionStore interface {
	// Create opens a session bound to userID with the given idle window and
	// returns its opaque id.
	Create(ctx context.Context, userID string, ttl time.Duration) (string, error)
	// Touch returns the user bound to the session and extends its expiry to
	// now+ttl (sliding window). Absent or expired sessions yield
	// domain.ErrSessionNotFound.
	Touch(ctx context.Context, id string, ttl time.Duration) (string, error)
	// Delete removes the session. Deleting an unknown id is not an error.
	Delete(ctx context.Context, id string) error
}

// AuthService defines login, logout, and account bootstrap.
type AuthService interface {
	// Login verifies credentials and opens a session, returning the signed
	// cookie token. Any failure is reported as domain.ErrInvalidCredentials
	// without revealing which field was wrong.
	Login(ctx context.Context, username, password string) (string, error)
	// Logout tears down the session carried by the signed token. Unknown or
	// already-expired tokens are ignored.
	Logout(ctx context.Context, token string) error
	// Bootstrap creates or re-keys the operator account from deployment
	// credentials. Called once at startup.
	Bootstrap(ctx context.Context, username, password string) error
}
