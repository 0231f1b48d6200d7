package ports

import (
	"context"
	"time"

	"github.com/hrdesk/feedback-api/internal/core/domain"
)

// PasswordHasher produces and checks salted one-way password hashes.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

// TokenIssuer mints signed, time-limited tokens for a principal.
type TokenIssuer interface {
	Issue(principal domain.Principal) (string, error)
}

// TokenVerifier checks signature, expiry and revocation, and decodes the
// embedded principal. Errors wrap domain.ErrInvalidToken or
// domain.ErrMalformedPrincipal.
type TokenVerifier interface {
	Verify(ctx context.Context, raw string) (*domain.Session, error)
}

// RevocationStore tracks tokens invalidated before their expiry.
type RevocationStore interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
