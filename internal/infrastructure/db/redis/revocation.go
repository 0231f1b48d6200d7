package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const revocationPrefix = "revoked:"

// minRevocationTTL keeps a key alive briefly even when the token is already
// at or past its expiry, so in-flight requests still see it revoked.
const minRevocationTTL = time.Minute

// RevocationStore implements ports.RevocationStore backed by Redis.
// Key format: revoked:<jti>, expiring when the token would have.
type RevocationStore struct {
	client redis.Cmdable
	now    func() time.Time
}

// NewRevocationStore creates a RevocationStore wrapping the given Redis client.
func NewRevocationStore(client redis.Cmdable) *RevocationStore {
	return &RevocationStore{client: client, now: time.Now}
}

// Revoke marks tokenID as revoked until the token's own expiry.
func (s *RevocationStore) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	ttl := until.Sub(s.now())
	if ttl < minRevocationTTL {
		ttl = minRevocationTTL
	}
	if err := s.client.Set(ctx, s.key(tokenID), "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// IsRevoked reports whether tokenID has been revoked. Errors are returned
// to the caller, which must treat them as a failed check.
func (s *RevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("revocation check: %w", err)
	}
	return n > 0, nil
}

func (s *RevocationStore) key(tokenID string) string {
	return revocationPrefix + tokenID
}
