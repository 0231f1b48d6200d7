package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/hrdesk/feedback-api/internal/core/domain"
	"github.com/hrdesk/feedback-api/internal/core/ports"
)

// principalPayload is the identity nested under "admin" or "employee".
type principalPayload struct {
	ID       string `json:"id"`
	Role     string `json:"role"`
	Email    string `json:"email,omitempty"`
	Username string `json:"username,omitempty"`
}

// tokenClaims carries exactly one of Admin or Employee. LegacyID and
// LegacyRole describe the old flat token shape, which is never issued.
type tokenClaims struct {
	Admin      *principalPayload `json:"admin,omitempty"`
	Employee   *principalPayload `json:"employee,omitempty"`
	LegacyID   string            `json:"id,omitempty"`
	LegacyRole string            `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 session tokens.
type TokenService struct {
	secret      []byte
	ttl         time.Duration
	revocations ports.RevocationStore
	now         func() time.Time
}

// NewTokenService returns a TokenService. An empty secret is rejected so the
// process cannot start with an unsigned or guessable key. revocations may be nil.
func NewTokenService(secret string, ttl time.Duration, revocations ports.RevocationStore) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("token service: signing secret is required")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenService{
		secret:      []byte(secret),
		ttl:         ttl,
		revocations: revocations,
		now:         time.Now,
	}, nil
}

// TTL returns the lifetime given to issued tokens.
func (s *TokenService) TTL() time.Duration { return s.ttl }

// Issue mints a token embedding the principal under its kind.
func (s *TokenService) Issue(p domain.Principal) (string, error) {
	if p.ID == "" {
		return "", errors.New("issue token: principal id is empty")
	}

	now := s.now()
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	payload := &principalPayload{ID: p.ID, Role: p.Role, Email: p.Email, Username: p.Username}
	switch p.Kind {
	case domain.KindAdministrator:
		claims.Admin = payload
	case domain.KindEmployee:
		claims.Employee = payload
	default:
		return "", fmt.Errorf("issue token: unknown principal kind %q", p.Kind)
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Verify checks the signature, expiry and revocation status of raw and
// decodes the embedded principal.
func (s *TokenService) Verify(ctx context.Context, raw string) (*domain.Session, error) {
	claims := &tokenClaims{}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	tkn, err := parser.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidToken, err)
	}
	if !tkn.Valid {
		return nil, domain.ErrInvalidToken
	}

	session, err := decodeSession(claims)
	if err != nil {
		return nil, err
	}

	if s.revocations != nil && session.TokenID != "" {
		revoked, err := s.revocations.IsRevoked(ctx, session.TokenID)
		if err != nil {
			return nil, fmt.Errorf("verify token: revocation lookup: %w", err)
		}
		if revoked {
			return nil, domain.ErrTokenRevoked
		}
	}

	return session, nil
}

func decodeSession(claims *tokenClaims) (*domain.Session, error) {
	session := &domain.Session{TokenID: claims.RegisteredClaims.ID}
	if claims.ExpiresAt != nil {
		session.ExpiresAt = claims.ExpiresAt.Time
	}

	var (
		payload *principalPayload
		kind    domain.PrincipalKind
	)
	switch {
	case claims.Admin != nil && claims.Employee != nil:
		return nil, domain.ErrMalformedPrincipal
	case claims.Admin != nil:
		payload, kind = claims.Admin, domain.KindAdministrator
	case claims.Employee != nil:
		payload, kind = claims.Employee, domain.KindEmployee
	case claims.LegacyID != "":
		role := claims.LegacyRole
		if role == "" {
			role = domain.RoleEmployee
		}
		session.Legacy = true
		session.Principal = domain.Principal{Kind: domain.KindEmployee, ID: claims.LegacyID, Role: role}
		return session, nil
	default:
		return nil, domain.ErrMalformedPrincipal
	}

	if payload.ID == "" {
		return nil, domain.ErrMalformedPrincipal
	}
	session.Principal = domain.Principal{
		Kind:     kind,
		ID:       payload.ID,
		Role:     payload.Role,
		Email:    payload.Email,
		Username: payload.Username,
	}
	return session, nil
}
