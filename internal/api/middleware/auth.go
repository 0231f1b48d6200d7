package middleware

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/hrdesk/feedback-api/internal/api/metrics"
	"github.com/hrdesk/feedback-api/internal/core/domain"
	"github.com/hrdesk/feedback-api/internal/core/ports"
)

// TokenHeader carries the session token. It is not a bearer Authorization header.
const TokenHeader = "x-auth-token"

// Context keys set by Auth.
const (
	PrincipalKey = "principal"
	SessionKey   = "session"
)

// Gate selects which principal kinds a route group accepts.
type Gate int

const (
	// GateAny accepts administrator and employee tokens.
	GateAny Gate = iota
	// GateEmployee accepts employee tokens only.
	GateEmployee
)

type AuthOptions struct {
	Gate Gate
	// AllowLegacyID lets GateEmployee accept the old token shape carrying a
	// bare "id" claim. It has no effect on GateAny.
	AllowLegacyID bool
}

// Auth verifies the token in TokenHeader and attaches the decoded principal
// and session to the context.
func Auth(verifier ports.TokenVerifier, opts AuthOptions) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := strings.TrimSpace(c.Request().Header.Get(TokenHeader))
			if raw == "" {
				metrics.AuthFailuresTotal.WithLabelValues("missing_token").Inc()
				return domain.ErrUnauthenticated
			}

			session, err := verifier.Verify(c.Request().Context(), raw)
			if err != nil {
				metrics.AuthFailuresTotal.WithLabelValues(failureReason(err)).Inc()
				return err
			}

			if session.Legacy && (opts.Gate != GateEmployee || !opts.AllowLegacyID) {
				metrics.AuthFailuresTotal.WithLabelValues("legacy_rejected").Inc()
				return domain.ErrMalformedPrincipal
			}
			if opts.Gate == GateEmployee && session.Principal.Kind != domain.KindEmployee {
				metrics.AuthFailuresTotal.WithLabelValues("malformed_principal").Inc()
				return domain.ErrMalformedPrincipal
			}

			c.Set(PrincipalKey, session.Principal)
			c.Set(SessionKey, session)
			return next(c)
		}
	}
}

// PrincipalFrom returns the principal attached by Auth.
func PrincipalFrom(c echo.Context) (domain.Principal, bool) {
	p, ok := c.Get(PrincipalKey).(domain.Principal)
	return p, ok && p.ID != ""
}

// SessionFrom returns the session attached by Auth.
func SessionFrom(c echo.Context) (*domain.Session, bool) {
	s, ok := c.Get(SessionKey).(*domain.Session)
	return s, ok && s != nil
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrTokenRevoked):
		return "revoked"
	case errors.Is(err, domain.ErrInvalidToken):
		return "invalid_token"
	case errors.Is(err, domain.ErrMalformedPrincipal):
		return "malformed_principal"
	default:
		return "error"
	}
}
