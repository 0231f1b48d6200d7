package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/hrdesk/feedback-api/internal/core/domain"
)

// RBAC enforces role-based access control on the principal attached by Auth.
// The principal must be of the given kind and, when roles are listed, hold
// one of them.
func RBAC(kind domain.PrincipalKind, allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	denied := domain.ErrNotResourceOwner
	switch kind {
	case domain.KindAdministrator:
		denied = domain.ErrAdminRoleRequired
	case domain.KindEmployee:
		denied = domain.ErrEmployeeRequired
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, ok := PrincipalFrom(c)
			if !ok {
				return domain.ErrUnauthenticated
			}
			if p.Kind != kind {
				return denied
			}
			if len(allowed) > 0 {
				if _, ok := allowed[p.Role]; !ok {
					return denied
				}
			}
			return next(c)
		}
	}
}

// AdminOnly admits administrators holding the admin role.
func AdminOnly() echo.MiddlewareFunc {
	return RBAC(domain.KindAdministrator, domain.RoleAdmin)
}
