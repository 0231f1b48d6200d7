package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/hrdesk/feedback-api/internal/api/middleware"
	"github.com/hrdesk/feedback-api/internal/core/domain"
)

// ctxPrincipal extracts the principal injected by the Auth middleware. A
// missing principal means the route was mounted without a gate.
func ctxPrincipal(c echo.Context) (domain.Principal, error) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		return domain.Principal{}, domain.ErrUnauthenticated
	}
	return p, nil
}

func ctxSession(c echo.Context) (*domain.Session, error) {
	s, ok := middleware.SessionFrom(c)
	if !ok {
		return nil, domain.ErrUnauthenticated
	}
	return s, nil
}

// bindAndValidate decodes the request body into req and runs struct validation.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domain.Invalid("Invalid request payload")
	}
	return c.Validate(req)
}
