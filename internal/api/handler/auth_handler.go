package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hrdesk/feedback-api/internal/api/metrics"
	"github.com/hrdesk/feedback-api/internal/core/domain"
	"github.com/hrdesk/feedback-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterAdmin creates an administrator account and returns a session token.
//
// @Summary      Register an administrator
// @Tags         admins
// @Accept       json
// @Produce      json
// @Param        body  body      registerAdminRequest  true  "Administrator details"
// @Success      201   {object}  adminAuthResponse
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/admins/register [post]
func (h *AuthHandler) RegisterAdmin(c echo.Context) error {
	var req registerAdminRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	token, admin, err := h.authService.RegisterAdmin(c.Request().Context(), ports.RegisterAdminInput{
		Username:    req.Username,
		Email:       req.Email,
		Password:    req.Password,
		CompanyName: req.CompanyName,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, adminAuthResponse{Token: token, Admin: admin})
}

// LoginAdmin authenticates an administrator.
//
// @Summary      Administrator login
// @Tags         admins
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  adminAuthResponse
// @Failure      400   {object}  errorResponse
// @Router       /api/admins/login [post]
func (h *AuthHandler) LoginAdmin(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return domain.Invalid("Invalid request payload")
	}

	token, admin, err := h.authService.LoginAdmin(c.Request().Context(), req.Email, req.Password)
	recordLogin(domain.KindAdministrator, err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, adminAuthResponse{Token: token, Admin: admin})
}

// LoginEmployee authenticates an employee.
//
// @Summary      Employee login
// @Tags         employees
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  employeeAuthResponse
// @Failure      400   {object}  errorResponse
// @Router       /api/employees/login [post]
func (h *AuthHandler) LoginEmployee(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return domain.Invalid("Invalid request payload")
	}

	token, employee, err := h.authService.LoginEmployee(c.Request().Context(), req.Email, req.Password)
	recordLogin(domain.KindEmployee, err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, employeeAuthResponse{Token: token, Employee: employee})
}

// Me returns the calling administrator.
//
// @Summary      Current administrator
// @Tags         admins
// @Produce      json
// @Security     TokenAuth
// @Success      200  {object}  domain.Admin
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/admins/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	admin, err := h.authService.CurrentAdmin(c.Request().Context(), p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, admin)
}

// Logout revokes the presented token.
//
// @Summary      Logout
// @Tags         admins, employees
// @Produce      json
// @Security     TokenAuth
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/admins/logout [post]
// @Router       /api/employees/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	if err := h.authService.Logout(c.Request().Context(), session); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Logged out"})
}

func recordLogin(kind domain.PrincipalKind, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	metrics.LoginsTotal.WithLabelValues(string(kind), result).Inc()
}
