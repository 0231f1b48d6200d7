package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hrdesk/feedback-api/internal/api/metrics"
	"github.com/hrdesk/feedback-api/internal/core/ports"
)

// EmployeeHandler serves admin-side employee management and employee self-service.
type EmployeeHandler struct {
	service ports.EmployeeService
}

func NewEmployeeHandler(service ports.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{service: service}
}

// Add handles POST /api/employees/add.
//
// @Summary      Provision an employee
// @Description  Creates an employee under the calling administrator with a generated password, returned once.
// @Tags         employees
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        body  body      addEmployeeRequest  true  "Employee details"
// @Success      201   {object}  addEmployeeResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/employees/add [post]
func (h *EmployeeHandler) Add(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	var req addEmployeeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.service.Add(c.Request().Context(), p, ports.AddEmployeeInput{
		Username: req.Username,
		Email:    req.Email,
		Role:     req.Role,
	})
	if err != nil {
		return err
	}
	metrics.EmployeesProvisionedTotal.Inc()

	return c.JSON(http.StatusCreated, addEmployeeResponse{
		Message:            "Employee added successfully",
		Employee:           res.Employee,
		TemporaryPassword:  res.TemporaryPassword,
		NotificationQueued: res.NotificationQueued,
	})
}

// List handles GET /api/employees.
//
// @Summary      List the administrator's employees
// @Tags         employees
// @Produce      json
// @Security     TokenAuth
// @Success      200  {array}   domain.Employee
// @Failure      403  {object}  errorResponse
// @Router       /api/employees [get]
func (h *EmployeeHandler) List(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	employees, err := h.service.List(c.Request().Context(), p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, employees)
}

// Get handles GET /api/employees/:id.
//
// @Summary      Get an employee
// @Tags         employees
// @Produce      json
// @Security     TokenAuth
// @Param        id   path      string  true  "Employee ID"
// @Success      200  {object}  domain.Employee
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/employees/{id} [get]
func (h *EmployeeHandler) Get(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	employee, err := h.service.Get(c.Request().Context(), p, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, employee)
}

// Delete handles DELETE /api/employees/:id.
//
// @Summary      Remove an employee
// @Tags         employees
// @Produce      json
// @Security     TokenAuth
// @Param        id   path      string  true  "Employee ID"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/employees/{id} [delete]
func (h *EmployeeHandler) Delete(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), p, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Employee removed successfully"})
}

// Me handles GET /api/employees/me.
//
// @Summary      Current employee
// @Tags         employees
// @Produce      json
// @Security     TokenAuth
// @Success      200  {object}  domain.Employee
// @Failure      401  {object}  errorResponse
// @Router       /api/employees/me [get]
func (h *EmployeeHandler) Me(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	employee, err := h.service.Me(c.Request().Context(), p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, employee)
}

// UpdateProfile handles PUT /api/employees/profile.
//
// @Summary      Update own profile
// @Tags         employees
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        body  body      updateProfileRequest  true  "Profile"
// @Success      200   {object}  domain.Employee
// @Failure      400   {object}  errorResponse
// @Router       /api/employees/profile [put]
func (h *EmployeeHandler) UpdateProfile(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	var req updateProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	employee, err := h.service.UpdateProfile(c.Request().Context(), p, req.Username, req.Email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, employee)
}

// ChangePassword handles PUT /api/employees/change-password.
//
// @Summary      Change own password
// @Tags         employees
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        body  body      changePasswordRequest  true  "Passwords"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Router       /api/employees/change-password [put]
func (h *EmployeeHandler) ChangePassword(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	var req changePasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.service.ChangePassword(c.Request().Context(), p, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Password updated successfully"})
}

// CompanyDetails handles GET /api/employees/company-details.
//
// @Summary      Company of the calling employee
// @Tags         employees
// @Produce      json
// @Security     TokenAuth
// @Success      200  {object}  domain.Company
// @Failure      404  {object}  errorResponse
// @Router       /api/employees/company-details [get]
func (h *EmployeeHandler) CompanyDetails(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	company, err := h.service.CompanyDetails(c.Request().Context(), p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, company)
}

// CompanyByName handles GET /api/employees/company-by-name/:companyName.
//
// @Summary      Look up a company by name
// @Tags         employees
// @Produce      json
// @Security     TokenAuth
// @Param        companyName  path      string  true  "Company name (case-insensitive)"
// @Success      200          {object}  domain.Company
// @Failure      404          {object}  errorResponse
// @Router       /api/employees/company-by-name/{companyName} [get]
func (h *EmployeeHandler) CompanyByName(c echo.Context) error {
	company, err := h.service.CompanyByName(c.Request().Context(), c.Param("companyName"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, company)
}
