package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hrdesk/feedback-api/internal/core/ports"
)

type CompanyHandler struct {
	service ports.CompanyService
}

func NewCompanyHandler(service ports.CompanyService) *CompanyHandler {
	return &CompanyHandler{service: service}
}

// Get handles GET /api/company.
//
// @Summary      Get the administrator's company
// @Tags         company
// @Produce      json
// @Security     TokenAuth
// @Success      200  {object}  domain.Company
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/company [get]
func (h *CompanyHandler) Get(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	company, err := h.service.Get(c.Request().Context(), p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, company)
}

// Save handles POST /api/company. Empty fields leave stored values untouched.
//
// @Summary      Create or update the administrator's company
// @Tags         company
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        body  body      companyRequest  true  "Company details"
// @Success      200   {object}  companyResponse
// @Success      201   {object}  companyResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/company [post]
func (h *CompanyHandler) Save(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	var req companyRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	company, created, err := h.service.Save(c.Request().Context(), p, toCompanyInput(req))
	if err != nil {
		return err
	}
	if created {
		return c.JSON(http.StatusCreated, companyResponse{Message: "Company details created", Company: company})
	}
	return c.JSON(http.StatusOK, companyResponse{Message: "Company details updated", Company: company})
}

// RemoveLogo handles DELETE /api/company/logo.
//
// @Summary      Remove the company logo
// @Tags         company
// @Produce      json
// @Security     TokenAuth
// @Success      200  {object}  companyResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/company/logo [delete]
func (h *CompanyHandler) RemoveLogo(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	company, err := h.service.RemoveLogo(c.Request().Context(), p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, companyResponse{Message: "Company logo removed", Company: company})
}
