package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/hrdesk/feedback-api/internal/core/domain"
	"github.com/hrdesk/feedback-api/internal/core/ports"
)

type PropertyHandler struct {
	service ports.PropertyService
}

func NewPropertyHandler(service ports.PropertyService) *PropertyHandler {
	return &PropertyHandler{service: service}
}

// Create handles POST /api/properties.
//
// @Summary      Create a property listing
// @Tags         properties
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        body  body      propertyRequest  true  "Property"
// @Success      201   {object}  domain.Property
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/properties [post]
func (h *PropertyHandler) Create(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	var req propertyRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	property, err := h.service.Create(c.Request().Context(), p, toPropertyInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, property)
}

// List handles GET /api/properties.
//
// @Summary      List visible properties
// @Tags         properties
// @Produce      json
// @Security     TokenAuth
// @Param        status  query     string  false  "available | rented | sold | maintenance"
// @Param        type    query     string  false  "apartment | house | office | land | other"
// @Param        search  query     string  false  "Partial match on title or city"
// @Param        page    query     int     false  "Page, 1-based"
// @Param        limit   query     int     false  "Page size, max 100"
// @Success      200     {object}  listPropertiesResponse
// @Failure      400     {object}  errorResponse
// @Router       /api/properties [get]
func (h *PropertyHandler) List(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	page, err := queryInt(c, "page")
	if err != nil {
		return err
	}
	limit, err := queryInt(c, "limit")
	if err != nil {
		return err
	}

	result, err := h.service.List(c.Request().Context(), p, ports.ListPropertiesInput{
		Status: c.QueryParam("status"),
		Type:   c.QueryParam("type"),
		Search: c.QueryParam("search"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListPropertiesResponse(result))
}

// Get handles GET /api/properties/:id.
//
// @Summary      Get a property
// @Tags         properties
// @Produce      json
// @Security     TokenAuth
// @Param        id   path      string  true  "Property ID"
// @Success      200  {object}  domain.Property
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/properties/{id} [get]
func (h *PropertyHandler) Get(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	property, err := h.service.Get(c.Request().Context(), p, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, property)
}

// Update handles PUT /api/properties/:id. Zero fields are left unchanged.
//
// @Summary      Update a property
// @Tags         properties
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        id    path      string           true  "Property ID"
// @Param        body  body      propertyRequest  true  "Fields to change"
// @Success      200   {object}  domain.Property
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/properties/{id} [put]
func (h *PropertyHandler) Update(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	var req propertyRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	property, err := h.service.Update(c.Request().Context(), p, c.Param("id"), toPropertyInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, property)
}

// Delete handles DELETE /api/properties/:id.
//
// @Summary      Delete a property
// @Tags         properties
// @Produce      json
// @Security     TokenAuth
// @Param        id   path      string  true  "Property ID"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/properties/{id} [delete]
func (h *PropertyHandler) Delete(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), p, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Property deleted successfully"})
}

// queryInt parses an optional integer query parameter; absent means zero.
func queryInt(c echo.Context, name string) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.Invalid(name + " must be a number")
	}
	return n, nil
}

type BookmarkHandler struct {
	service ports.BookmarkService
}

func NewBookmarkHandler(service ports.BookmarkService) *BookmarkHandler {
	return &BookmarkHandler{service: service}
}

// Add handles POST /api/bookmarks.
//
// @Summary      Bookmark a property
// @Tags         bookmarks
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        body  body      bookmarkRequest  true  "Bookmark"
// @Success      201   {object}  domain.Bookmark
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/bookmarks [post]
func (h *BookmarkHandler) Add(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	var req bookmarkRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	bookmark, err := h.service.Add(c.Request().Context(), p, req.PropertyID, req.Note)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, bookmark)
}

// List handles GET /api/bookmarks.
//
// @Summary      List own bookmarks
// @Tags         bookmarks
// @Produce      json
// @Security     TokenAuth
// @Success      200  {array}  domain.Bookmark
// @Router       /api/bookmarks [get]
func (h *BookmarkHandler) List(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	bookmarks, err := h.service.List(c.Request().Context(), p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bookmarks)
}

// Remove handles DELETE /api/bookmarks/:id.
//
// @Summary      Remove a bookmark
// @Tags         bookmarks
// @Produce      json
// @Security     TokenAuth
// @Param        id   path      string  true  "Bookmark ID"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/bookmarks/{id} [delete]
func (h *BookmarkHandler) Remove(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	if err := h.service.Remove(c.Request().Context(), p, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Bookmark removed"})
}
