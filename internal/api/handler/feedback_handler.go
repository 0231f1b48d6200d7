package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hrdesk/feedback-api/internal/api/metrics"
	"github.com/hrdesk/feedback-api/internal/core/domain"
	"github.com/hrdesk/feedback-api/internal/core/ports"
)

// FeedbackHandler handles feedback threads between administrators and employees.
type FeedbackHandler struct {
	service ports.FeedbackService
}

func NewFeedbackHandler(service ports.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{service: service}
}

// SubmitAsAdmin handles POST /api/feedback.
//
// @Summary      Send feedback as an administrator
// @Tags         feedback
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        body  body      submitFeedbackRequest  true  "Feedback"
// @Success      201   {object}  submitFeedbackResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/feedback [post]
func (h *FeedbackHandler) SubmitAsAdmin(c echo.Context) error {
	return h.submit(c, h.service.SubmitAsAdmin)
}

// SubmitAsEmployee handles POST /api/feedback/employee. The sender is the
// calling employee.
//
// @Summary      Send feedback as an employee
// @Tags         feedback
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        body  body      submitFeedbackRequest  true  "Feedback"
// @Success      201   {object}  submitFeedbackResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/feedback/employee [post]
func (h *FeedbackHandler) SubmitAsEmployee(c echo.Context) error {
	return h.submit(c, h.service.SubmitAsEmployee)
}

type submitFunc func(ctx context.Context, p domain.Principal, in ports.SubmitFeedbackInput) (*domain.Feedback, error)

func (h *FeedbackHandler) submit(c echo.Context, fn submitFunc) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	var req submitFeedbackRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	fb, err := fn(c.Request().Context(), p, toFeedbackInput(req))
	if err != nil {
		return err
	}
	metrics.FeedbackSubmittedTotal.WithLabelValues(string(p.Kind)).Inc()
	return c.JSON(http.StatusCreated, toSubmitFeedbackResponse(fb))
}

// ListForAdmin handles GET /api/feedback/admin.
//
// @Summary      List the administrator's feedback
// @Tags         feedback
// @Produce      json
// @Security     TokenAuth
// @Success      200  {array}   domain.Feedback
// @Failure      403  {object}  errorResponse
// @Router       /api/feedback/admin [get]
func (h *FeedbackHandler) ListForAdmin(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	items, err := h.service.ListForAdmin(c.Request().Context(), p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// ListForParticipant handles GET /api/feedback/employee?email=.
//
// @Summary      List threads involving an e-mail address
// @Tags         feedback
// @Produce      json
// @Security     TokenAuth
// @Param        email  query     string  false  "Participant e-mail; employees default to their own"
// @Success      200    {array}   domain.Feedback
// @Failure      400    {object}  errorResponse
// @Failure      403    {object}  errorResponse
// @Router       /api/feedback/employee [get]
func (h *FeedbackHandler) ListForParticipant(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	items, err := h.service.ListForParticipant(c.Request().Context(), p, c.QueryParam("email"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// New handles GET /api/feedback/new and returns an empty draft.
//
// @Summary      Empty feedback draft
// @Tags         feedback
// @Produce      json
// @Security     TokenAuth
// @Success      200  {object}  feedbackDraft
// @Router       /api/feedback/new [get]
func (h *FeedbackHandler) New(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, feedbackDraft{
		ID:          "new",
		SenderEmail: p.Email,
		Status:      string(domain.FeedbackPending),
		Attachments: []string{},
		SentAt:      time.Now().UTC(),
		IsNew:       true,
	})
}

// Get handles GET /api/feedback/:id.
//
// @Summary      Get a feedback thread
// @Tags         feedback
// @Produce      json
// @Security     TokenAuth
// @Param        id   path      string  true  "Feedback ID"
// @Success      200  {object}  domain.Feedback
// @Failure      400  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/feedback/{id} [get]
func (h *FeedbackHandler) Get(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	fb, err := h.service.Get(c.Request().Context(), p, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, fb)
}

// RespondAsAdmin handles PUT /api/feedback/respond/:id.
//
// @Summary      Respond to feedback as the owning administrator
// @Tags         feedback
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        id    path      string                  true  "Feedback ID"
// @Param        body  body      respondFeedbackRequest  true  "Response"
// @Success      200   {object}  feedbackResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/feedback/respond/{id} [put]
func (h *FeedbackHandler) RespondAsAdmin(c echo.Context) error {
	return h.respond(c, h.service.RespondAsAdmin)
}

// RespondAsEmployee handles PUT /api/feedback/employee/respond/:id.
//
// @Summary      Respond to feedback as its receiver
// @Tags         feedback
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        id    path      string                  true  "Feedback ID"
// @Param        body  body      respondFeedbackRequest  true  "Response"
// @Success      200   {object}  feedbackResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/feedback/employee/respond/{id} [put]
func (h *FeedbackHandler) RespondAsEmployee(c echo.Context) error {
	return h.respond(c, h.service.RespondAsEmployee)
}

type respondFunc func(ctx context.Context, p domain.Principal, id, response string) (*domain.Feedback, error)

func (h *FeedbackHandler) respond(c echo.Context, fn respondFunc) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	var req respondFeedbackRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	fb, err := fn(c.Request().Context(), p, c.Param("id"), req.Response)
	if err != nil {
		return err
	}
	metrics.FeedbackTransitionsTotal.WithLabelValues(string(fb.Status)).Inc()
	return c.JSON(http.StatusOK, feedbackResponse{Message: "Response sent successfully", Feedback: fb})
}

// MarkReviewed handles PUT /api/feedback/review/:id.
//
// @Summary      Mark feedback as reviewed
// @Tags         feedback
// @Produce      json
// @Security     TokenAuth
// @Param        id   path      string  true  "Feedback ID"
// @Success      200  {object}  feedbackResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /api/feedback/review/{id} [put]
func (h *FeedbackHandler) MarkReviewed(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	fb, err := h.service.MarkReviewed(c.Request().Context(), p, c.Param("id"))
	if err != nil {
		return err
	}
	metrics.FeedbackTransitionsTotal.WithLabelValues(string(fb.Status)).Inc()
	return c.JSON(http.StatusOK, feedbackResponse{Message: "Feedback marked as reviewed", Feedback: fb})
}
