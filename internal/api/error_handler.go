package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/hrdesk/feedback-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

type errorKind struct {
	kind    error
	status  int
	code    string
	message string
}

// Conflicts surface as 400 to stay compatible with existing clients.
var errorKinds = []errorKind{
	{domain.ErrUnauthenticated, http.StatusUnauthorized, "unauthenticated", "No token, authorization denied"},
	{domain.ErrInvalidToken, http.StatusUnauthorized, "invalid_token", "Token is not valid"},
	{domain.ErrMalformedPrincipal, http.StatusUnauthorized, "malformed_principal", "Invalid token structure"},
	{domain.ErrForbidden, http.StatusForbidden, "forbidden", "Access forbidden"},
	{domain.ErrNotFound, http.StatusNotFound, "not_found", "Not found"},
	{domain.ErrValidation, http.StatusBadRequest, "validation_error", "Validation failed"},
	{domain.ErrConflict, http.StatusBadRequest, "conflict", "Already exists"},
	{domain.ErrInvalidCredentials, http.StatusBadRequest, "invalid_credentials", "Invalid credentials"},
	{domain.ErrInvalidTransition, http.StatusUnprocessableEntity, "invalid_transition", ""},
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps domain error kinds to their HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"message": "...", "error": "<code>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	// Echo's own errors (router 404/405, body limit, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Message: fmt.Sprintf("%v", he.Message), Error: statusCode(he.Code)}
	}

	for _, k := range errorKinds {
		if !errors.Is(err, k.kind) {
			continue
		}
		msg := k.message
		var ke *domain.KindError
		switch {
		case errors.As(err, &ke):
			msg = ke.Message
		case msg == "":
			msg = err.Error()
		}
		return k.status, errorResponse{Message: msg, Error: k.code}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Message: "Server error", Error: "internal"}
}

func statusCode(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "validation_error"
	case http.StatusUnauthorized:
		return "unauthenticated"
	case http.StatusForbidden:
		return "forbidden"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusMethodNotAllowed:
		return "method_not_allowed"
	case http.StatusRequestEntityTooLarge:
		return "payload_too_large"
	}
	if status >= http.StatusInternalServerError {
		return "internal"
	}
	return ""
}
