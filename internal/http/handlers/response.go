// Package handlers provides HTTP handler implementations for the public API.
//
// This file defines the standard response utilities used across all
// endpoints: the structured error envelope, the error-to-status translation
// for service-level errors, and small helpers for success responses.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/spacenote/spacenote/internal/http/middleware"
	"github.com/spacenote/spacenote/internal/schema"
	"github.com/spacenote/spacenote/internal/services"
)

// ErrorResponse is the standard error envelope returned by all endpoints.
//
// Fields:
//   - RequestID: correlation ID echoed from X-Request-ID, used to match
//     server logs with client-side errors.
//   - Code: a stable, machine-readable string (see errors.go constants).
//   - Message: a human-readable description, safe for display to users.
type ErrorResponse struct {
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	Code      string `json:"code" example:"not_found"`
	Message   string `json:"message" example:"space not found"`
}

// fail aborts the request with a structured error and logs server-side
// errors (>=500) with the request-scoped logger.
func fail(c *gin.Context, status int, code, msg string) {
	resp := ErrorResponse{
		RequestID: c.Writer.Header().Get("X-Request-ID"),
		Code:      code,
		Message:   msg,
	}

	if status >= http.StatusInternalServerError {
		lg := middleware.LoggerFrom(c)
		lg.Error().
			Int("status", status).
			Str("code", code).
			Str("message", msg).
			Msg("api error")
	}

	c.AbortWithStatusJSON(status, resp)
}

// Fail is the exported variant of fail(), for router-level fallbacks.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

// failErr translates a service-level error into the HTTP envelope. Unknown
// errors become 500 internal_error.
func failErr(c *gin.Context, err error) {
	var fieldErr *schema.FieldError
	switch {
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrSpaceNotFound),
		errors.Is(err, services.ErrNoteNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, err.Error())

	case errors.Is(err, services.ErrInvalidToken):
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, err.Error())

	case errors.Is(err, services.ErrAdminRequired),
		errors.Is(err, services.ErrNotMember):
		fail(c, http.StatusForbidden, ErrCodeForbidden, err.Error())

	case errors.As(err, &fieldErr),
		errors.Is(err, services.ErrDuplicateUsername),
		errors.Is(err, services.ErrDuplicateSlug),
		errors.Is(err, services.ErrDuplicateField),
		errors.Is(err, services.ErrAlreadyMember),
		errors.Is(err, services.ErrInvalidSlug),
		errors.Is(err, services.ErrInvalidField),
		errors.Is(err, services.ErrInvalidUsername),
		errors.Is(err, services.ErrEmptyContent),
		errors.Is(err, services.ErrSelfDelete):
		fail(c, http.StatusBadRequest, ErrCodeValidation, err.Error())

	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
	}
}

// ok writes a success JSON response with the given status code.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}

// noContent writes an HTTP 204 No Content response.
func noContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
