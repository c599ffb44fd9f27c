package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/qcommerce/account-service/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors: a stable
// machine-readable code plus a human message.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Public messages for the unauthorized family. Unknown email and wrong
// password share one byte-identical message so responses cannot be used to
// enumerate accounts.
const (
	msgInvalidCredentials = "Invalid email or password"
	msgInactiveAccount    = "User account is inactive"
	msgInvalidToken       = "Invalid or expired token"
	msgInternal           = "An internal server error occurred. Please try again later."
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps domain errors to their HTTP status and stable error code.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"code": "...", "message": "..."}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, code, msg := resolveError(err, log, c)
		_ = c.JSON(status, errorResponse{Code: code, Message: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string, string) {
	// Echo's own errors (404 from router, middleware rejections, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, httpCode(he.Code), fmt.Sprintf("%v", he.Message)
	}

	var validation *domain.ValidationError
	if errors.As(err, &validation) {
		return http.StatusBadRequest, "VALIDATION_FAILED", validation.Message
	}

	var invalid *domain.InvalidInputError
	if errors.As(err, &invalid) {
		return http.StatusBadRequest, "INVALID_INPUT", invalid.Error()
	}

	// Known domain errors → deterministic status and code.
	switch {
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusBadRequest, "USER_ALREADY_EXISTS", "User with this email already exists"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "UNAUTHORIZED", msgInvalidCredentials
	case errors.Is(err, domain.ErrInactiveAccount):
		return http.StatusUnauthorized, "UNAUTHORIZED", msgInactiveAccount
	case errors.Is(err, domain.ErrTokenExpired),
		errors.Is(err, domain.ErrTokenMalformed),
		errors.Is(err, domain.ErrTokenSignatureInvalid):
		return http.StatusUnauthorized, "UNAUTHORIZED", msgInvalidToken
	case errors.Is(err, domain.ErrTooManyAttempts):
		return http.StatusTooManyRequests, "TOO_MANY_ATTEMPTS", "Too many failed login attempts, try again later"
	case errors.Is(err, domain.ErrResetTokenInvalid):
		return http.StatusBadRequest, "INVALID_INPUT", "Invalid or expired reset token"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "USER_NOT_FOUND", "User not found"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "INTERNAL_ERROR", msgInternal
}

func httpCode(status int) string {
	switch status {
	case http.StatusUnauthorized:
		return "UNAUTHORIZED"
	case http.StatusForbidden:
		return "FORBIDDEN"
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusBadRequest:
		return "VALIDATION_FAILED"
	default:
		return "INTERNAL_ERROR"
	}
}
