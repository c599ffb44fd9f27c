package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/qcommerce/account-service/internal/core/domain"
)

func renderError(t *testing.T, err error) (int, errorResponse) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := NewHTTPErrorHandler(zerolog.Nop())
	handler(err, c)

	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json body: %v", err)
	}
	return rec.Code, body
}

func TestErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{
			name:       "user exists",
			err:        domain.ErrUserExists,
			wantStatus: http.StatusBadRequest,
			wantCode:   "USER_ALREADY_EXISTS",
			wantMsg:    "User with this email already exists",
		},
		{
			name:       "invalid credentials",
			err:        domain.ErrInvalidCredentials,
			wantStatus: http.StatusUnauthorized,
			wantCode:   "UNAUTHORIZED",
			wantMsg:    "Invalid email or password",
		},
		{
			name:       "inactive account",
			err:        domain.ErrInactiveAccount,
			wantStatus: http.StatusUnauthorized,
			wantCode:   "UNAUTHORIZED",
			wantMsg:    "User account is inactive",
		},
		{
			name:       "expired token",
			err:        domain.ErrTokenExpired,
			wantStatus: http.StatusUnauthorized,
			wantCode:   "UNAUTHORIZED",
			wantMsg:    "Invalid or expired token",
		},
		{
			name:       "malformed token",
			err:        domain.ErrTokenMalformed,
			wantStatus: http.StatusUnauthorized,
			wantCode:   "UNAUTHORIZED",
			wantMsg:    "Invalid or expired token",
		},
		{
			name:       "bad signature",
			err:        domain.ErrTokenSignatureInvalid,
			wantStatus: http.StatusUnauthorized,
			wantCode:   "UNAUTHORIZED",
			wantMsg:    "Invalid or expired token",
		},
		{
			name:       "throttled",
			err:        domain.ErrTooManyAttempts,
			wantStatus: http.StatusTooManyRequests,
			wantCode:   "TOO_MANY_ATTEMPTS",
			wantMsg:    "Too many failed login attempts, try again later",
		},
		{
			name:       "bad reset token",
			err:        domain.ErrResetTokenInvalid,
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_INPUT",
			wantMsg:    "Invalid or expired reset token",
		},
		{
			name:       "user not found",
			err:        domain.ErrUserNotFound,
			wantStatus: http.StatusNotFound,
			wantCode:   "USER_NOT_FOUND",
			wantMsg:    "User not found",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := renderError(t, tc.err)
			if status != tc.wantStatus {
				t.Fatalf("expected %d, got %d", tc.wantStatus, status)
			}
			if body.Code != tc.wantCode {
				t.Fatalf("expected code %q, got %q", tc.wantCode, body.Code)
			}
			if body.Message != tc.wantMsg {
				t.Fatalf("expected message %q, got %q", tc.wantMsg, body.Message)
			}
		})
	}
}

// Unknown email and wrong password must render byte-identical responses so
// the API cannot be used to enumerate accounts.
func TestErrorHandler_CredentialMessageIsOpaque(t *testing.T) {
	status1, body1 := renderError(t, domain.ErrInvalidCredentials)
	status2, body2 := renderError(t, domain.ErrInvalidCredentials)
	if status1 != status2 || body1 != body2 {
		t.Fatalf("credential failure responses differ: %+v vs %+v", body1, body2)
	}
	if body1.Message != "Invalid email or password" {
		t.Fatalf("unexpected message: %q", body1.Message)
	}
}

func TestErrorHandler_ValidationError(t *testing.T) {
	status, body := renderError(t, &domain.ValidationError{Message: "email must be a valid email"})
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
	if body.Code != "VALIDATION_FAILED" {
		t.Fatalf("expected VALIDATION_FAILED, got %q", body.Code)
	}
	if body.Message != "email must be a valid email" {
		t.Fatalf("unexpected message: %q", body.Message)
	}
}

func TestErrorHandler_InvalidInputError(t *testing.T) {
	status, body := renderError(t, &domain.InvalidInputError{Field: "roles[0].id", Reason: "role does not exist"})
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
	if body.Code != "INVALID_INPUT" {
		t.Fatalf("expected INVALID_INPUT, got %q", body.Code)
	}
	if body.Message != "roles[0].id: role does not exist" {
		t.Fatalf("unexpected message: %q", body.Message)
	}
}

func TestErrorHandler_EchoHTTPError(t *testing.T) {
	status, body := renderError(t, echo.NewHTTPError(http.StatusForbidden, "forbidden"))
	if status != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", status)
	}
	if body.Code != "FORBIDDEN" || body.Message != "forbidden" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestErrorHandler_UnexpectedError(t *testing.T) {
	status, body := renderError(t, errors.New("connection refused"))
	if status != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", status)
	}
	if body.Code != "INTERNAL_ERROR" {
		t.Fatalf("expected INTERNAL_ERROR, got %q", body.Code)
	}
	if body.Message != msgInternal {
		t.Fatalf("unexpected message: %q", body.Message)
	}
}
