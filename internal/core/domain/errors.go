package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUserExists      = errors.New("user already exists")
	ErrUserNotFound    = errors.New("user not found")
	ErrRoleNotFound    = errors.New("role not found")
	ErrInactiveAccount = errors.New("account inactive")
	ErrTooManyAttempts = errors.New("too many failed login attempts")

	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password. The two cases must stay indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrTokenExpired          = errors.New("token expired")
	ErrTokenMalformed        = errors.New("token malformed")
	ErrTokenSignatureInvalid = errors.New("token signature invalid")

	ErrResetTokenInvalid = errors.New("invalid or expired reset token")
)

// InvalidInputError marks semantically invalid input, such as a role
// reference that does not resolve. Field holds the offending path, e.g.
// "roles[2].id".
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// ValidationError marks malformed or missing request fields.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
