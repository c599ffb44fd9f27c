package service

import "github.com/google/uuid"

// NewResetToken returns an opaque one-time password-reset token. The token
// carries no claims; its only meaning is the Redis entry it maps to.
func NewResetToken() string {
	return uuid.NewString()
}
