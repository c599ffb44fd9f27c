package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/qcommerce/account-service/internal/core/domain"
)

const resetTokenTTL = 30 * time.Minute

// ResetTokenStore keeps one-time password-reset tokens in Redis.
// Key format: reset:<token> -> email, expiring after resetTokenTTL.
type ResetTokenStore struct {
	client *redis.Client
}

// NewResetTokenStore creates a ResetTokenStore wrapping the given Redis client.
func NewResetTokenStore(client *redis.Client) *ResetTokenStore {
	return &ResetTokenStore{client: client}
}

// Store saves the token for its email with the standard TTL.
func (s *ResetTokenStore) Store(ctx context.Context, token, email string) error {
	if err := s.client.Set(ctx, s.key(token), email, resetTokenTTL).Err(); err != nil {
		return fmt.Errorf("store reset token: %w", err)
	}
	return nil
}

// Consume atomically fetches and deletes the token, returning the email it
// was issued for. An unknown or expired token yields
// domain.ErrResetTokenInvalid.
func (s *ResetTokenStore) Consume(ctx context.Context, token string) (string, error) {
	email, err := s.client.GetDel(ctx, s.key(token)).Result()
	if err == redis.Nil {
		return "", domain.ErrResetTokenInvalid
	}
	if err != nil {
		return "", fmt.Errorf("consume reset token: %w", err)
	}
	return email, nil
}

func (s *ResetTokenStore) key(token string) string {
	return fmt.Sprintf("reset:%s", token)
}
