package ports

import (
	"context"

	"github.com/qcommerce/account-service/internal/core/domain"
)

// UserRepository defines the interface for account persistence. Uniqueness on
// email and phone is enforced by the store itself; conflicting concurrent
// creates surface as domain.ErrUserExists.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	List(ctx context.Context) ([]*domain.User, error)
}
