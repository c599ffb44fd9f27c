package ports

import (
	"context"

	"github.com/qcommerce/account-service/internal/core/domain"
)

// RoleRepository resolves role reference data. Seed is called once at startup
// and must be idempotent.
type RoleRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.Role, error)
	FindByName(ctx context.Context, name string) (*domain.Role, error)
	Seed(ctx context.Context) error
}
