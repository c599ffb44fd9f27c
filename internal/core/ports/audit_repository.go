package ports

import (
	"context"

	"github.com/qcommerce/account-service/internal/core/domain"
)

// AuditRepository appends events to the auth audit trail.
type AuditRepository interface {
	Insert(ctx context.Context, event *domain.AuthEvent) error
}
