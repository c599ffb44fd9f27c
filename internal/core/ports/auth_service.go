package ports

import (
	"context"

	"github.com/qcommerce/account-service/internal/core/domain"
)

// RegisterInput carries the fields accepted at registration. Roles is
// optional; when empty the default ROLE_USER is assigned.
type RegisterInput struct {
	Email    string
	Password string
	Phone    string
	Locale   string
	Roles    []domain.RoleRef
	Source   string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.AuthResponse, error)
	Login(ctx context.Context, email, password, source string) (*domain.AuthResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*domain.AuthResponse, error)
	Logout(ctx context.Context, principal *domain.Principal)
	CurrentUser(ctx context.Context, email string) (*domain.UserView, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ConfirmPasswordReset(ctx context.Context, token, newPassword string) error
}

// UserAdminService exposes administrative account queries.
type UserAdminService interface {
	ListUsers(ctx context.Context) ([]*domain.UserView, error)
}
