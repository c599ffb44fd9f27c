package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/qcommerce/account-service/internal/core/domain"
	"github.com/qcommerce/account-service/internal/core/ports"
)

// LoginThrottle abstracts the failed-attempt counter (Redis). Throttle
// errors are logged and ignored; throttling degrades open.
type LoginThrottle interface {
	TooMany(ctx context.Context, email string) (bool, error)
	Fail(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}

// ResetTokenStore holds one-time password-reset tokens (Redis, TTL-bound).
type ResetTokenStore interface {
	Store(ctx context.Context, token, email string) error
	Consume(ctx context.Context, token string) (string, error)
}

// AuditRecorder accepts audit events without blocking the request path.
type AuditRecorder interface {
	Record(event domain.AuthEvent)
}

// ResetTokenGenerator produces opaque one-time reset tokens.
type ResetTokenGenerator func() string

// AuthService sequences registration, login, logout, token refresh, and
// password resets around the stateless token core.
type AuthService struct {
	users    ports.UserRepository
	roles    ports.RoleRepository
	tokens   ports.TokenService
	throttle LoginThrottle
	resets   ResetTokenStore
	audit    AuditRecorder
	newToken ResetTokenGenerator
	log      zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	roles ports.RoleRepository,
	tokens ports.TokenService,
	throttle LoginThrottle,
	resets ResetTokenStore,
	audit AuditRecorder,
	newToken ResetTokenGenerator,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:    users,
		roles:    roles,
		tokens:   tokens,
		throttle: throttle,
		resets:   resets,
		audit:    audit,
		newToken: newToken,
		log:      log,
	}
}

// Register creates a new active account and returns freshly issued tokens.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.AuthResponse, error) {
	email := domain.NormalizeEmail(in.Email)

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("register: lookup email: %w", err)
	}

	roles, err := s.resolveRoles(ctx, in.Roles)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:        email,
		Phone:        in.Phone,
		PasswordHash: string(hash),
		Active:       true,
		Locale:       in.Locale,
		Roles:        roles,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.record(domain.AuthEvent{Email: email, Kind: domain.EventRegistered, Source: in.Source})
	s.log.Info().Str("email", email).Int64("user_id", created.ID).Msg("user registered")

	return s.authResponse(created)
}

// resolveRoles validates every supplied role reference against the role
// store; an unresolvable or nil id is invalid input, never silently dropped.
// When no roles are supplied, the default ROLE_USER is assigned.
func (s *AuthService) resolveRoles(ctx context.Context, refs []domain.RoleRef) ([]domain.Role, error) {
	if len(refs) == 0 {
		role, err := s.roles.FindByName(ctx, domain.RoleUser)
		if err != nil {
			return nil, fmt.Errorf("register: default role: %w", err)
		}
		return []domain.Role{*role}, nil
	}

	roles := make([]domain.Role, 0, len(refs))
	seen := make(map[int64]struct{}, len(refs))
	for i, ref := range refs {
		if ref.ID == nil {
			return nil, &domain.InvalidInputError{
				Field:  fmt.Sprintf("roles[%d].id", i),
				Reason: "role id is required",
			}
		}
		role, err := s.roles.FindByID(ctx, *ref.ID)
		if err != nil {
			if errors.Is(err, domain.ErrRoleNotFound) {
				return nil, &domain.InvalidInputError{
					Field:  fmt.Sprintf("roles[%d].id", i),
					Reason: fmt.Sprintf("unknown role id %d", *ref.ID),
				}
			}
			return nil, fmt.Errorf("register: resolve role: %w", err)
		}
		if _, dup := seen[role.ID]; dup {
			continue
		}
		seen[role.ID] = struct{}{}
		roles = append(roles, *role)
	}
	return roles, nil
}

// Login authenticates by email and password. Unknown email and wrong
// password produce the same error so callers cannot enumerate accounts.
func (s *AuthService) Login(ctx context.Context, email, password, source string) (*domain.AuthResponse, error) {
	email = domain.NormalizeEmail(email)

	if s.throttle != nil {
		blocked, err := s.throttle.TooMany(ctx, email)
		if err != nil {
			s.log.Warn().Err(err).Str("email", email).Msg("login throttle check failed, proceeding")
		} else if blocked {
			return nil, domain.ErrTooManyAttempts
		}
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.loginFailed(ctx, email, source, "unknown email")
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: lookup email: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.loginFailed(ctx, email, source, "wrong password")
		return nil, domain.ErrInvalidCredentials
	}

	if !user.Active {
		s.loginFailed(ctx, email, source, "inactive account")
		return nil, domain.ErrInactiveAccount
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, email); err != nil {
			s.log.Warn().Err(err).Str("email", email).Msg("login throttle reset failed")
		}
	}

	s.record(domain.AuthEvent{Email: email, Kind: domain.EventLoginSucceeded, Source: source})
	s.log.Info().Str("email", email).Msg("login succeeded")

	return s.authResponse(user)
}

func (s *AuthService) loginFailed(ctx context.Context, email, source, detail string) {
	if s.throttle != nil {
		if err := s.throttle.Fail(ctx, email); err != nil {
			s.log.Warn().Err(err).Str("email", email).Msg("login throttle update failed")
		}
	}
	s.record(domain.AuthEvent{Email: email, Kind: domain.EventLoginFailed, Source: source, Detail: detail})
}

// Refresh exchanges a valid refresh token for a new token pair. The account
// must still exist and be active.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*domain.AuthResponse, error) {
	claims, err := s.tokens.Verify(refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("refresh: lookup email: %w", err)
	}
	if !user.Active {
		return nil, domain.ErrInactiveAccount
	}

	s.record(domain.AuthEvent{Email: user.Email, Kind: domain.EventTokenRefreshed})
	return s.authResponse(user)
}

// Logout records the event for an authenticated principal. Tokens are
// stateless and there is no server-side session to invalidate; clearing the
// request-scoped principal is the transport layer's job, and a token
// denylist remains an explicit future extension. Logout without a principal
// is a no-op.
func (s *AuthService) Logout(ctx context.Context, principal *domain.Principal) {
	if principal == nil {
		s.log.Debug().Msg("logout without authenticated principal")
		return
	}
	s.record(domain.AuthEvent{Email: principal.Email, Kind: domain.EventLogout})
	s.log.Info().Str("email", principal.Email).Msg("user logged out")
}

// CurrentUser returns the public view of the account behind the principal.
func (s *AuthService) CurrentUser(ctx context.Context, email string) (*domain.UserView, error) {
	user, err := s.users.FindByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		return nil, err
	}
	return user.View(), nil
}

// RequestPasswordReset issues a one-time reset token when the account
// exists. It succeeds either way so responses cannot be used to enumerate
// registered emails. Delivery is out of scope; the token is logged for the
// operator.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	email = domain.NormalizeEmail(email)

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.log.Debug().Str("email", email).Msg("password reset requested for unknown email")
			return nil
		}
		return fmt.Errorf("password reset: lookup email: %w", err)
	}

	token := s.newToken()
	if err := s.resets.Store(ctx, token, user.Email); err != nil {
		return fmt.Errorf("password reset: store token: %w", err)
	}

	s.log.Info().Str("email", user.Email).Str("reset_token", token).Msg("password reset token issued")
	return nil
}

// ConfirmPasswordReset consumes a reset token and replaces the account's
// password hash.
func (s *AuthService) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	email, err := s.resets.Consume(ctx, token)
	if err != nil {
		return err
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("password reset: lookup email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("password reset: hash password: %w", err)
	}
	user.PasswordHash = string(hash)
	user.UpdatedAt = time.Now().UTC()

	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("password reset: update user: %w", err)
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, user.Email); err != nil {
			s.log.Warn().Err(err).Str("email", user.Email).Msg("login throttle reset failed")
		}
	}

	s.record(domain.AuthEvent{Email: user.Email, Kind: domain.EventPasswordReset})
	s.log.Info().Str("email", user.Email).Msg("password reset confirmed")
	return nil
}

// ListUsers returns the public view of every account.
func (s *AuthService) ListUsers(ctx context.Context) ([]*domain.UserView, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	views := make([]*domain.UserView, 0, len(users))
	for _, u := range users {
		views = append(views, u.View())
	}
	return views, nil
}

func (s *AuthService) authResponse(user *domain.User) (*domain.AuthResponse, error) {
	access, err := s.tokens.IssueAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}
	refresh, err := s.tokens.IssueRefreshToken(user)
	if err != nil {
		return nil, fmt.Errorf("issue refresh token: %w", err)
	}
	return &domain.AuthResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         user.View(),
	}, nil
}

func (s *AuthService) record(event domain.AuthEvent) {
	if s.audit == nil {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	s.audit.Record(event)
}
