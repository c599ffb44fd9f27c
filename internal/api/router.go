package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	_ "github.com/qcommerce/account-service/docs"
	"github.com/qcommerce/account-service/internal/api/handler"
	"github.com/qcommerce/account-service/internal/api/middleware"
	"github.com/qcommerce/account-service/internal/core/domain"
	"github.com/qcommerce/account-service/internal/core/service"
	"github.com/qcommerce/account-service/internal/infrastructure/config"
	redisinfra "github.com/qcommerce/account-service/internal/infrastructure/db/redis"
	"github.com/qcommerce/account-service/internal/infrastructure/db/sqlite"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// Construction fails when the JWT secret is too short; that is a fatal
// configuration error, not a retryable condition.
func NewRouter(
	db *gorm.DB,
	mdb *mongo.Database,
	rdb *redis.Client,
	audit service.AuditRecorder,
	cfg *config.Config,
	log zerolog.Logger,
) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("accounts"))

	// --- Dependencies ---
	tokenService, err := service.NewTokenService(
		cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL,
	)
	if err != nil {
		return nil, err
	}

	userRepo := sqlite.NewUserRepository(db)
	roleRepo := sqlite.NewRoleRepository(db)
	throttle := redisinfra.NewLoginThrottle(rdb, cfg.Login.MaxAttempts, cfg.Login.Window)
	resetStore := redisinfra.NewResetTokenStore(rdb)

	authService := service.NewAuthService(
		userRepo, roleRepo, tokenService,
		throttle, resetStore, audit,
		service.NewResetToken, log,
	)
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(authService)
	authMiddleware := middleware.Auth(tokenService)

	// --- Auth routes (no token required on register/login/refresh/reset) ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/refresh", authHandler.Refresh)
	e.POST("/auth/reset-password", authHandler.RequestPasswordReset)
	e.POST("/auth/reset-password/confirm", authHandler.ConfirmPasswordReset)

	// --- Authenticated routes ---
	// Logout takes the principal when one is presented but never rejects;
	// logging out unauthenticated is a no-op.
	e.POST("/auth/logout", authHandler.Logout, middleware.OptionalAuth(tokenService))
	e.GET("/auth/users/me", authHandler.Me, authMiddleware)

	admin := e.Group("/admin", authMiddleware, middleware.RBAC(domain.RoleAdmin))
	admin.GET("/users", userHandler.List)

	// --- Health probes, metrics, docs (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, mdb, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e, nil
}
