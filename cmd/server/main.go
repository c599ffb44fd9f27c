package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/qcommerce/account-service/internal/api"
	"github.com/qcommerce/account-service/internal/infrastructure/config"
	mongoinfra "github.com/qcommerce/account-service/internal/infrastructure/db/mongo"
	redisinfra "github.com/qcommerce/account-service/internal/infrastructure/db/redis"
	"github.com/qcommerce/account-service/internal/infrastructure/db/sqlite"
	"github.com/qcommerce/account-service/internal/infrastructure/queue"
	"github.com/qcommerce/account-service/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title           qcommerce account service API
// @version         1.0
// @description     Registration, login, logout, and JWT issuance for qcommerce accounts.
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env == "development",
		Service: "account-service",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Relational store (users, roles) ---
	db, err := sqlite.Connect(sqlite.Config{Path: cfg.SQLite.Path})
	if err != nil {
		log.Fatal().Err(err).Msg("sqlite connection failed")
	}
	if err := sqlite.NewRoleRepository(db).Seed(ctx); err != nil {
		log.Fatal().Err(err).Msg("role seeding failed")
	}

	// --- Audit trail store ---
	mongoClient, mongoDB, err := mongoinfra.Connect(ctx, mongoinfra.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	// --- Throttle / reset-token store ---
	rdb, err := redisinfra.Connect(ctx, redisinfra.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		_ = rdb.Close()
	}()

	// --- Async audit pipeline ---
	dispatcher := queue.NewDispatcher(0, mongoinfra.NewAuditRepository(mongoDB), log)
	dispatcher.Start(ctx)

	e, err := api.NewRouter(db, mongoDB, rdb, dispatcher, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("router construction failed")
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting account service")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
