// @title                       Task Tracker API
// @version                     1.0
// @description                 Task tracking backend with token auth, task lifecycle, reports and team/project/tag catalogs.
// @host                        localhost:3000
// @BasePath                    /
// @securityDefinitions.apikey  TokenAuth
// @in                          header
// @name                        Authorization
// @description                 Raw token issued by /auth/login. A "Bearer " prefix is also accepted.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/taskboard/tracker-api/internal/api"
	"github.com/taskboard/tracker-api/internal/api/handler"
	"github.com/taskboard/tracker-api/internal/core/service"
	"github.com/taskboard/tracker-api/internal/infrastructure/db/mongo"
	"github.com/taskboard/tracker-api/internal/infrastructure/db/redis"
	"github.com/taskboard/tracker-api/internal/infrastructure/queue"
	"github.com/taskboard/tracker-api/internal/infrastructure/security"
	"github.com/taskboard/tracker-api/internal/pkg/config"
	"github.com/taskboard/tracker-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	envErr := godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "tracker-api",
	})
	if envErr != nil {
		log.Debug().Err(envErr).Msg(".env file not loaded")
	}

	if err := run(cfg, log); err != nil {
		log.Error().Err(err).Msg("server exited with error")
		os.Exit(1)
	}
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database, AppName: "tracker-api"})
	if err != nil {
		return err
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect failed")
		}
	}()
	if err := mongo.EnsureIndexes(ctx, db); err != nil {
		return err
	}

	rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		return err
	}
	defer rdb.Close()

	// --- Services ---
	tokens := service.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	authService := service.NewAuthService(
		mongo.NewUserRepository(db),
		security.NewBcryptHasher(cfg.Auth.BcryptCost),
		tokens,
		log,
	)

	activityService := service.NewActivityService(mongo.NewActivityRepository(db), log)
	dispatcher := queue.NewDispatcher(cfg.Activity.Workers, activityService, log)

	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()
	dispatcher.Start(workerCtx)

	taskService := service.NewTaskService(
		mongo.NewTaskRepository(db),
		redis.NewIdempotencyStore(rdb, cfg.Redis.IdempotencyTTL),
		dispatcher,
		log,
	)
	reportService := service.NewReportService(mongo.NewReportRepository(db), log)
	catalogService := service.NewCatalogService(
		mongo.NewTeamRepository(db),
		mongo.NewProjectRepository(db),
		mongo.NewTagRepository(db),
		log,
	)

	e := api.NewRouter(api.Dependencies{
		Auth:         authService,
		Tokens:       tokens,
		Tasks:        taskService,
		Activity:     activityService,
		Reports:      reportService,
		Catalog:      catalogService,
		Health:       handler.NewHealthHandler(db, rdb),
		Log:          log,
		AuthRequired: cfg.Auth.Required,
	})

	serverErrors := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Bool("auth_required", cfg.Auth.Required).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- err
		}
	}()

	var serveErr error
	select {
	case err := <-serverErrors:
		serveErr = fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
	stopWorkers()
	if err := dispatcher.Wait(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("activity workers did not drain")
	}
	log.Info().Msg("server stopped")
	return serveErr
}
