//go:generate swag init -g cmd/api/main.go -o docs --parseInternal

// @title                       PawsReunite API
// @version                     1.0
// @description                 Lost and found pet board with token-refreshing auth.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	_ "github.com/pawsreunite/pawsreunite-api/docs"
	"github.com/pawsreunite/pawsreunite-api/internal/api"
	"github.com/pawsreunite/pawsreunite-api/internal/api/handler"
	"github.com/pawsreunite/pawsreunite-api/internal/core/security"
	"github.com/pawsreunite/pawsreunite-api/internal/core/service"
	"github.com/pawsreunite/pawsreunite-api/internal/infrastructure/config"
	"github.com/pawsreunite/pawsreunite-api/internal/infrastructure/db/mongo"
	"github.com/pawsreunite/pawsreunite-api/internal/infrastructure/db/redis"
	"github.com/pawsreunite/pawsreunite-api/internal/infrastructure/queue"
	"github.com/pawsreunite/pawsreunite-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.MustLoad(ctx)
	log := logger.Init(logger.OptionsFor(cfg.Env, cfg.LogLevel, "pawsreunite-api"))

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := client.Disconnect(dctx); err != nil {
			log.Error().Err(err).Msg("mongo disconnect failed")
		}
	}()

	rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		return err
	}
	defer rdb.Close()

	userRepo := mongo.NewUserRepository(db)
	roleRepo := mongo.NewRoleRepository(db)
	postRepo := mongo.NewPostRepository(db)
	commentRepo := mongo.NewCommentRepository(db)
	notificationRepo := mongo.NewNotificationRepository(db)

	if err := mongo.EnsureIndexes(ctx, userRepo, roleRepo, postRepo, commentRepo, notificationRepo); err != nil {
		return err
	}

	roles := redis.NewRoleCache(rdb, roleRepo, cfg.Redis.RoleCacheTTL, logger.Component("role_cache"))
	roleService := service.NewRoleService(roles, userRepo, logger.Component("roles"))
	if err := roleService.EnsureDefaultRoles(ctx); err != nil {
		return err
	}

	cipher, err := security.NewCipher(cfg.Auth.EncKey)
	if err != nil {
		return err
	}
	tokens, err := security.NewTokenService(security.TokenConfig{
		SigningSecret: cfg.Auth.JWTSecret,
		TTL:           cfg.Auth.TokenTTL,
	}, cipher, userRepo)
	if err != nil {
		return err
	}

	notifications := service.NewNotificationService(notificationRepo, logger.Component("notifications"))
	dispatcher := queue.NewDispatcher(cfg.Notifications.Workers, cfg.Notifications.QueueSize, notifications, logger.Component("dispatcher"))
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	dispatcher.Start(workerCtx)

	users := service.NewUserService(service.UserServiceDeps{
		Users:         userRepo,
		Roles:         roles,
		Posts:         postRepo,
		Comments:      commentRepo,
		Notifications: notificationRepo,
		Hasher:        security.NewHasher(cfg.Auth.BcryptCost),
		Tokens:        tokens,
		Logger:        logger.Component("users"),
	})

	router := api.NewRouter(api.Dependencies{
		Logger:        log,
		Tokens:        tokens,
		Roles:         roleService,
		Users:         users,
		Posts:         service.NewPostService(postRepo, commentRepo, logger.Component("posts")),
		Comments:      service.NewCommentService(commentRepo, postRepo, dispatcher, logger.Component("comments")),
		Notifications: notifications,
		Checks: map[string]handler.DependencyCheck{
			"mongodb": mongo.Ping(client),
			"redis":   redis.Ping(rdb),
		},
		CORSOrigins: cfg.CORSOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("http server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- err
		}
	}()

	var serveErr error
	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	case serveErr = <-serverErrors:
		log.Error().Err(serveErr).Msg("http server stopped unexpectedly")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http server shutdown failed")
	}

	// Workers stop only once no handler can enqueue anymore.
	stopWorkers()
	dispatcher.Wait()

	log.Info().Msg("http server stopped")
	return serveErr
}
