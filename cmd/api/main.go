package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/bloghub/blog-system/internal/api"
	"github.com/bloghub/blog-system/internal/core/service"
	"github.com/bloghub/blog-system/internal/core/token"
	"github.com/bloghub/blog-system/internal/infrastructure/config"
	mongodb "github.com/bloghub/blog-system/internal/infrastructure/db/mongo"
	redisdb "github.com/bloghub/blog-system/internal/infrastructure/db/redis"
	"github.com/bloghub/blog-system/internal/infrastructure/queue"
	"github.com/bloghub/blog-system/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	defer rdb.Close()

	userRepo := mongodb.NewUserRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create indexes")
	}
	postRepo := mongodb.NewPostRepository(db)
	activityRepo := mongodb.NewActivityRepository(db)
	dedup := redisdb.NewDedupChecker(rdb)

	tokens := token.NewService(cfg.JWTSecret)
	accountSvc := service.NewAccountService(userRepo, tokens, log)

	activitySvc := service.NewActivityService(activityRepo, dedup, log)
	dispatcher := queue.NewDispatcher(cfg.Workers, activitySvc, log)
	dispatcher.Start(ctx)

	postSvc := service.NewPostService(postRepo, userRepo, activityRepo, dispatcher, log)

	e := api.NewRouter(api.Deps{
		Accounts: accountSvc,
		Posts:    postSvc,
		Tokens:   tokens,
		Users:    userRepo,
		Mongo:    db,
		Redis:    rdb,
		Log:      log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Msg("server started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
