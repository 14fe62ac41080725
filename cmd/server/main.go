package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/devconnect/api/adapters/cache"
	"github.com/devconnect/api/adapters/event"
	"github.com/devconnect/api/adapters/github"
	httpAdapter "github.com/devconnect/api/adapters/http"
	"github.com/devconnect/api/adapters/persistence"
	authUC "github.com/devconnect/api/internal/application/usecase/auth"
	postUC "github.com/devconnect/api/internal/application/usecase/post"
	profileUC "github.com/devconnect/api/internal/application/usecase/profile"
	"github.com/devconnect/api/internal/config"
	"github.com/devconnect/api/pkg/auth"
	"github.com/devconnect/api/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.NewZapLogger("development").Fatal("cannot load config", err)
	}

	log := logger.NewZapLogger(cfg.App.Env)
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	dbPool, err := persistence.NewPostgresPool(cfg, log)
	if err != nil {
		log.Fatal("cannot connect Postgres", err)
	}
	defer dbPool.Close()

	// Redis and Kafka are optional; without them caching and events degrade
	// to no-ops.
	var redisCache *cache.RedisCache
	if cfg.Redis.Addr != "" {
		redisClient, err := cache.NewRedisClient(cfg, log)
		if err != nil {
			log.Warn("Redis unavailable, caching disabled", zap.Error(err))
		} else {
			defer redisClient.Close()
			redisCache = cache.NewRedisCache(redisClient)
		}
	}

	kafkaClient, err := event.NewKafkaProducerClient(cfg)
	if err != nil {
		log.Fatal("cannot init Kafka", err)
	}
	defer kafkaClient.Close()

	// Repositories
	userRepo := persistence.NewPostgresUserRepo(dbPool)
	profileRepo := persistence.NewPostgresProfileRepo(dbPool, log)
	postRepo := persistence.NewPostgresPostRepo(dbPool)

	// Services
	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)
	githubClient := github.NewClient(cfg)

	// Use Cases
	authUseCase := authUC.NewAuthUseCase(userRepo, jwtSvc, kafkaClient, log)
	profileUseCase := profileUC.NewProfileUseCase(profileRepo, redisCache, githubClient, log)
	postUseCase := postUC.NewPostUseCase(postRepo, userRepo, kafkaClient, log)

	// HTTP Handlers
	authHandler := httpAdapter.NewAuthHandler(authUseCase, log)
	profileHandler := httpAdapter.NewProfileHandler(profileUseCase, log)
	postHandler := httpAdapter.NewPostHandler(postUseCase, log)

	router := httpAdapter.NewRouter(authHandler, profileHandler, postHandler, jwtSvc)

	srv := &http.Server{
		Addr:    ":" + cfg.App.Port,
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("Server running", zap.String("port", cfg.App.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("cannot run server", err)
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", err)
	}
}
