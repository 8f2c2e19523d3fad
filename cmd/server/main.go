package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"talent_messenger/internal/config"
	"talent_messenger/internal/handler"
	"talent_messenger/internal/middleware"
	"talent_messenger/internal/repository"
	"talent_messenger/internal/service"
	"talent_messenger/internal/store"
	"talent_messenger/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger := logger.New(cfg.Log.Level)

	// Optional redis client: it backs the redis medium and the rate
	// limiter. Everything else runs without it.
	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		if err := rdb.Ping(context.Background()).Err(); err != nil {
			if cfg.Medium.Driver == config.MediumDriverRedis {
				appLogger.Fatal("Failed to connect to Redis", "error", err)
			}
			appLogger.Warn("Redis unreachable, rate limiting disabled", "error", err)
			rdb = nil
		} else {
			appLogger.Info("Redis connection established")
		}
	}

	medium, cleanup, err := buildMedium(cfg, rdb, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize medium", "driver", cfg.Medium.Driver, "error", err)
	}
	defer cleanup()
	appLogger.Info("Medium initialized", "driver", cfg.Medium.Driver)

	repos := repository.NewRepositories(medium, rdb, appLogger)
	services := service.NewServices(repos, cfg, appLogger)

	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT, appLogger)

	var rateLimitMiddleware *middleware.RateLimitMiddleware
	if services.RateLimit != nil {
		rateLimitMiddleware = middleware.NewRateLimitMiddleware(services.RateLimit, cfg.RateLimit, appLogger)
	}

	handlers := handler.NewHandlers(services, cfg, appLogger)

	router := setupRouter(handlers, authMiddleware, rateLimitMiddleware, cfg, appLogger)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		appLogger.Info("Starting server", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("Failed to start server", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", "error", err)
	}

	appLogger.Info("Server exited")
}

func buildMedium(cfg *config.Config, rdb *redis.Client, log logger.Logger) (store.Medium, func(), error) {
	noop := func() {}

	switch cfg.Medium.Driver {
	case config.MediumDriverPostgres:
		dbPool, err := pgxpool.New(context.Background(), cfg.Database.DSN)
		if err != nil {
			return nil, noop, err
		}
		if err := dbPool.Ping(context.Background()); err != nil {
			dbPool.Close()
			return nil, noop, err
		}
		log.Info("Database connection established")

		medium, err := store.NewPostgresMedium(dbPool, log)
		if err != nil {
			dbPool.Close()
			return nil, noop, err
		}
		return medium, dbPool.Close, nil

	case config.MediumDriverRedis:
		return store.NewRedisMedium(rdb, log), noop, nil

	case config.MediumDriverMemory:
		return store.NewMemoryMedium(), noop, nil

	default:
		medium, err := store.NewFileMedium(cfg.Medium.DataDir, log)
		return medium, noop, err
	}
}

func setupRouter(
	handlers *handler.Handlers,
	authMiddleware *middleware.AuthMiddleware,
	rateLimitMiddleware *middleware.RateLimitMiddleware,
	cfg *config.Config,
	log logger.Logger,
) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.ErrorHandler())

	router.GET("/health", handlers.Health.Check)

	v1 := router.Group("/api/v1")
	v1.Use(authMiddleware.RequireAuth())
	if rateLimitMiddleware != nil {
		v1.Use(rateLimitMiddleware.Limit())
	}
	{
		conversations := v1.Group("/conversations")
		{
			conversations.GET("", handlers.Conversation.List)
			conversations.POST("", handlers.Conversation.Create)
			conversations.DELETE("/:id", handlers.Conversation.Delete)
			conversations.GET("/:id/messages", handlers.Message.List)
			conversations.POST("/:id/messages", handlers.Message.Send)
			conversations.POST("/:id/read", handlers.Conversation.MarkRead)
		}

		v1.GET("/unread-count", handlers.Conversation.UnreadCount)
		v1.DELETE("/messages/:messageId", handlers.Message.Delete)
	}

	return router
}
