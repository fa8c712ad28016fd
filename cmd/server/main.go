package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/yukikurage/lift-project-api/internal/catalog"
	"github.com/yukikurage/lift-project-api/internal/config"
	"github.com/yukikurage/lift-project-api/internal/database"
	"github.com/yukikurage/lift-project-api/internal/logging"
	"github.com/yukikurage/lift-project-api/internal/ratelimit"
	"github.com/yukikurage/lift-project-api/internal/render"
	"github.com/yukikurage/lift-project-api/internal/router"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.GinMode)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	db, err := database.Connect(cfg, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run migrations and refresh the reference catalogs
	if err := database.Migrate(db, logger); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}
	data, err := catalog.Default()
	if err != nil {
		logger.Fatal("failed to load catalogs", zap.Error(err))
	}
	if err := database.SeedCatalogs(db, data); err != nil {
		logger.Fatal("failed to seed catalogs", zap.Error(err))
	}

	// Setup session store with Redis
	store, err := redisStore.NewStore(
		10,              // Redis pool size
		"tcp",           // network type
		cfg.RedisAddr(), // Redis address from config
		"",              // username (empty for default user)
		cfg.RedisPassword,
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		logger.Fatal("failed to create Redis session store", zap.Error(err))
	}
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.RedisPassword,
	})
	defer rdb.Close()
	loginLimiter := ratelimit.New(rdb, "login", cfg.LoginRateLimit, time.Duration(cfg.LoginRateWindowSeconds)*time.Second)

	engine := render.NewRodEngine(logger, render.WithChromeBin(cfg.ChromeBin))
	defer engine.Close()

	r := router.New(router.Deps{
		DB:             db,
		Logger:         logger,
		SessionStore:   store,
		AllowedOrigins: cfg.AllowedOrigins,
		Catalog:        data,
		Engine:         engine,
		LoginThrottle:  loginLimiter,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
