// Package main is the entry point for the investor relations portal API
// server. It loads configuration, connects to services, sets up routing,
// and starts the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"irportal/internal/analytics"
	"irportal/internal/cache"
	"irportal/internal/config"
	"irportal/internal/database"
	"irportal/internal/handlers"
	"irportal/internal/middleware"
	"irportal/internal/news"
	"irportal/internal/notify"
	"irportal/internal/router"
	"irportal/internal/scheduler"
	"irportal/internal/session"
	"irportal/internal/storage"
	"irportal/internal/store"
)

func main() {
	// A missing .env file is fine; the environment wins either way.
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Connect to Redis (feed cache, sessions, analytics counters).
	redisClient, err := cache.Connect(cfg.RedisHost, cfg.RedisPort, cfg.RedisPassword)
	if err != nil {
		slog.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	// In non-development environments, mark session cookies as Secure.
	secureCookies := !cfg.IsDev()
	sessionStore := session.NewStore(redisClient, secureCookies)

	// Data stores.
	userStore := store.NewUserStore(db)
	newsStore := store.NewNewsStore(db)
	categoryStore := store.NewCategoryStore(db)
	projectStore := store.NewProjectStore(db)
	requestStore := store.NewRequestStore(db)
	profileStore := store.NewProfileStore(db)

	// S3-compatible object storage for cover images (optional — the app
	// works without it, with uploads disabled).
	var storageClient *storage.Client
	if cfg.S3Endpoint != "" && cfg.S3AccessKey != "" {
		storageClient, err = storage.New(
			cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
			cfg.S3Bucket, cfg.S3PublicURL,
		)
		if err != nil {
			slog.Error("failed to initialize S3 storage", "error", err)
			os.Exit(1)
		}
		slog.Info("s3 storage connected",
			"endpoint", cfg.S3Endpoint,
			"bucket", cfg.S3Bucket,
		)
	} else {
		slog.Warn("s3 storage not configured — cover uploads disabled")
	}

	feedCache := cache.NewFeedCache(redisClient, cache.DefaultFeedTTL)
	recorder := analytics.NewRecorder(redisClient)

	// Investor notification webhook. NewWebhook returns a nil pointer for
	// an empty URL; keep the interface nil in that case so the service
	// skips dispatch entirely.
	var notifier news.Notifier
	if wh := notify.NewWebhook(cfg.NotifyWebhookURL); wh != nil {
		notifier = wh
		slog.Info("investor notifications enabled")
	} else {
		slog.Warn("notify webhook not configured — investor notifications disabled")
	}

	newsService := news.NewService(newsStore, notifier, feedCache)

	// In-process publish sweep. External cron can also drive the internal
	// endpoint; both paths funnel into the same idempotent operation.
	if cfg.PublishCronSpec != "" {
		sched, err := scheduler.New(cfg.PublishCronSpec, newsService)
		if err != nil {
			slog.Error("invalid publish cron spec", "spec", cfg.PublishCronSpec, "error", err)
			os.Exit(1)
		}
		sched.Start()
		defer sched.Stop()
		slog.Info("publish scheduler started", "spec", cfg.PublishCronSpec)
	}

	requestLimiter := middleware.NewRateLimiter(cfg.RequestRateLimit, time.Minute)
	defer requestLimiter.Stop()

	// Handler groups.
	adminHandlers := handlers.NewAdmin(newsService, categoryStore, projectStore, requestStore, profileStore, storageClient, recorder)
	authHandlers := handlers.NewAuth(sessionStore, userStore)
	publicHandlers := handlers.NewPublic(newsService, projectStore, requestStore, profileStore, feedCache, recorder)
	internalHandlers := handlers.NewInternal(newsService)

	r := router.New(sessionStore, adminHandlers, authHandlers, publicHandlers, internalHandlers, cfg.CronToken, requestLimiter)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
