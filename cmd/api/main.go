// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taremwastudios/billboard/internal/admin"
	"github.com/taremwastudios/billboard/internal/auth"
	billchannel "github.com/taremwastudios/billboard/internal/channel"
	"github.com/taremwastudios/billboard/internal/config"
	"github.com/taremwastudios/billboard/internal/core"
	"github.com/taremwastudios/billboard/internal/devapp"
	"github.com/taremwastudios/billboard/internal/health"
	"github.com/taremwastudios/billboard/internal/message"
	"github.com/taremwastudios/billboard/internal/middleware"
	"github.com/taremwastudios/billboard/internal/moderation"
	"github.com/taremwastudios/billboard/internal/notify"
	"github.com/taremwastudios/billboard/internal/payment"
	"github.com/taremwastudios/billboard/internal/post"
	"github.com/taremwastudios/billboard/internal/server"
	"github.com/taremwastudios/billboard/internal/storage"
	"github.com/taremwastudios/billboard/internal/user"
)

const (
	drainDelay = 5 * time.Second
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	var telemetry *core.Telemetry
	if cfg.Otel.Enabled {
		tel, telErr := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if telErr != nil {
			logger.Warn("failed to initialize telemetry", "error", telErr)
		} else {
			telemetry = tel
			logger.Info("OpenTelemetry tracer initialized",
				"endpoint", cfg.Otel.Endpoint,
			)
		}
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	redis, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	logger.Info("redis connected",
		"pool_size", cfg.Redis.PoolSize,
	)

	jwtManager, err := auth.NewJWTManager(cfg.JWT)
	if err != nil {
		return err
	}
	logger.Info("JWT manager initialized",
		"algorithm", "ES256",
		"key_id", jwtManager.GetKeyID(),
	)

	uploader, err := storage.NewS3Uploader(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	logger.Info("blob storage ready", "bucket", cfg.Storage.Bucket)

	var notifier notify.Sender
	if cfg.SMTP.Enabled {
		notifier = notify.NewSMTPSender(cfg.SMTP)
		logger.Info("smtp sender ready", "host", cfg.SMTP.Host)
	} else {
		notifier = notify.NewLogSender(logger)
	}

	txRunner := core.NewTxRunner(db.DB)

	userRepo := user.NewRepository(db.DB)
	userSvc := user.NewService(userRepo, notifier, uploader, logger)
	userHandler := user.NewHandler(userSvc)

	authRepo := auth.NewRepository(db.DB)
	authSvc := auth.NewService(authRepo, jwtManager, userSvc, redis.Client)
	authHandler := auth.NewHandler(authSvc)

	channelRepo := billchannel.NewRepository(db.DB)
	channelSvc := billchannel.NewService(txRunner, channelRepo, userSvc)
	channelHandler := billchannel.NewHandler(channelSvc)

	postRepo := post.NewRepository(db.DB)
	postSvc := post.NewService(postRepo, userSvc, channelSvc, uploader)
	postHandler := post.NewHandler(postSvc)

	messageRepo := message.NewRepository(db.DB)
	messageSvc := message.NewService(messageRepo, userSvc)
	messageHandler := message.NewHandler(messageSvc)

	paymentRepo := payment.NewRepository(db.DB)
	paymentSvc := payment.NewService(txRunner, paymentRepo, userSvc, userSvc)
	paymentHandler := payment.NewHandler(paymentSvc)

	devappRepo := devapp.NewRepository(db.DB)
	devappSvc := devapp.NewService(txRunner, devappRepo, userSvc, userSvc, uploader)
	devappHandler := devapp.NewHandler(devappSvc)

	moderationRepo := moderation.NewRepository(db.DB)
	moderationSvc := moderation.NewService(moderationRepo, postSvc, userSvc)
	moderationHandler := moderation.NewHandler(moderationSvc)

	healthHandler := health.NewHandler(db, redis)

	adminHandler := admin.NewHandler(admin.HandlerConfig{
		DBStats:    db.Stats,
		RedisStats: redis.PoolStats,
		DBPing:     db.Ping,
		RedisPing:  redis.Ping,
		Totals:     admin.NewTotalsService(userSvc, postSvc, channelSvc),
	})

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger))
	router.Use(
		middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
			Limit: middleware.PerMinute(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
			),
			FailOpen: true,
		}).Handler,
	)
	router.Use(middleware.SecurityHeaders(cfg.App.Environment == "production"))
	router.Use(middleware.CORS(cfg.CORS))

	healthHandler.RegisterRoutes(router)

	router.Get("/.well-known/jwks.json", jwtManager.GetJWKSHandler())

	authenticator := middleware.Authenticator(jwtManager)
	adminOnly := middleware.RequireAdmin

	router.Route("/v1", func(r chi.Router) {
		// Badge-tiered limits need claims in context even on public
		// routes, so optional auth runs before the limiter.
		r.Use(middleware.OptionalAuth(jwtManager))
		r.Use(middleware.BadgeRateLimiter(redis.Client, middleware.DefaultBadgeLimits))

		authHandler.RegisterRoutes(r, authenticator)
		userHandler.RegisterRoutes(r, authenticator)
		postHandler.RegisterRoutes(r, authenticator)
		channelHandler.RegisterRoutes(r, authenticator)
		messageHandler.RegisterRoutes(r, authenticator)
		paymentHandler.RegisterRoutes(r, authenticator)
		devappHandler.RegisterRoutes(r, authenticator)
		moderationHandler.RegisterRoutes(r, authenticator)
		adminHandler.RegisterRoutes(r, authenticator, adminOnly)
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	if err := redis.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
