// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-redis/redis_rate/v10"

	"github.com/carterperez-dev/jobboard/internal/admin"
	"github.com/carterperez-dev/jobboard/internal/application"
	"github.com/carterperez-dev/jobboard/internal/auth"
	"github.com/carterperez-dev/jobboard/internal/company"
	"github.com/carterperez-dev/jobboard/internal/config"
	"github.com/carterperez-dev/jobboard/internal/core"
	"github.com/carterperez-dev/jobboard/internal/health"
	"github.com/carterperez-dev/jobboard/internal/job"
	"github.com/carterperez-dev/jobboard/internal/lifecycle"
	"github.com/carterperez-dev/jobboard/internal/metrics"
	"github.com/carterperez-dev/jobboard/internal/middleware"
	"github.com/carterperez-dev/jobboard/internal/server"
	"github.com/carterperez-dev/jobboard/internal/user"
)

const sessionPurgeInterval = time.Hour

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

	hasher, err := core.NewPasswordHasher(cfg.Password)
	if err != nil {
		return err
	}

	jwtManager, err := auth.NewJWTManager(cfg.JWT)
	if err != nil {
		return err
	}
	logger.Info("JWT manager initialized",
		"algorithm", "ES256",
		"key_id", jwtManager.GetKeyID(),
	)

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
	}

	machine := lifecycle.NewMachine(lifecycle.ModeFor(cfg.Lifecycle.StrictTransitions))
	logger.Info("lifecycle rules loaded",
		"strict_transitions", cfg.Lifecycle.StrictTransitions,
	)

	userRepo := user.NewRepository(db.DB)
	userSvc := user.NewService(userRepo, db, hasher, m)
	userHandler := user.NewHandler(userSvc)

	authRepo := auth.NewRepository(db.DB)
	authSvc := auth.NewService(
		authRepo,
		jwtManager,
		userSvc,
		hasher,
		redis.Client,
		cfg.Redis.KeyPrefix,
	)
	authHandler := auth.NewHandler(authSvc)

	companyRepo := company.NewRepository(db.DB)
	companySvc := company.NewService(companyRepo, db, m)
	companyHandler := company.NewHandler(companySvc)

	jobRepo := job.NewRepository(db.DB)
	jobSvc := job.NewService(jobRepo, companyRepo, db, machine, m)
	jobHandler := job.NewHandler(jobSvc)

	applicationRepo := application.NewRepository(db.DB)
	applicationSvc := application.NewService(applicationRepo, jobRepo, db, machine, m)
	applicationHandler := application.NewHandler(applicationSvc)

	healthHandler := health.NewHandler(
		health.Dependency{Name: "database", Checker: db},
		health.Dependency{Name: "redis", Checker: redis},
	)

	adminHandler := admin.NewHandler(admin.HandlerConfig{
		DBStats:    db.Stats,
		RedisStats: redis.PoolStats,
		DBPing:     db.Ping,
		RedisPing:  redis.Ping,
		Board: admin.BoardCounters{
			Users:        userSvc.CountByRole,
			Companies:    companySvc.Count,
			Jobs:         jobSvc.CountByStatus,
			Applications: applicationSvc.CountByStatus,
		},
	})

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger))
	if m != nil {
		router.Use(middleware.Metrics(m))
	}
	router.Use(
		middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
			Limit: redis_rate.Limit{
				Rate:   cfg.RateLimit.Requests,
				Burst:  cfg.RateLimit.Burst,
				Period: cfg.RateLimit.Window,
			},
			KeyPrefix: cfg.Redis.KeyPrefix,
			FailOpen:  cfg.RateLimit.FailOpen,
		}).Handler,
	)
	router.Use(middleware.SecurityHeaders(cfg.App.Environment == "production"))
	router.Use(middleware.CORS(cfg.CORS))

	healthHandler.RegisterRoutes(router)

	if m != nil {
		router.Handle(cfg.Metrics.Path, m.Handler())
	}

	router.Get("/.well-known/jwks.json", jwtManager.GetJWKSHandler())

	roleLimit := middleware.RoleRateLimiter(
		redis.Client,
		cfg.RateLimit,
		cfg.Redis.KeyPrefix,
	).Handler
	authenticator := chain(middleware.Authenticator(authSvc), roleLimit)
	optionalAuth := chain(middleware.OptionalAuth(authSvc), roleLimit)
	credentialLimit := middleware.CredentialRateLimiter(
		redis.Client,
		cfg.RateLimit,
		cfg.Redis.KeyPrefix,
	).Handler
	adminOnly := middleware.RequireAdmin

	router.Route("/v1", func(r chi.Router) {
		authHandler.RegisterRoutes(r, authenticator, credentialLimit)
		userHandler.RegisterRoutes(r, authenticator, optionalAuth)
		companyHandler.RegisterRoutes(r, authenticator)
		jobHandler.RegisterRoutes(r, authenticator)
		applicationHandler.RegisterRoutes(r, authenticator)
		adminHandler.RegisterRoutes(r, authenticator, adminOnly)
	})

	go purgeSessions(ctx, authSvc, logger)

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

	drainDelay := cfg.Server.DrainDelay
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

func chain(
	mws ...func(http.Handler) http.Handler,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		for i := len(mws) - 1; i >= 0; i-- {
			next = mws[i](next)
		}
		return next
	}
}

// purgeSessions deletes expired refresh tokens until ctx is cancelled.
func purgeSessions(ctx context.Context, svc *auth.Service, logger *slog.Logger) {
	ticker := time.NewTicker(sessionPurgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			n, err := svc.PurgeExpiredSessions(ctx, now)
			if err != nil {
				logger.Warn("session purge failed", "error", err)
				continue
			}
			if n > 0 {
				logger.Info("expired sessions purged", "count", n)
			}
		}
	}
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
