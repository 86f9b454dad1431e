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

	goredis "github.com/redis/go-redis/v9"

	"github.com/carterperez-dev/contacts-api/internal/admin"
	"github.com/carterperez-dev/contacts-api/internal/auth"
	"github.com/carterperez-dev/contacts-api/internal/config"
	"github.com/carterperez-dev/contacts-api/internal/contact"
	"github.com/carterperez-dev/contacts-api/internal/core"
	"github.com/carterperez-dev/contacts-api/internal/health"
	"github.com/carterperez-dev/contacts-api/internal/middleware"
	"github.com/carterperez-dev/contacts-api/internal/server"
)

const (
	drainDelay = 5 * time.Second
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to YAML config file")
	iniPath := flag.String("ini", "config.ini", "path to legacy INI config file")
	envPath := flag.String("env", ".env", "path to dotenv file")
	migrate := flag.String(
		"migrate",
		"",
		"run migrations (up, down, reset, status) and exit",
	)
	flag.Parse()

	paths := config.Paths{YAML: *configPath, INI: *iniPath, Env: *envPath}
	if _, err := os.Stat(paths.YAML); os.IsNotExist(err) {
		paths.YAML = ""
	}

	if err := run(paths, *migrate); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // bootstrap code is inherently verbose
func run(paths config.Paths, migrateDirection string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(paths)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("database close error", "error", err)
		}
	}()

	if migrateDirection != "" {
		return core.Migrate(ctx, db.DB.DB, migrateDirection)
	}

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	if cfg.Database.AutoMigrate {
		if err := core.Migrate(ctx, db.DB.DB, core.MigrateUp); err != nil {
			return err
		}
	}

	telemetry, err := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
	if err != nil {
		logger.Warn("failed to initialize telemetry", "error", err)
	} else if cfg.Otel.Enabled {
		logger.Info("OpenTelemetry tracer initialized",
			"endpoint", cfg.Otel.Endpoint,
		)
	}

	var redis *core.Redis
	if cfg.Redis.URL != "" {
		redis, err = core.NewRedis(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		logger.Info("redis connected", "pool_size", cfg.Redis.PoolSize)
	} else {
		logger.Info("redis not configured, rate limiting in-process")
	}

	jwtManager, err := auth.NewJWTManager(cfg.JWT)
	if err != nil {
		return err
	}
	logger.Info("JWT manager initialized",
		"algorithm", "ES256",
		"key_id", jwtManager.GetKeyID(),
	)

	if created, err := contact.BootstrapAdmin(ctx, db.DB, cfg.Bootstrap); err != nil {
		return err
	} else if created {
		logger.Info("bootstrap admin created", "email", cfg.Bootstrap.AdminEmail)
	}

	contactRepo := contact.NewRepository(db.DB)
	contactSvc := contact.NewService(contactRepo)
	contactHandler := contact.NewHandler(contactSvc)

	authSvc := auth.NewService(jwtManager, contactSvc)
	authHandler := auth.NewHandler(authSvc)

	adminCfg := admin.HandlerConfig{
		DBStats:  db.Stats,
		DBPing:   db.Ping,
		Contacts: contactSvc,
	}

	var healthHandler *health.Handler
	if redis != nil {
		healthHandler = health.NewHandler(db, redis)
		adminCfg.RedisStats = redis.PoolStats
		adminCfg.RedisPing = redis.Ping
	} else {
		healthHandler = health.NewHandler(db, nil)
	}

	adminHandler := admin.NewHandler(adminCfg)

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router := srv.Router()

	var redisClient *goredis.Client
	if redis != nil {
		redisClient = redis.Client
	}

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger))
	router.Use(
		middleware.NewRateLimiter(redisClient, middleware.RateLimitConfig{
			Limit: middleware.PerWindow(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
				cfg.RateLimit.Window,
			),
			FailOpen:   true,
			BypassFunc: isProbe,
		}).Handler,
	)
	router.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	router.Use(middleware.CORS(cfg.CORS))

	healthHandler.RegisterRoutes(router)

	router.Get("/.well-known/jwks.json", jwtManager.GetJWKSHandler())

	authenticator := middleware.Authenticator(authSvc)

	authHandler.RegisterRoutes(router, authenticator)
	contactHandler.RegisterRoutes(router, authenticator)
	adminHandler.RegisterRoutes(router, authenticator, middleware.RequireAdmin)

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

	logger.Info("application stopped")
	return nil
}

func isProbe(r *http.Request) bool {
	switch r.URL.Path {
	case "/healthz", "/livez", "/readyz":
		return true
	}
	return false
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
