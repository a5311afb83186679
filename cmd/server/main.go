// @title         catalog API
// @version       1.0
// @description   Categories, products and accounts with JWT authentication.
// @BasePath      /
// @schemes       http
// @host          localhost:5000
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer token: "Bearer <JWT>".
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

	"github.com/myapp/catalog-api/internal/api"
	"github.com/myapp/catalog-api/internal/core/ports"
	"github.com/myapp/catalog-api/internal/core/service"
	"github.com/myapp/catalog-api/internal/infrastructure/config"
	mongostore "github.com/myapp/catalog-api/internal/infrastructure/db/mongo"
	"github.com/myapp/catalog-api/internal/infrastructure/db/postgres"
	redisstore "github.com/myapp/catalog-api/internal/infrastructure/db/redis"
	"github.com/myapp/catalog-api/internal/infrastructure/http/handlers"
	"github.com/myapp/catalog-api/internal/infrastructure/queue"
	"github.com/myapp/catalog-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// errBootstrapInProduction stops DB_BOOTSTRAP from seeding the default admin
// account, whose password is public, into a production database.
var errBootstrapInProduction = errors.New("DB_BOOTSTRAP is not allowed when ENV=production")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		l := logger.Init(logger.Options{})
		l.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty,
		Service: "catalog-api",
		Env:     cfg.Env,
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	if cfg.Postgres.Bootstrap && cfg.IsProduction() {
		return errBootstrapInProduction
	}

	// --- Relational store ---
	pool, err := postgres.Connect(ctx, cfg.Postgres.URL, cfg.Postgres.MaxConns)
	if err != nil {
		return err
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	if cfg.Postgres.Bootstrap {
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			return err
		}
		if err := postgres.Seed(ctx, pool); err != nil {
			return err
		}
		log.Info().Msg("schema bootstrap complete")
	}

	checkers := []handlers.Checker{
		handlers.PingChecker("postgres", pool.Ping),
	}

	// --- Optional login throttling ---
	var limiter ports.LoginLimiter
	if cfg.Redis.Addr != "" {
		rdb, err := redisstore.Connect(ctx, redisstore.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			return err
		}
		defer rdb.Close()
		limiter = redisstore.NewLoginLimiter(rdb, cfg.Redis.LoginMaxAttempts, cfg.Redis.LoginWindow)
		checkers = append(checkers, handlers.PingChecker("redis", func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		}))
		log.Info().Str("addr", cfg.Redis.Addr).Msg("login throttling enabled")
	} else {
		log.Warn().Msg("REDIS_ADDR not set, login throttling disabled")
	}

	// --- Optional audit trail ---
	var audit ports.AuditRecorder
	if cfg.Mongo.URI != "" {
		client, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return err
		}
		defer func() {
			dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			_ = client.Disconnect(dctx)
		}()
		dispatcher := queue.NewAuditDispatcher(cfg.Mongo.AuditWorkers, mongostore.NewAuditRepository(db), log)
		dispatcher.Start(context.Background())
		defer dispatcher.Stop()
		audit = dispatcher
		checkers = append(checkers, handlers.PingChecker("mongo", func(ctx context.Context) error {
			return client.Ping(ctx, nil)
		}))
		log.Info().Str("database", cfg.Mongo.Database).Msg("audit trail enabled")
	}

	// --- Services ---
	credentials, err := service.NewCredentialService(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		return err
	}
	accounts := postgres.NewAccountRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	productRepo := postgres.NewProductRepository(pool)

	e := api.NewRouter(api.Dependencies{
		Auth:         service.NewAuthService(accounts, credentials, limiter, log),
		Categories:   service.NewCategoryService(categoryRepo, audit, log),
		Products:     service.NewProductService(productRepo, categoryRepo, audit, log),
		Verifier:     credentials,
		Logger:       log,
		Env:          cfg.Env,
		AllowOrigins: cfg.AllowOrigins,
		Checkers:     checkers,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("HTTP server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
