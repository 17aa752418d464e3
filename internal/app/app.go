package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-catalog/internal/catalog"
	"github.com/gokatarajesh/trivia-catalog/internal/config"
	"github.com/gokatarajesh/trivia-catalog/internal/logging"
	"github.com/gokatarajesh/trivia-catalog/internal/play"
	"github.com/gokatarajesh/trivia-catalog/internal/server"
)

// Application aggregates shared infrastructure (store, Redis, HTTP server).
type Application struct {
	cfg    *config.App
	logger zerolog.Logger

	store Store
	redis *redis.Client
	http  *http.Server
}

// New bootstraps the logger, catalog store, optional Redis tracker and HTTP server.
func New(ctx context.Context, cfg *config.App) (*Application, error) {
	logger := logging.New(cfg.Name, cfg.Env, cfg.LogLevel)
	logger.Info().Str("store", cfg.Store.Driver).Msg("starting application bootstrap")

	store, err := OpenStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	checks := []server.Dependency{{Name: cfg.Store.Driver, Ping: store.Ping}}

	var redisClient *redis.Client
	var tracker server.SessionTracker
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		tracker = play.NewTracker(redisClient, play.TrackerOptions{TTL: cfg.Quiz.SessionTTL}, logger)
		checks = append(checks, server.Dependency{
			Name: "redis",
			Ping: func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
		})
		logger.Info().Str("addr", cfg.Redis.Addr).Msg("quiz session tracking enabled")
	} else {
		logger.Warn().Msg("REDIS_ADDR not set; quiz history comes from clients only")
	}

	catalogSvc := catalog.NewService(store, catalog.ServiceOptions{
		PageSize: cfg.Catalog.PageSize,
		Metrics:  catalog.NewMetrics(prometheus.DefaultRegisterer),
	}, logger)

	apiServer := server.NewHTTPServer(cfg, logger, server.Dependencies{
		Catalog: server.NewCatalogHandlers(catalogSvc, tracker, logger),
		Checks:  checks,
	})

	return &Application{
		cfg:    cfg,
		logger: logger,
		store:  store,
		redis:  redisClient,
		http:   apiServer,
	}, nil
}

// Run starts the HTTP server and waits for termination signals.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info().Str("addr", a.cfg.HTTPAddr).Msg("http server listening")
		if err := a.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		a.logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		a.close()
		return fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
		a.logger.Warn().Msg("context canceled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.GracefulShutdownTimeout)
	defer cancel()

	if err := a.http.Shutdown(shutdownCtx); err != nil {
		a.logger.Error().Err(err).Msg("http shutdown error")
	}

	a.close()
	a.logger.Info().Msg("shutdown complete")
	return nil
}

func (a *Application) close() {
	if err := a.store.Close(); err != nil {
		a.logger.Error().Err(err).Msg("store shutdown error")
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Error().Err(err).Msg("redis shutdown error")
		}
	}
}
