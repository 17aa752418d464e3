package app

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-catalog/internal/catalog"
	"github.com/gokatarajesh/trivia-catalog/internal/config"
	"github.com/gokatarajesh/trivia-catalog/internal/db"
	"github.com/gokatarajesh/trivia-catalog/internal/db/repository"
	"github.com/gokatarajesh/trivia-catalog/internal/db/sqlite"
)

// Store is a catalog backend with a lifecycle.
type Store interface {
	catalog.Store
	Ping(ctx context.Context) error
	Close() error
}

// OpenStore connects the backend selected by STORE_DRIVER.
func OpenStore(ctx context.Context, cfg *config.App, logger zerolog.Logger) (Store, error) {
	switch cfg.Store.Driver {
	case config.DriverSQLite:
		store, err := sqlite.Open(ctx, cfg.SQLite.Path)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		logger.Info().Str("path", cfg.SQLite.Path).Msg("sqlite catalog store ready")
		return store, nil
	case config.DriverPostgres:
		return openPostgres(ctx, cfg.Postgres, logger)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

type postgresStore struct {
	*repository.CatalogStore
	pool *pgxpool.Pool
}

func (s *postgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *postgresStore) Close() error {
	s.pool.Close()
	return nil
}

func openPostgres(ctx context.Context, cfg config.Postgres, logger zerolog.Logger) (*postgresStore, error) {
	pool, err := pgxpool.New(ctx, cfg.PoolConnString())
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	if cfg.AutoMigrate {
		sqlDB := stdlib.OpenDBFromPool(pool)
		err := db.Migrate(ctx, sqlDB, db.CommandUp, "", logger)
		_ = sqlDB.Close()
		if err != nil {
			pool.Close()
			return nil, err
		}
		logger.Info().Msg("postgres migrations applied")
	}

	logger.Info().Str("host", cfg.Host).Int("port", cfg.Port).Str("database", cfg.Database).Msg("postgres catalog store ready")
	return &postgresStore{CatalogStore: repository.NewCatalogStore(pool), pool: pool}, nil
}
