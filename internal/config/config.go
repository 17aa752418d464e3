package config

import (
	"context"
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// Store drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// App holds core runtime configuration shared across services.
type App struct {
	Name                    string        `env:"APP_NAME" envDefault:"trivia-catalog"`
	Env                     string        `env:"APP_ENV" envDefault:"development"`
	HTTPAddr                string        `env:"HTTP_ADDR" envDefault:"0.0.0.0:8080"`
	LogLevel                string        `env:"LOG_LEVEL" envDefault:"info"`
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_SECONDS" envDefault:"20s"`

	Store    Store
	Postgres Postgres
	SQLite   SQLite
	Redis    Redis
	Catalog  Catalog
	Quiz     Quiz
	CORS     CORS
}

// Store selects the catalog backend.
type Store struct {
	Driver string `env:"STORE_DRIVER" envDefault:"postgres"`
}

// Postgres captures connection info for the SQL database.
type Postgres struct {
	Host        string `env:"PG_HOST" envDefault:"localhost"`
	Port        int    `env:"PG_PORT" envDefault:"5432"`
	User        string `env:"PG_USER" envDefault:"postgres"`
	Password    string `env:"PG_PASSWORD"`
	Database    string `env:"PG_DATABASE" envDefault:"trivia"`
	SSLMode     string `env:"PG_SSL_MODE" envDefault:"disable"`
	MaxConns    int    `env:"PG_MAX_CONNS" envDefault:"10"`
	AutoMigrate bool   `env:"PG_AUTO_MIGRATE" envDefault:"false"`
}

// ConnString renders the libpq-style connection string.
func (p Postgres) ConnString() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode)
}

// PoolConnString is ConnString plus the pgxpool sizing parameter.
func (p Postgres) PoolConnString() string {
	return fmt.Sprintf("%s pool_max_conns=%d", p.ConnString(), p.MaxConns)
}

// SQLite configures the embedded backend.
type SQLite struct {
	Path string `env:"SQLITE_PATH" envDefault:"trivia.db"`
}

// Redis backs the optional quiz session tracker. Empty Addr disables it.
type Redis struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
	PoolSize int    `env:"REDIS_POOL_SIZE" envDefault:"20"`
}

// Catalog groups browse defaults.
type Catalog struct {
	PageSize int `env:"QUESTIONS_PER_PAGE" envDefault:"10"`
}

// Quiz groups play defaults.
type Quiz struct {
	SessionTTL time.Duration `env:"QUIZ_SESSION_TTL" envDefault:"2h"`
}

// CORS holds Cross-Origin Resource Sharing configuration.
type CORS struct {
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	AllowedMethods []string `env:"CORS_ALLOWED_METHODS" envSeparator:"," envDefault:"GET,POST,DELETE,OPTIONS"`
	AllowedHeaders []string `env:"CORS_ALLOWED_HEADERS" envSeparator:"," envDefault:"Content-Type,Authorization"`
	MaxAge         int      `env:"CORS_MAX_AGE" envDefault:"3600"`
}

// Load parses environment variables into App config.
func Load(ctx context.Context) (*App, error) {
	cfg := &App{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c *App) validate() error {
	switch c.Store.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("STORE_DRIVER must be %q or %q, got %q", DriverPostgres, DriverSQLite, c.Store.Driver)
	}
	if c.Catalog.PageSize <= 0 {
		return fmt.Errorf("QUESTIONS_PER_PAGE must be positive, got %d", c.Catalog.PageSize)
	}
	if c.Quiz.SessionTTL <= 0 {
		return fmt.Errorf("QUIZ_SESSION_TTL must be positive, got %s", c.Quiz.SessionTTL)
	}
	return nil
}
