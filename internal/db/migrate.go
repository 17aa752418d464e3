package db

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-catalog/db/migrations"
)

// MigrationTable is the goose bookkeeping table.
const MigrationTable = "goose_db_version"

// Command is a goose migration command.
type Command string

const (
	CommandUp     Command = "up"
	CommandDown   Command = "down"
	CommandStatus Command = "status"
)

// Migrate runs cmd against sqlDB. With dir empty the embedded migrations are
// used; otherwise dir is read from disk.
func Migrate(ctx context.Context, sqlDB *sql.DB, cmd Command, dir string, logger zerolog.Logger) error {
	var source fs.FS = migrations.FS
	if dir != "" {
		source = nil
	} else {
		dir = "."
	}
	goose.SetBaseFS(source)
	goose.SetTableName(MigrationTable)
	goose.SetLogger(gooseLogger{logger: logger})
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}

	switch cmd {
	case CommandUp:
		if err := goose.UpContext(ctx, sqlDB, dir); err != nil {
			return fmt.Errorf("migrate up: %w", err)
		}
	case CommandDown:
		if err := goose.DownContext(ctx, sqlDB, dir); err != nil {
			return fmt.Errorf("migrate down: %w", err)
		}
	case CommandStatus:
		if err := goose.StatusContext(ctx, sqlDB, dir); err != nil {
			return fmt.Errorf("migrate status: %w", err)
		}
	default:
		return fmt.Errorf("unknown migration command %q", cmd)
	}
	return nil
}

// gooseLogger routes goose output through zerolog.
type gooseLogger struct {
	logger zerolog.Logger
}

func (l gooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Fatal().Msgf(format, v...)
}

func (l gooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Info().Msgf(format, v...)
}
