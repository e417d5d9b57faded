package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	"github.com/vadimbarashkov/video-api/internal/config"
	"github.com/vadimbarashkov/video-api/migrations"
	"github.com/vadimbarashkov/video-api/pkg/postgres"
	"github.com/vadimbarashkov/video-api/pkg/sqlite"
)

// openStore connects to the configured database and brings its schema up to date.
func openStore(ctx context.Context, cfg *config.Config) (*sqlx.DB, error) {
	const op = "app.openStore"

	switch cfg.Store.Driver {
	case config.DriverPostgres:
		db, err := postgres.New(
			ctx,
			cfg.Postgres.DSN(),
			postgres.WithConnMaxIdleTime(cfg.Postgres.ConnMaxIdleTime),
			postgres.WithConnMaxLifetime(cfg.Postgres.ConnMaxLifetime),
			postgres.WithMaxIdleConns(cfg.Postgres.MaxIdleConns),
			postgres.WithMaxOpenConns(cfg.Postgres.MaxOpenConns),
		)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to connect to database: %w", op, err)
		}

		if err := postgres.RunMigrations(migrations.FS, migrations.PostgresDir, cfg.Postgres.DSN()); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: failed to run migrations: %w", op, err)
		}

		return db, nil
	case config.DriverSQLite:
		if err := os.MkdirAll(filepath.Dir(cfg.SQLite.Path), 0o755); err != nil {
			return nil, fmt.Errorf("%s: failed to create database directory: %w", op, err)
		}

		db, err := sqlite.New(ctx, cfg.SQLite.DSN())
		if err != nil {
			return nil, fmt.Errorf("%s: failed to connect to database: %w", op, err)
		}

		if err := sqlite.RunMigrations(db, migrations.FS, migrations.SQLiteDir); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: failed to run migrations: %w", op, err)
		}

		return db, nil
	default:
		return nil, fmt.Errorf("%s: unknown store driver %q", op, cfg.Store.Driver)
	}
}
