package sqlite

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
)

// RunMigrations applies the migrations found in dir of fsys to db.
//
// The migrator is built on the already open connection and is not closed
// afterwards, since closing it would close db as well.
func RunMigrations(db *sqlx.DB, fsys fs.FS, dir string) error {
	const op = "sqlite.RunMigrations"

	src, err := iofs.New(fsys, dir)
	if err != nil {
		return fmt.Errorf("%s: failed to open migrations source: %w", op, err)
	}

	driver, err := sqlite3.WithInstance(db.DB, &sqlite3.Config{})
	if err != nil {
		return fmt.Errorf("%s: failed to create migrations driver: %w", op, err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "sqlite3", driver)
	if err != nil {
		return fmt.Errorf("%s: failed to initialize migrations: %w", op, err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("%s: failed to run migrations: %w", op, err)
	}

	return nil
}
