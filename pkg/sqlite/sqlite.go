// Package sqlite opens SQLite databases through go-sqlite3 and migrates them.
package sqlite

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	_ "github.com/mattn/go-sqlite3"
)

// New opens the SQLite database at dsn. The pool is limited to a single
// connection so that in-memory databases are shared by every query and
// writers never contend for the file lock.
func New(ctx context.Context, dsn string) (*sqlx.DB, error) {
	const op = "sqlite.New"

	db, err := sqlx.ConnectContext(ctx, "sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to connect to database: %w", op, err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	return db, nil
}
