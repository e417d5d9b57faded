// Package postgres opens pgx-backed sqlx pools for the video store and migrates them.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	_ "github.com/jackc/pgx/v5/stdlib"
)

const driverName = "pgx"

const (
	defaultConnMaxIdleTime = 5 * time.Minute
	defaultConnMaxLifetime = 30 * time.Minute
	defaultMaxIdleConns    = 5
	defaultMaxOpenConns    = 25
	defaultPingTimeout     = 5 * time.Second
)

// Option tunes the connection pool returned by New. Zero or negative values
// keep the package default, so unset config fields don't lift the limits.
type Option func(*sqlx.DB)

func WithConnMaxIdleTime(d time.Duration) Option {
	return func(db *sqlx.DB) {
		if d > 0 {
			db.SetConnMaxIdleTime(d)
		}
	}
}

func WithConnMaxLifetime(d time.Duration) Option {
	return func(db *sqlx.DB) {
		if d > 0 {
			db.SetConnMaxLifetime(d)
		}
	}
}

func WithMaxIdleConns(n int) Option {
	return func(db *sqlx.DB) {
		if n > 0 {
			db.SetMaxIdleConns(n)
		}
	}
}

func WithMaxOpenConns(n int) Option {
	return func(db *sqlx.DB) {
		if n > 0 {
			db.SetMaxOpenConns(n)
		}
	}
}

func configure(db *sqlx.DB, opts ...Option) {
	db.SetConnMaxIdleTime(defaultConnMaxIdleTime)
	db.SetConnMaxLifetime(defaultConnMaxLifetime)
	db.SetMaxIdleConns(defaultMaxIdleConns)
	db.SetMaxOpenConns(defaultMaxOpenConns)

	for _, opt := range opts {
		opt(db)
	}
}

// New opens a pool to dsn, applies opts and pings the server. The ping is
// bounded by a timeout unless ctx already carries a deadline.
func New(ctx context.Context, dsn string, opts ...Option) (*sqlx.DB, error) {
	const op = "postgres.New"

	db, err := sqlx.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to open database: %w", op, err)
	}

	configure(db, opts...)

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, defaultPingTimeout)
		defer cancel()
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: failed to ping %s database: %w", op, driverName, err)
	}

	return db, nil
}
