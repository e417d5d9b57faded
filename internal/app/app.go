// Package app wires configuration, storage, use cases and the HTTP server.
package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"

	"github.com/go-chi/httplog/v2"
	"github.com/jmoiron/sqlx"
	"github.com/vadimbarashkov/video-api/internal/adapter/repository/sqlstore"
	"github.com/vadimbarashkov/video-api/internal/config"
	"github.com/vadimbarashkov/video-api/internal/entity"
	"github.com/vadimbarashkov/video-api/internal/usecase"
	"golang.org/x/sync/errgroup"

	delivery "github.com/vadimbarashkov/video-api/internal/adapter/delivery/http"
)

func newHandler(cfg *config.Config, logger *httplog.Logger, db *sqlx.DB) http.Handler {
	videoUseCase := usecase.NewVideoUseCase(
		sqlstore.NewVideoRepository(db),
		usecase.WithPageSize(cfg.Pagination.DefaultSize, cfg.Pagination.MaxSize),
	)
	clipUseCase := usecase.NewCRUDUseCase[entity.Clip](sqlstore.NewClipRepository(db), 0)

	return delivery.NewRouter(logger, videoUseCase, clipUseCase)
}

func Run(ctx context.Context, cfg *config.Config) error {
	const op = "app.Run"

	logger, logCloser, err := newLogger(cfg, os.Stdout)
	if err != nil {
		return fmt.Errorf("%s: failed to create logger: %w", op, err)
	}
	defer logCloser.Close()

	db, err := openStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer db.Close()

	server := &http.Server{
		Addr:           cfg.HTTPServer.Addr(),
		Handler:        newHandler(cfg, logger, db),
		ReadTimeout:    cfg.HTTPServer.ReadTimeout,
		WriteTimeout:   cfg.HTTPServer.WriteTimeout,
		IdleTimeout:    cfg.HTTPServer.IdleTimeout,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting server", "addr", server.Addr, "env", cfg.Env, "store", cfg.Store.Driver)

		var err error

		switch cfg.Env {
		case config.EnvProd:
			err = server.ListenAndServeTLS(cfg.HTTPServer.CertFile, cfg.HTTPServer.KeyFile)
		default:
			err = server.ListenAndServe()
		}

		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("%s: server error occurred: %w", op, err)
		}

		return nil
	})

	g.Go(func() error {
		<-ctx.Done()

		logger.Info("shutting down server")

		if err := server.Shutdown(context.Background()); err != nil {
			return fmt.Errorf("%s: failed to shutdown server: %w", op, err)
		}

		return nil
	})

	return g.Wait()
}
