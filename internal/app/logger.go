package app

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/httplog/v2"
	"github.com/vadimbarashkov/video-api/internal/config"
	"gopkg.in/natefinch/lumberjack.v2"
)

const serviceName = "video-api"

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// newLogger builds the logger shared by the request logging middleware and the
// application. The returned closer releases the log file, if any.
func newLogger(cfg *config.Config, stdout io.Writer) (*httplog.Logger, io.Closer, error) {
	const op = "app.newLogger"

	writer := stdout
	var closer io.Closer = nopCloser{}

	if cfg.Log.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Log.File), 0o755); err != nil {
			return nil, nil, fmt.Errorf("%s: failed to create log directory: %w", op, err)
		}

		fileWriter := &lumberjack.Logger{
			Filename:   cfg.Log.File,
			MaxSize:    cfg.Log.MaxSizeMB,
			MaxBackups: cfg.Log.MaxBackups,
			MaxAge:     cfg.Log.MaxAgeDays,
			Compress:   cfg.Log.Compress,
		}

		writer = io.MultiWriter(stdout, fileWriter)
		closer = fileWriter
	}

	logger := httplog.NewLogger(serviceName, httplog.Options{
		LogLevel:       parseLevel(cfg.Log.Level),
		JSON:           cfg.Log.JSON || cfg.Env != config.EnvDev,
		Concise:        cfg.Env == config.EnvDev,
		RequestHeaders: cfg.Env == config.EnvDev,
		Tags: map[string]string{
			"env": cfg.Env,
		},
		Writer: writer,
	})

	return logger, closer, nil
}
