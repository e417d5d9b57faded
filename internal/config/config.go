// Package config loads the YAML configuration of the video service.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Env        string `yaml:"env"`
	HTTPServer `yaml:"http_server"`
	Store      `yaml:"store"`
	Postgres   `yaml:"postgres"`
	SQLite     `yaml:"sqlite"`
	Log        `yaml:"log"`
	Pagination `yaml:"pagination"`
}

type HTTPServer struct {
	Port           int           `yaml:"port"`
	ReadTimeout    time.Duration `yaml:"read_timeout"`
	WriteTimeout   time.Duration `yaml:"write_timeout"`
	IdleTimeout    time.Duration `yaml:"idle_timeout"`
	MaxHeaderBytes int           `yaml:"max_header_bytes"`
	CertFile       string        `yaml:"cert_file"`
	KeyFile        string        `yaml:"key_file"`
}

var defaultHTTPServer = HTTPServer{
	Port:           8080,
	ReadTimeout:    5 * time.Second,
	WriteTimeout:   10 * time.Second,
	IdleTimeout:    time.Minute,
	MaxHeaderBytes: 1 << 20,
}

func (s *HTTPServer) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}

// Store selects the database backing the repositories.
type Store struct {
	Driver string `yaml:"driver"`
}

var defaultStore = Store{
	Driver: DriverPostgres,
}

type Postgres struct {
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	DB              string        `yaml:"db"`
	SSLMode         string        `yaml:"sslmode"`
	ConnMaxIdleTime time.Duration `yaml:"conn_max_idle_time"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
}

var defaultPostgres = Postgres{
	Host:            "localhost",
	Port:            5432,
	SSLMode:         "disable",
	ConnMaxIdleTime: 5 * time.Minute,
	ConnMaxLifetime: 30 * time.Minute,
	MaxIdleConns:    5,
	MaxOpenConns:    25,
}

func (p *Postgres) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.User, p.Password, p.Host, p.Port, p.DB, p.SSLMode)
}

type SQLite struct {
	Path string `yaml:"path"`
}

var defaultSQLite = SQLite{
	Path: "videos.db",
}

// DSN returns a go-sqlite3 data source name. Timestamps are read back in UTC
// and foreign keys are enforced.
func (s *SQLite) DSN() string {
	return fmt.Sprintf("file:%s?_loc=UTC&_fk=1&_busy_timeout=5000", s.Path)
}

// Log configures the application and request logger. When File is set the
// output is also written to a rotating file.
type Log struct {
	Level      string `yaml:"level"`
	JSON       bool   `yaml:"json"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

var defaultLog = Log{
	Level:      "info",
	MaxSizeMB:  100,
	MaxBackups: 3,
	MaxAgeDays: 28,
}

type Pagination struct {
	DefaultSize int `yaml:"default_size"`
	MaxSize     int `yaml:"max_size"`
}

var defaultPagination = Pagination{
	DefaultSize: 10,
	MaxSize:     100,
}

func Load(path string) (*Config, error) {
	const op = "config.Load"

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to open config file: %w", op, err)
	}
	defer f.Close()

	var cfg Config
	setDefaults(&cfg)

	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("%s: failed to decode config file: %w", op, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &cfg, nil
}

func (cfg *Config) validate() error {
	switch cfg.Env {
	case EnvDev, EnvStage, EnvProd:
	default:
		return fmt.Errorf("unknown env %q", cfg.Env)
	}

	switch cfg.Store.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}

	return nil
}

func setDefaults(cfg *Config) {
	cfg.Env = EnvDev
	cfg.HTTPServer = defaultHTTPServer
	cfg.Store = defaultStore
	cfg.Postgres = defaultPostgres
	cfg.SQLite = defaultSQLite
	cfg.Log = defaultLog
	cfg.Pagination = defaultPagination
}
