// Package database provides the Postgres persistence handle shared by all
// domain services. The pool is constructed explicitly at startup and passed
// down; there is no package-level connection state.
package database

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	_ "github.com/joho/godotenv/autoload"
)

// DatabaseName is fixed; only credentials and endpoint come from the
// environment.
const DatabaseName = "pure_poker"

// Service defines the database operations used by the domain services.
type Service interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)

	// Migrate creates the schema if it does not exist yet.
	Migrate(ctx context.Context) error

	// Health reports connectivity and pool statistics.
	Health(ctx context.Context) map[string]string

	Close()
}

type service struct {
	pool *pgxpool.Pool
}

// Config holds database connection settings.
type Config struct {
	Username string
	Password string
	Endpoint string // host or host:port
}

// LoadConfigFromEnv reads the connection settings from the environment.
func LoadConfigFromEnv() Config {
	return Config{
		Username: os.Getenv("DB_USERNAME"),
		Password: os.Getenv("DB_PASSWORD"),
		Endpoint: os.Getenv("DB_ENDPOINT"),
	}
}

// New connects to Postgres and returns the database service.
func New(ctx context.Context, cfg Config) (Service, error) {
	dsn := fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=disable",
		cfg.Username, cfg.Password, cfg.Endpoint, DatabaseName)

	return NewWithDSN(ctx, dsn)
}

// NewWithDSN connects using a full connection string. Used by tests that
// provision their own database.
func NewWithDSN(ctx context.Context, dsn string) (Service, error) {
	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse database config: %w", err)
	}
	poolCfg.MaxConnLifetime = time.Hour
	poolCfg.MaxConnIdleTime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	slog.Info("Database connected", "database", poolCfg.ConnConfig.Database)
	return &service{pool: pool}, nil
}

func (s *service) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return s.pool.Query(ctx, sql, args...)
}

func (s *service) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return s.pool.QueryRow(ctx, sql, args...)
}

func (s *service) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return s.pool.Exec(ctx, sql, args...)
}

func (s *service) Begin(ctx context.Context) (pgx.Tx, error) {
	return s.pool.Begin(ctx)
}

func (s *service) Health(ctx context.Context) map[string]string {
	health := make(map[string]string)

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := s.pool.Ping(ctx); err != nil {
		health["status"] = "down"
		health["error"] = err.Error()
		return health
	}

	stats := s.pool.Stat()
	health["status"] = "up"
	health["total_conns"] = fmt.Sprintf("%d", stats.TotalConns())
	health["idle_conns"] = fmt.Sprintf("%d", stats.IdleConns())
	return health
}

func (s *service) Close() {
	s.pool.Close()
}
