package postgres

import (
	"context"
	"fmt"
	"lending-api/internal/config"
	"log/slog"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	applicationName = "lending-api"
	defaultMaxConns = 10
)

// NewConnectionPool opens the pool the repositories share and fails fast when the server is unreachable.
func NewConnectionPool(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*pgxpool.Pool, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("database URL is empty in configuration")
	}
	log := logger.With("component", "PostgresPool")

	poolConfig, err := configurePool(cfg)
	if err != nil {
		return nil, err
	}

	log.Info("Opening PostgreSQL pool",
		"host", poolConfig.ConnConfig.Host,
		"db", poolConfig.ConnConfig.Database,
		"maxConns", poolConfig.MaxConns,
		"statementTimeout", poolConfig.ConnConfig.RuntimeParams["statement_timeout"],
	)
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	if err := verifyConnection(ctx, pool, cfg.QueryTimeout, log); err != nil {
		pool.Close()
		return nil, err
	}

	log.Info("PostgreSQL pool ready")
	return pool, nil
}

// configurePool applies pool limits and tags every session so server-side statements
// are cut off shortly after the client-side query timeout fires.
func configurePool(cfg config.DatabaseConfig) (*pgxpool.Config, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config from URL: %w", err)
	}

	poolConfig.MaxConns = defaultMaxConns
	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = cfg.MaxConns
	}
	poolConfig.MaxConnIdleTime = 5 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	timeout := cfg.QueryTimeout
	if timeout <= 0 {
		timeout = defaultQueryTimeout
	}
	poolConfig.ConnConfig.RuntimeParams["application_name"] = applicationName
	poolConfig.ConnConfig.RuntimeParams["statement_timeout"] = strconv.FormatInt((timeout + time.Second).Milliseconds(), 10)

	return poolConfig, nil
}

type pinger interface {
	Ping(ctx context.Context) error
}

func verifyConnection(ctx context.Context, db pinger, timeout time.Duration, logger *slog.Logger) error {
	pingCtx, cancel := withTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	if err := db.Ping(pingCtx); err != nil {
		logger.Error("Database ping failed", slog.Any("error", err))
		return fmt.Errorf("failed to ping database on connect: %w", err)
	}
	logger.Debug("Database ping succeeded", "latency", time.Since(start))
	return nil
}
