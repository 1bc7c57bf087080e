package infra

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/log/logrusadapter"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/sirupsen/logrus"
	"github.com/umalmyha/crm/internal/config"
)

// Postgresql opens connection pool, pgx warnings and errors are routed to logger
func Postgresql(ctx context.Context, cfg config.PostgresCfg, logger logrus.FieldLogger) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.URI())
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres connection string - %w", err)
	}
	poolCfg.ConnConfig.Logger = logrusadapter.NewLogger(logger.WithField("component", "pgx"))
	poolCfg.ConnConfig.LogLevel = pgx.LogLevelWarn

	pool, err := pgxpool.ConnectConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to establish connection to db - %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("didn't get response from database after sending ping request - %w", err)
	}
	return pool, nil
}
