// Copyright 2025 Haltu Oy
// SPDX-License-Identifier: MIT

package db

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"
	pgx "github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/mpassid/authdata-service/internal/logging"
	"github.com/mpassid/authdata-service/internal/monitoring"
	"github.com/mpassid/authdata-service/internal/tracing"
)

type Config struct {
	DSN             string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
	TracingEnabled  bool
}

var _ DBClientInterface = (*DBClient)(nil)

type DBClient struct {
	db *sql.DB

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewDBClient(cfg Config, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) (*DBClient, error) {
	c := new(DBClient)

	c.tracer = tracer
	c.monitor = monitor
	c.logger = logger

	connConfig, err := pgx.ParseConfig(cfg.DSN)
	if err != nil {
		logger.Fatalf("invalid DSN: %v", err)
		return nil, err
	}

	c.db = stdlib.OpenDB(*connConfig)
	if cfg.MaxConns > 0 {
		c.db.SetMaxOpenConns(int(cfg.MaxConns))
	}
	if cfg.MinConns > 0 {
		c.db.SetMaxIdleConns(int(cfg.MinConns))
	}
	if cfg.MaxConnLifetime > 0 {
		c.db.SetConnMaxLifetime(cfg.MaxConnLifetime)
	}
	if cfg.MaxConnIdleTime > 0 {
		c.db.SetConnMaxIdleTime(cfg.MaxConnIdleTime)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := c.db.PingContext(ctx); err != nil {
		logger.Errorf("failed to ping database: %v", err)
		_ = monitor.SetDependencyAvailability(map[string]string{"component": "postgres"}, 0)
	} else {
		_ = monitor.SetDependencyAvailability(map[string]string{"component": "postgres"}, 1)
	}

	return c, nil
}

// Statement returns a postgres statement builder bound to the transaction in
// ctx if the transaction middleware opened one, otherwise to the pool.
func (c *DBClient) Statement(ctx context.Context) sq.StatementBuilderType {
	builder := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	if tx := TxFromContext(ctx); tx != nil {
		return builder.RunWith(tx)
	}

	return builder.RunWith(c.db)
}

func (c *DBClient) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return c.db.BeginTx(ctx, nil)
}

// DB exposes the raw handle for migrations.
func (c *DBClient) DB() *sql.DB {
	return c.db
}

func (c *DBClient) Close() error {
	return c.db.Close()
}
