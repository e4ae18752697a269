// internal/common/database/postgres.go
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"legal-marketplace/internal/common/config"
	"legal-marketplace/internal/common/errors"

	_ "github.com/lib/pq"
)

// PostgresClient owns the lawyer and consultation connection pool.
type PostgresClient struct {
	DB *sql.DB
}

// NewPostgres opens a lib/pq pool sized from configuration. It does not dial; call Ping.
func NewPostgres(cfg config.PostgresConfig) (*PostgresClient, error) {
	db, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxConnections)
	db.SetMaxIdleConns(cfg.MaxIdle)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	return &PostgresClient{DB: db}, nil
}

func (c *PostgresClient) Ping(ctx context.Context) error {
	if err := c.DB.PingContext(ctx); err != nil {
		return errors.NewDatabaseConnectionFailedError(fmt.Errorf("postgres ping failed: %w", err))
	}
	return nil
}

func (c *PostgresClient) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
