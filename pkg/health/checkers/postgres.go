package checkers

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresChecker pings the pool with its own deadline.
type PostgresChecker struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresChecker(pool *pgxpool.Pool, timeout time.Duration) *PostgresChecker {
	if timeout <= 0 {
		timeout = time.Second
	}
	return &PostgresChecker{pool: pool, timeout: timeout}
}

func (c *PostgresChecker) Name() string { return "postgres" }

func (c *PostgresChecker) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	var one int
	return c.pool.QueryRow(ctx, `SELECT 1`).Scan(&one)
}
