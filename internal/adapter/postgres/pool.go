package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const pingTimeout = 10 * time.Second

// NewPool opens a pgx connection pool sized for the extraction fan-out
// and verifies connectivity with a bounded ping, so an unreachable
// database fails fast instead of on the first catalog read.
//
// MaxConns is raised to fanout+1 when smaller: the concurrent per-table
// readers plus the table-listing query that precedes them.
func NewPool(ctx context.Context, databaseURL string, fanout int) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing database URL: %w", err)
	}

	if wanted := int32(fanout + 1); fanout > 0 && config.MaxConns < wanted {
		config.MaxConns = wanted
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database (%s timeout): %w", pingTimeout, err)
	}

	return pool, nil
}
