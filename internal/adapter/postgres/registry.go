package postgres

import (
	"context"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/schemalens/schemalens/internal/core/domain"
	"github.com/schemalens/schemalens/internal/core/port"
)

// Registry hands out schema extractors bound to deployment targets.
// Pools are opened lazily on first use and reused for the process
// lifetime; the schema models built from them are still per-request.
type Registry struct {
	mu     sync.Mutex
	urls   map[domain.Environment]string
	pools  map[domain.Environment]*pgxpool.Pool
	schema string
	fanout int
}

func NewRegistry(urls map[domain.Environment]string, schema string, fanout int) *Registry {
	return &Registry{
		urls:   urls,
		pools:  make(map[domain.Environment]*pgxpool.Pool),
		schema: schema,
		fanout: fanout,
	}
}

func (r *Registry) Extractor(ctx context.Context, env domain.Environment) (port.SchemaExtractor, error) {
	pool, err := r.pool(ctx, env)
	if err != nil {
		return nil, err
	}
	return NewExtractor(pool, r.schema, r.fanout), nil
}

func (r *Registry) pool(ctx context.Context, env domain.Environment) (*pgxpool.Pool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if pool, ok := r.pools[env]; ok {
		return pool, nil
	}

	url, ok := r.urls[env]
	if !ok {
		return nil, fmt.Errorf("no database configured for environment %q", env)
	}

	pool, err := NewPool(ctx, url, r.fanout)
	if err != nil {
		return nil, fmt.Errorf("connecting to %s database: %w", env, err)
	}
	r.pools[env] = pool
	return pool, nil
}

// Close shuts down every pool the registry opened.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for env, pool := range r.pools {
		pool.Close()
		delete(r.pools, env)
	}
}
