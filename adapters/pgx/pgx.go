// Package pgx adapts core.AuthStorage onto a PostgreSQL pool.
package pgx

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fennig/latch/core"
)

type Adapter struct {
	pool *pgxpool.Pool
}

var _ core.AuthStorage = (*Adapter)(nil)

func New(pool *pgxpool.Pool) *Adapter {
	return &Adapter{
		pool: pool,
	}
}
