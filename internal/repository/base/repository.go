// Package base holds the shared querier surface for repositories.
package base

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the querier surface shared by *pgxpool.Pool and pgx.Tx, so a
// repository method can run inside or outside a transaction unchanged.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ErrNotFound marks a mutation that matched no rows. Wrap it with the
// entity name so callers can distinguish missing rows from real failures.
var ErrNotFound = errors.New("not found")

// IsNotFound reports whether err is the pgx "no rows" error.
func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
