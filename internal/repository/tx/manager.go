// Package tx provides the transaction boundary every composite warehouse
// mutation runs inside. Repositories pick the active transaction out of the
// context, so a service composed of several repository calls commits or rolls
// back as one unit.
package tx

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dihow/CircuitBoardWarehouse/internal/model"
)

// DB is the query surface shared by pgxpool.Pool and pgx.Tx.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type ctxKey struct{}

// Manager opens serializable transactions on a pgx pool.
type Manager struct {
	pool *pgxpool.Pool
}

func NewManager(pool *pgxpool.Pool) *Manager {
	return &Manager{pool: pool}
}

// Serializable runs fn inside a serializable transaction and commits when fn
// returns nil. If the context already carries a transaction, fn joins it and
// the outermost caller stays in charge of the commit. Serialization and
// deadlock failures come back wrapping model.ErrStorageConflict.
func (m *Manager) Serializable(ctx context.Context, fn func(ctx context.Context) error) error {
	const op = "tx.Manager.Serializable"

	if txFromContext(ctx) != nil {
		return fn(ctx)
	}

	t, err := m.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return fmt.Errorf("%s: begin: %w", op, err)
	}

	if err := fn(context.WithValue(ctx, ctxKey{}, t)); err != nil {
		if rbErr := t.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			return fmt.Errorf("%s: rollback: %w (after: %w)", op, rbErr, err)
		}
		return mapConflict(err)
	}

	if err := t.Commit(ctx); err != nil {
		return mapConflict(fmt.Errorf("%s: commit: %w", op, err))
	}

	return nil
}

// FromContext returns the transaction bound to ctx, or fallback when there is
// none. Repositories call it with their pool as the fallback.
func FromContext(ctx context.Context, fallback DB) DB {
	if t := txFromContext(ctx); t != nil {
		return t
	}
	return fallback
}

func txFromContext(ctx context.Context) pgx.Tx {
	t, _ := ctx.Value(ctxKey{}).(pgx.Tx)
	return t
}

// mapConflict converts SQLSTATE 40001 (serialization_failure) and 40P01
// (deadlock_detected) into the retryable conflict error; everything else
// passes through unchanged.
func mapConflict(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && (pgErr.Code == "40001" || pgErr.Code == "40P01") {
		return fmt.Errorf("%w: %s", model.ErrStorageConflict, pgErr.Message)
	}
	return err
}
