package transactor

import (
	"context"
	"fmt"

	"github.com/jackc/pgtype/pgxtype"
	"github.com/jackc/pgx/v4"
)

type pgxTxKey struct{}

// PgxQueryExecutor is implemented by both pgx pool and pgx transaction
type PgxQueryExecutor interface {
	pgxtype.Querier
	Begin(context.Context) (pgx.Tx, error)
	SendBatch(context.Context, *pgx.Batch) pgx.BatchResults
	CopyFrom(context.Context, pgx.Identifier, []string, pgx.CopyFromSource) (int64, error)
}

// PgxPool is the subset of *pgxpool.Pool used by repositories
type PgxPool interface {
	PgxQueryExecutor
	BeginTx(context.Context, pgx.TxOptions) (pgx.Tx, error)
}

// PgxWithinTransactionExecutor resolves executor repositories must use for the context
type PgxWithinTransactionExecutor interface {
	Executor(ctx context.Context) PgxQueryExecutor
}

// Pgx keeps started transaction in context, so repositories sharing it join the transaction transparently
type Pgx struct {
	pool PgxPool
	opts pgx.TxOptions
}

var (
	_ Transactor                   = (*Pgx)(nil)
	_ PgxWithinTransactionExecutor = (*Pgx)(nil)
)

// NewPgx builds Pgx, opts are applied to transactions started by WithinTransaction
func NewPgx(p PgxPool, opts ...pgx.TxOptions) *Pgx {
	t := &Pgx{pool: p}
	if len(opts) > 0 {
		t.opts = opts[0]
	}
	return t
}

func (t *Pgx) WithinTransaction(ctx context.Context, txFunc func(context.Context) error) error {
	return t.WithinTransactionWithOptions(ctx, txFunc, t.opts)
}

// WithinTransactionWithOptions joins transaction already bound to ctx, otherwise starts new one
func (t *Pgx) WithinTransactionWithOptions(ctx context.Context, txFunc func(context.Context) error, opts pgx.TxOptions) (err error) {
	if txFrom(ctx) != nil {
		return txFunc(ctx)
	}

	tx, err := t.pool.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to begin transaction - %w", err)
	}
	defer func() {
		if err != nil {
			// rollback failure is shadowed by the original error
			_ = tx.Rollback(ctx)
			return
		}
		err = tx.Commit(ctx)
	}()

	return txFunc(context.WithValue(ctx, pgxTxKey{}, tx))
}

// Executor returns transaction bound to context or pool if there is no transaction in progress
func (t *Pgx) Executor(ctx context.Context) PgxQueryExecutor {
	if tx := txFrom(ctx); tx != nil {
		return tx
	}
	return t.pool
}

func txFrom(ctx context.Context) pgx.Tx {
	if tx, ok := ctx.Value(pgxTxKey{}).(pgx.Tx); ok {
		return tx
	}
	return nil
}
