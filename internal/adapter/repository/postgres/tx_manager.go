package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/walletd/internal/usecase"
)

type pgxPool interface {
	Begin(context.Context) (pgx.Tx, error)
}

// TxManager hands out the database transactions posting runs in.
// It implements usecase.TxManager.
type TxManager struct {
	pool pgxPool
}

// NewTxManager creates a TxManager on the given pool.
func NewTxManager(pool *pgxpool.Pool) *TxManager {
	return newTxManagerWithPool(pool)
}

func newTxManagerWithPool(pool pgxPool) *TxManager {
	return &TxManager{pool: pool}
}

// Begin starts a transaction. Lock waits inside it are bounded by the
// lock_timeout set on the pool connections.
func (m *TxManager) Begin(ctx context.Context) (usecase.Tx, error) {
	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return nil, classifyError(err)
	}

	return &Tx{tx: tx}, nil
}

// Tx adapts a pgx transaction to usecase.Tx.
type Tx struct {
	tx pgx.Tx
}

// Commit commits the transaction.
func (t *Tx) Commit(ctx context.Context) error {
	return classifyError(t.tx.Commit(ctx))
}

// Rollback aborts the transaction. Rolling back an already committed
// transaction is a no-op, so callers can leave rollback in a defer.
func (t *Tx) Rollback(ctx context.Context) error {
	err := t.tx.Rollback(ctx)
	if errors.Is(err, pgx.ErrTxClosed) {
		return nil
	}

	return err
}

// pgxTxFrom unwraps the pgx transaction backing a usecase.Tx. Repositories
// in this package only ever receive transactions minted by TxManager.
func pgxTxFrom(tx usecase.Tx) pgx.Tx {
	pt, ok := tx.(*Tx)
	if !ok {
		panic(fmt.Sprintf("postgres: foreign transaction type %T", tx))
	}

	return pt.tx
}
