package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/walletd/internal/domain"
)

// WalletRepository defines data access for wallets.
type WalletRepository interface {
	CreateTx(ctx context.Context, tx Tx, wallet *domain.Wallet) error
	GetByID(ctx context.Context, id string) (*domain.Wallet, error)
	GetByIDForUpdate(ctx context.Context, tx Tx, id string) (*domain.Wallet, error)
	UpdateBalance(ctx context.Context, tx Tx, id string, balance decimal.Decimal, updatedAt time.Time) error
	UpdateLabel(ctx context.Context, id, label string, updatedAt time.Time) (*domain.Wallet, error)
	DeleteTx(ctx context.Context, tx Tx, id string) error
	List(ctx context.Context, filter domain.WalletFilter) ([]*domain.Wallet, error)
	Count(ctx context.Context, filter domain.WalletFilter) (int64, error)
}

// TransactionRepository defines data access for transactions.
type TransactionRepository interface {
	Create(ctx context.Context, tx Tx, transaction *domain.Transaction) error
	GetByID(ctx context.Context, id string) (*domain.Transaction, error)
	GetByTxID(ctx context.Context, txid string) (*domain.Transaction, error)
	List(ctx context.Context, filter domain.TransactionFilter) ([]*domain.Transaction, error)
	Count(ctx context.Context, filter domain.TransactionFilter) (int64, error)
	SumByWallet(ctx context.Context, walletID string) (decimal.Decimal, error)
	SumByWalletTx(ctx context.Context, tx Tx, walletID string) (decimal.Decimal, error)
}

// LedgerRepository defines data access for ledger-wide operations.
type LedgerRepository interface {
	BalanceSummaries(ctx context.Context) ([]*domain.BalanceSummary, error)
}

// OutboxRepository defines data access for outbox events.
type OutboxRepository interface {
	Create(ctx context.Context, tx Tx, event *domain.OutboxEvent) error
	GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, id string, publishedAt time.Time) error
	DeletePublished(ctx context.Context, before time.Time) error
}

// Tx represents a database transaction.
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TxManager handles transaction lifecycle.
type TxManager interface {
	Begin(ctx context.Context) (Tx, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Retrier retries an operation on transient database errors.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// WalletCache caches wallet snapshots between reads. Get returns nil
// without error on a miss.
type WalletCache interface {
	Get(ctx context.Context, id string) (*domain.Wallet, error)
	Set(ctx context.Context, wallet *domain.Wallet, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
