package usecase

import "time"

const (
	// DefaultTransactionTimeout is the maximum duration for a database transaction
	// This prevents long-running transactions from blocking tables
	DefaultTransactionTimeout = 10 * time.Second

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour

	// WalletCacheTTL is how long wallet reads are cached
	WalletCacheTTL = 30 * time.Second

	// RecentTransactionsLimit is how many transactions a wallet detail includes
	RecentTransactionsLimit = 10
)
