package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/walletd/internal/domain"
	"github.com/iho/walletd/internal/infrastructure/metrics"
)

// LedgerUseCase is the posting engine. It applies signed amounts to wallets
// under a row lock and keeps stored balances equal to the transaction sum.
type LedgerUseCase struct {
	txManager       TxManager
	walletRepo      WalletRepository
	transactionRepo TransactionRepository
	outboxRepo      OutboxRepository
	cache           WalletCache
	idGen           IDGenerator
	txidGen         IDGenerator
	retrier         Retrier
	metrics         *metrics.Metrics
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(
	txManager TxManager,
	walletRepo WalletRepository,
	transactionRepo TransactionRepository,
	outboxRepo OutboxRepository,
	cache WalletCache,
	idGen IDGenerator,
	txidGen IDGenerator,
	metrics *metrics.Metrics,
) *LedgerUseCase {
	return &LedgerUseCase{
		txManager:       txManager,
		walletRepo:      walletRepo,
		transactionRepo: transactionRepo,
		outboxRepo:      outboxRepo,
		cache:           cache,
		idGen:           idGen,
		txidGen:         txidGen,
		metrics:         metrics,
	}
}

// WithRetrier configures retry of posts that fail on transient database
// errors. Each attempt runs in a fresh transaction.
func (uc *LedgerUseCase) WithRetrier(retrier Retrier) *LedgerUseCase {
	uc.retrier = retrier
	return uc
}

// PostTransactionInput represents input for posting a transaction.
type PostTransactionInput struct {
	WalletID string
	Amount   decimal.Decimal
	TxID     string
}

// PostTransaction atomically records a signed amount against a wallet.
// The wallet row is locked for the duration of the transaction, the
// prospective balance is validated against the locked row, and the stored
// balance is recomputed from the full transaction history before commit.
// Returns the committed transaction and the new balance.
func (uc *LedgerUseCase) PostTransaction(ctx context.Context, input PostTransactionInput) (*domain.Transaction, decimal.Decimal, error) {
	txn := &domain.Transaction{
		ID:       uc.idGen.Generate(),
		WalletID: input.WalletID,
		TxID:     input.TxID,
		Amount:   input.Amount,
	}
	if txn.TxID == "" {
		txn.TxID = uc.txidGen.Generate()
	}

	if err := txn.Validate(); err != nil {
		return nil, decimal.Zero, err
	}

	start := time.Now()

	// Add transaction timeout
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	var newBalance decimal.Decimal
	operation := func() error {
		var err error
		newBalance, err = uc.postOnce(txCtx, txn)
		return err
	}

	var err error
	if uc.retrier != nil {
		err = uc.retrier.Retry(txCtx, operation)
	} else {
		err = operation()
	}
	if err != nil {
		return nil, decimal.Zero, err
	}

	uc.invalidateWallet(ctx, input.WalletID)

	if uc.metrics != nil {
		uc.metrics.TransactionsPosted.Inc()
		amount, _ := txn.Amount.Abs().Float64()
		uc.metrics.TransactionAmount.Observe(amount)
		uc.metrics.TransactionDuration.Observe(time.Since(start).Seconds())
	}

	return txn, newBalance, nil
}

// postOnce runs a single posting attempt in its own transaction.
func (uc *LedgerUseCase) postOnce(ctx context.Context, txn *domain.Transaction) (decimal.Decimal, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// Lock wallet
	wallet, err := uc.walletRepo.GetByIDForUpdate(ctx, tx, txn.WalletID)
	if err != nil {
		return decimal.Zero, err
	}

	// Check prospective balance against the locked row
	if err := wallet.ValidatePosting(txn.Amount); err != nil {
		if uc.metrics != nil {
			uc.metrics.TransactionsRejected.WithLabelValues("insufficient_balance").Inc()
		}
		return decimal.Zero, err
	}

	now := time.Now().UTC()
	txn.CreatedAt = now

	if err := uc.transactionRepo.Create(ctx, tx, txn); err != nil {
		return decimal.Zero, err
	}

	// Recompute the balance from the full history rather than trusting
	// the stored value
	newBalance, err := uc.transactionRepo.SumByWalletTx(ctx, tx, txn.WalletID)
	if err != nil {
		return decimal.Zero, err
	}

	if newBalance.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: wallet %s sums to %s", domain.ErrBalanceMismatch, txn.WalletID, newBalance)
	}

	if err := uc.walletRepo.UpdateBalance(ctx, tx, txn.WalletID, newBalance, now); err != nil {
		return decimal.Zero, err
	}

	// Emit transaction posted event
	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   txn.ID,
		AggregateType: domain.AggregateTypeTransaction,
		EventType:     domain.EventTypeTransactionPosted,
		Payload: map[string]any{
			"transaction_id": txn.ID,
			"wallet_id":      txn.WalletID,
			"txid":           txn.TxID,
			"amount":         txn.Amount.String(),
			"balance":        newBalance.String(),
		},
		CreatedAt: now,
		Published: false,
	}
	if err := uc.outboxRepo.Create(ctx, tx, event); err != nil {
		return decimal.Zero, err
	}

	if err := tx.Commit(ctx); err != nil {
		return decimal.Zero, err
	}

	return newBalance, nil
}

// RecomputeBalance rebuilds a wallet's stored balance from its transaction
// history. Used to repair drift detected by reconciliation.
func (uc *LedgerUseCase) RecomputeBalance(ctx context.Context, walletID string) (decimal.Decimal, error) {
	start := time.Now()

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return decimal.Zero, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	if _, err := uc.walletRepo.GetByIDForUpdate(txCtx, tx, walletID); err != nil {
		return decimal.Zero, err
	}

	balance, err := uc.transactionRepo.SumByWalletTx(txCtx, tx, walletID)
	if err != nil {
		return decimal.Zero, err
	}

	if balance.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: wallet %s sums to %s", domain.ErrBalanceMismatch, walletID, balance)
	}

	if err := uc.walletRepo.UpdateBalance(txCtx, tx, walletID, balance, time.Now().UTC()); err != nil {
		return decimal.Zero, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return decimal.Zero, err
	}

	uc.invalidateWallet(ctx, walletID)

	if uc.metrics != nil {
		uc.metrics.RecomputeDuration.Observe(time.Since(start).Seconds())
	}

	return balance, nil
}

func (uc *LedgerUseCase) invalidateWallet(ctx context.Context, walletID string) {
	if uc.cache == nil {
		return
	}
	_ = uc.cache.Delete(ctx, walletID)
}
