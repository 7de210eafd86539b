package usecase

import (
	"context"

	"github.com/iho/walletd/internal/domain"
)

// TransactionUseCase handles transaction read operations. Transactions are
// written only through LedgerUseCase.PostTransaction.
type TransactionUseCase struct {
	transactionRepo TransactionRepository
	walletRepo      WalletRepository
}

// NewTransactionUseCase creates a new TransactionUseCase.
func NewTransactionUseCase(transactionRepo TransactionRepository, walletRepo WalletRepository) *TransactionUseCase {
	return &TransactionUseCase{
		transactionRepo: transactionRepo,
		walletRepo:      walletRepo,
	}
}

// GetTransaction retrieves a transaction by ID.
func (uc *TransactionUseCase) GetTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	return uc.transactionRepo.GetByID(ctx, id)
}

// GetTransactionByTxID retrieves a transaction by its external txid.
func (uc *TransactionUseCase) GetTransactionByTxID(ctx context.Context, txid string) (*domain.Transaction, error) {
	return uc.transactionRepo.GetByTxID(ctx, txid)
}

// ListTransactionsInput represents input for listing transactions.
type ListTransactionsInput struct {
	WalletID string
	TxID     string
	Search   string
	OrderBy  string
	Sort     string
	Limit    int
	Offset   int
}

// ListTransactions lists transactions with filtering and pagination.
// An unknown wallet_id filter yields an empty page, not an error.
func (uc *TransactionUseCase) ListTransactions(ctx context.Context, input ListTransactionsInput) ([]*domain.Transaction, int64, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	filter := domain.TransactionFilter{
		WalletID: input.WalletID,
		TxID:     input.TxID,
		Search:   input.Search,
		OrderBy:  input.OrderBy,
		Sort:     input.Sort,
		Limit:    limit,
		Offset:   offset,
	}

	transactions, err := uc.transactionRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	total, err := uc.transactionRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return transactions, total, nil
}

// ListWalletTransactions lists transactions for a specific wallet. Unlike
// the wallet_id filter, an unknown wallet is an error here.
func (uc *TransactionUseCase) ListWalletTransactions(ctx context.Context, walletID string, input ListTransactionsInput) ([]*domain.Transaction, int64, error) {
	if _, err := uc.walletRepo.GetByID(ctx, walletID); err != nil {
		return nil, 0, err
	}

	input.WalletID = walletID
	return uc.ListTransactions(ctx, input)
}
