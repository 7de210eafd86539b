package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iho/walletd/internal/domain"
	"github.com/iho/walletd/internal/usecase"
	"github.com/iho/walletd/internal/usecase/mocks"
)

func seedTransactions(t *testing.T, txnRepo *mocks.MockTransactionRepository, walletID string, txids ...string) {
	t.Helper()
	for _, txid := range txids {
		err := txnRepo.Create(context.Background(), nil, &domain.Transaction{
			ID:       "txn-" + txid,
			WalletID: walletID,
			TxID:     txid,
			Amount:   decimal.NewFromInt(1),
		})
		if err != nil {
			t.Fatalf("seeding transaction %s: %v", txid, err)
		}
	}
}

func TestTransactionUseCase_GetTransaction(t *testing.T) {
	txnRepo := mocks.NewMockTransactionRepository()
	seedTransactions(t, txnRepo, "w1", "order-1")

	uc := usecase.NewTransactionUseCase(txnRepo, mocks.NewMockWalletRepository())

	txn, err := uc.GetTransaction(context.Background(), "txn-order-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if txn.TxID != "order-1" {
		t.Errorf("expected txid order-1, got %s", txn.TxID)
	}

	_, err = uc.GetTransaction(context.Background(), "missing")
	if !errors.Is(err, domain.ErrTransactionNotFound) {
		t.Fatalf("expected ErrTransactionNotFound, got %v", err)
	}
}

func TestTransactionUseCase_GetTransactionByTxID(t *testing.T) {
	txnRepo := mocks.NewMockTransactionRepository()
	seedTransactions(t, txnRepo, "w1", "order-1")

	uc := usecase.NewTransactionUseCase(txnRepo, mocks.NewMockWalletRepository())

	txn, err := uc.GetTransactionByTxID(context.Background(), "order-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if txn.ID != "txn-order-1" {
		t.Errorf("expected id txn-order-1, got %s", txn.ID)
	}

	_, err = uc.GetTransactionByTxID(context.Background(), "missing")
	if !errors.Is(err, domain.ErrTransactionNotFound) {
		t.Fatalf("expected ErrTransactionNotFound, got %v", err)
	}
}

func TestTransactionUseCase_ListTransactions(t *testing.T) {
	txnRepo := mocks.NewMockTransactionRepository()
	seedTransactions(t, txnRepo, "w1", "a", "b")
	seedTransactions(t, txnRepo, "w2", "c")

	uc := usecase.NewTransactionUseCase(txnRepo, mocks.NewMockWalletRepository())

	tests := []struct {
		name      string
		input     usecase.ListTransactionsInput
		wantCount int64
	}{
		{
			name:      "all transactions",
			input:     usecase.ListTransactionsInput{},
			wantCount: 3,
		},
		{
			name:      "filtered by wallet",
			input:     usecase.ListTransactionsInput{WalletID: "w1"},
			wantCount: 2,
		},
		{
			name:      "filtered by txid",
			input:     usecase.ListTransactionsInput{TxID: "c"},
			wantCount: 1,
		},
		{
			name:      "unknown wallet filter yields empty page",
			input:     usecase.ListTransactionsInput{WalletID: "nope"},
			wantCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transactions, total, err := uc.ListTransactions(context.Background(), tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if total != tt.wantCount {
				t.Errorf("expected total %d, got %d", tt.wantCount, total)
			}
			if int64(len(transactions)) != tt.wantCount {
				t.Errorf("expected %d transactions, got %d", tt.wantCount, len(transactions))
			}
		})
	}
}

func TestTransactionUseCase_ListTransactions_ClampsPagination(t *testing.T) {
	var gotFilter domain.TransactionFilter
	txnRepo := mocks.NewMockTransactionRepository()
	txnRepo.ListFunc = func(ctx context.Context, filter domain.TransactionFilter) ([]*domain.Transaction, error) {
		gotFilter = filter
		return nil, nil
	}
	txnRepo.CountFunc = func(ctx context.Context, filter domain.TransactionFilter) (int64, error) {
		return 0, nil
	}

	uc := usecase.NewTransactionUseCase(txnRepo, mocks.NewMockWalletRepository())

	if _, _, err := uc.ListTransactions(context.Background(), usecase.ListTransactionsInput{Limit: 1000}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotFilter.Limit != 100 {
		t.Errorf("expected limit clamped to 100, got %d", gotFilter.Limit)
	}
}

func TestTransactionUseCase_ListWalletTransactions(t *testing.T) {
	walletRepo := mocks.NewMockWalletRepository()
	txnRepo := mocks.NewMockTransactionRepository()
	seedWallet(t, walletRepo, txnRepo, "w1", "0")
	seedTransactions(t, txnRepo, "w1", "a", "b")

	uc := usecase.NewTransactionUseCase(txnRepo, walletRepo)

	transactions, total, err := uc.ListWalletTransactions(context.Background(), "w1", usecase.ListTransactionsInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 2 || len(transactions) != 2 {
		t.Errorf("expected 2 transactions, got total %d, len %d", total, len(transactions))
	}
}

func TestTransactionUseCase_ListWalletTransactions_WalletNotFound(t *testing.T) {
	uc := usecase.NewTransactionUseCase(mocks.NewMockTransactionRepository(), mocks.NewMockWalletRepository())

	_, _, err := uc.ListWalletTransactions(context.Background(), "missing", usecase.ListTransactionsInput{})
	if !errors.Is(err, domain.ErrWalletNotFound) {
		t.Fatalf("expected ErrWalletNotFound, got %v", err)
	}
}
