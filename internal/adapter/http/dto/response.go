package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/walletd/internal/domain"
	"github.com/iho/walletd/internal/usecase"
)

// WalletResponse represents a wallet in API responses.
type WalletResponse struct {
	ID        string          `json:"id"`
	Label     string          `json:"label"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// WalletFromDomain converts domain wallet to response.
func WalletFromDomain(w *domain.Wallet) *WalletResponse {
	return &WalletResponse{
		ID:        w.ID,
		Label:     w.Label,
		Balance:   w.Balance,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}

// WalletsFromDomain converts domain wallets to responses.
func WalletsFromDomain(wallets []*domain.Wallet) []*WalletResponse {
	result := make([]*WalletResponse, len(wallets))
	for i, w := range wallets {
		result[i] = WalletFromDomain(w)
	}
	return result
}

// WalletDetailResponse represents a wallet with recent activity.
type WalletDetailResponse struct {
	Wallet             *WalletResponse        `json:"wallet"`
	TransactionCount   int64                  `json:"transaction_count"`
	RecentTransactions []*TransactionResponse `json:"recent_transactions"`
}

// WalletDetailFromUseCase converts use case output to response.
func WalletDetailFromUseCase(d *usecase.WalletDetail) *WalletDetailResponse {
	return &WalletDetailResponse{
		Wallet:             WalletFromDomain(d.Wallet),
		TransactionCount:   d.TransactionCount,
		RecentTransactions: TransactionsFromDomain(d.RecentTransactions),
	}
}

// ListWalletsResponse represents a page of wallets.
type ListWalletsResponse struct {
	Wallets []*WalletResponse `json:"wallets"`
	Total   int64             `json:"total"`
}

// TransactionResponse represents a transaction in API responses.
type TransactionResponse struct {
	ID        string          `json:"id"`
	WalletID  string          `json:"wallet_id"`
	TxID      string          `json:"txid"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"created_at"`
}

// TransactionFromDomain converts domain transaction to response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:        t.ID,
		WalletID:  t.WalletID,
		TxID:      t.TxID,
		Amount:    t.Amount,
		CreatedAt: t.CreatedAt,
	}
}

// TransactionsFromDomain converts domain transactions to responses.
func TransactionsFromDomain(transactions []*domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(transactions))
	for i, t := range transactions {
		result[i] = TransactionFromDomain(t)
	}
	return result
}

// ListTransactionsResponse represents a page of transactions.
type ListTransactionsResponse struct {
	Transactions []*TransactionResponse `json:"transactions"`
	Total        int64                  `json:"total"`
}

// PostTransactionResponse represents a committed posting and the
// resulting wallet balance.
type PostTransactionResponse struct {
	Transaction *TransactionResponse `json:"transaction"`
	Balance     decimal.Decimal      `json:"balance"`
}

// BalanceResponse represents a wallet balance.
type BalanceResponse struct {
	WalletID string          `json:"wallet_id"`
	Balance  decimal.Decimal `json:"balance"`
}

// ReconciliationResponse represents a reconciliation sweep.
type ReconciliationResponse struct {
	TotalWallets      int                    `json:"total_wallets"`
	ReconciledWallets int                    `json:"reconciled_wallets"`
	Discrepancies     []*DiscrepancyResponse `json:"discrepancies"`
	CheckedAt         time.Time              `json:"checked_at"`
}

// DiscrepancyResponse represents a wallet whose stored balance drifted
// from the sum of its transactions.
type DiscrepancyResponse struct {
	WalletID        string          `json:"wallet_id"`
	Label           string          `json:"label"`
	RecordedBalance decimal.Decimal `json:"recorded_balance"`
	ComputedBalance decimal.Decimal `json:"computed_balance"`
	Difference      decimal.Decimal `json:"difference"`
}

// ReconciliationFromUseCase converts a reconciliation report to response.
func ReconciliationFromUseCase(report *usecase.ReconciliationReport) *ReconciliationResponse {
	discrepancies := make([]*DiscrepancyResponse, len(report.Discrepancies))
	for i, d := range report.Discrepancies {
		discrepancies[i] = &DiscrepancyResponse{
			WalletID:        d.WalletID,
			Label:           d.Label,
			RecordedBalance: d.RecordedBalance,
			ComputedBalance: d.ComputedBalance,
			Difference:      d.Difference,
		}
	}
	return &ReconciliationResponse{
		TotalWallets:      report.TotalWallets,
		ReconciledWallets: report.ReconciledWallets,
		Discrepancies:     discrepancies,
		CheckedAt:         report.CheckedAt,
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
