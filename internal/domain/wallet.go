package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Wallet represents a funds container whose balance is derived from its
// transaction history and must never go negative.
type Wallet struct {
	ID        string
	Label     string
	Balance   decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidatePosting checks if posting amount would keep the balance non-negative.
func (w *Wallet) ValidatePosting(amount decimal.Decimal) error {
	if w.Balance.Add(amount).IsNegative() {
		return ErrInsufficientBalance
	}
	return nil
}

// ProspectiveBalance returns the balance after posting amount.
func (w *Wallet) ProspectiveBalance(amount decimal.Decimal) decimal.Decimal {
	return w.Balance.Add(amount)
}

// WalletFilter filters and orders wallet listings.
type WalletFilter struct {
	Label   string
	Search  string
	OrderBy string
	Sort    string
	Limit   int
	Offset  int
}

// BalanceSummary pairs a wallet's stored balance with the sum of its
// transactions, used for reconciliation.
type BalanceSummary struct {
	WalletID       string
	Label          string
	Balance        decimal.Decimal
	TransactionSum decimal.Decimal
}
