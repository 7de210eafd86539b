package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents a single signed movement of funds on a wallet.
// Committed transactions are immutable.
type Transaction struct {
	ID        string
	WalletID  string
	TxID      string
	Amount    decimal.Decimal
	CreatedAt time.Time
}

// Validate validates a transaction before posting.
func (t *Transaction) Validate() error {
	if t.WalletID == "" {
		return ErrWalletIDRequired
	}

	if err := ValidateTxID(t.TxID); err != nil {
		return err
	}

	return ValidateAmount(t.Amount)
}

// TransactionFilter filters and orders transaction listings.
type TransactionFilter struct {
	WalletID string
	TxID     string
	Search   string
	OrderBy  string
	Sort     string
	Limit    int
	Offset   int
}
