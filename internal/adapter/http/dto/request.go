package dto

import (
	"github.com/shopspring/decimal"

	"github.com/iho/walletd/internal/usecase"
)

// CreateWalletRequest represents a request to create a wallet.
type CreateWalletRequest struct {
	Label string `json:"label"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateWalletRequest) ToUseCaseInput() usecase.CreateWalletInput {
	return usecase.CreateWalletInput{
		Label: r.Label,
	}
}

// UpdateWalletRequest represents a request to relabel a wallet.
type UpdateWalletRequest struct {
	Label string `json:"label"`
}

// PostTransactionRequest represents a request to post a transaction.
// The txid is optional, one is generated when absent.
type PostTransactionRequest struct {
	TxID   string          `json:"txid,omitempty"`
	Amount decimal.Decimal `json:"amount"`
}

// ToUseCaseInput converts to use case input for the given wallet.
func (r *PostTransactionRequest) ToUseCaseInput(walletID string) usecase.PostTransactionInput {
	return usecase.PostTransactionInput{
		WalletID: walletID,
		TxID:     r.TxID,
		Amount:   r.Amount,
	}
}
