package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestTransaction_Validate(t *testing.T) {
	tests := []struct {
		name    string
		txn     *Transaction
		wantErr error
	}{
		{
			name:    "valid debit",
			txn:     &Transaction{WalletID: "w1", TxID: "order-1", Amount: decimal.NewFromInt(-5)},
			wantErr: nil,
		},
		{
			name:    "valid without txid",
			txn:     &Transaction{WalletID: "w1", Amount: decimal.RequireFromString("10.25")},
			wantErr: nil,
		},
		{
			name:    "missing wallet id",
			txn:     &Transaction{Amount: decimal.NewFromInt(5)},
			wantErr: ErrWalletIDRequired,
		},
		{
			name:    "txid too long",
			txn:     &Transaction{WalletID: "w1", TxID: strings.Repeat("x", MaxTxIDLength+1), Amount: decimal.NewFromInt(5)},
			wantErr: ErrInvalidTxID,
		},
		{
			name:    "too many decimal places",
			txn:     &Transaction{WalletID: "w1", Amount: decimal.RequireFromString("0.0000000000000000001")},
			wantErr: ErrAmountTooPrecise,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.txn.Validate()

			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}

			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}
