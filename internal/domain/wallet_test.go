package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestWallet_ValidatePosting(t *testing.T) {
	tests := []struct {
		name        string
		balance     decimal.Decimal
		amount      decimal.Decimal
		expectError bool
	}{
		{
			name:        "credit on empty wallet",
			balance:     decimal.Zero,
			amount:      decimal.NewFromInt(100),
			expectError: false,
		},
		{
			name:        "debit below balance",
			balance:     decimal.NewFromInt(100),
			amount:      decimal.NewFromInt(-50),
			expectError: false,
		},
		{
			name:        "debit to exactly zero",
			balance:     decimal.NewFromInt(50),
			amount:      decimal.NewFromInt(-50),
			expectError: false,
		},
		{
			name:        "debit one cent past balance",
			balance:     decimal.NewFromInt(50),
			amount:      decimal.RequireFromString("-50.01"),
			expectError: true,
		},
		{
			name:        "debit on empty wallet",
			balance:     decimal.Zero,
			amount:      decimal.RequireFromString("-0.01"),
			expectError: true,
		},
		{
			name:        "zero amount on empty wallet",
			balance:     decimal.Zero,
			amount:      decimal.Zero,
			expectError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := &Wallet{Balance: tt.balance}

			err := w.ValidatePosting(tt.amount)

			if tt.expectError && err == nil {
				t.Error("expected error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestWallet_ProspectiveBalance(t *testing.T) {
	w := &Wallet{Balance: decimal.RequireFromString("100.50")}
	got := w.ProspectiveBalance(decimal.NewFromInt(-30))

	expected := decimal.RequireFromString("70.50")
	if !got.Equal(expected) {
		t.Errorf("expected balance %s, got %s", expected, got)
	}
}
