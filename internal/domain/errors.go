package domain

import "errors"

var (
	// Wallet errors
	ErrWalletNotFound   = errors.New("wallet not found")
	ErrWalletIDRequired = errors.New("wallet id is required")

	// Transaction errors
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrInsufficientBalance = errors.New("transaction would make wallet balance negative")
	ErrDuplicateTxID       = errors.New("txid already used by another transaction")

	// Storage errors
	ErrStorageUnavailable = errors.New("storage temporarily unavailable")
	ErrBalanceMismatch    = errors.New("wallet balance does not match sum of transactions")
)
