package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrInvalidLabel     = errors.New("invalid wallet label")
	ErrInvalidTxID      = errors.New("invalid txid")
	ErrAmountTooLarge   = errors.New("amount exceeds maximum allowed")
	ErrAmountTooPrecise = errors.New("amount has too many decimal places")
)

// Validation constants
const (
	MaxLabelLength      = 255
	MaxTxIDLength       = 255
	MaxFractionalDigits = 18
	MaxIntegerDigits    = 10
)

// ValidateLabel validates wallet label
func ValidateLabel(label string) error {
	label = strings.TrimSpace(label)

	if label == "" {
		return fmt.Errorf("%w: label cannot be empty", ErrInvalidLabel)
	}

	if len(label) > MaxLabelLength {
		return fmt.Errorf("%w: label exceeds %d characters", ErrInvalidLabel, MaxLabelLength)
	}

	return nil
}

// ValidateTxID validates a caller-supplied txid. Empty txid is allowed,
// one is generated at posting time.
func ValidateTxID(txid string) error {
	if txid != strings.TrimSpace(txid) {
		return fmt.Errorf("%w: txid cannot have surrounding whitespace", ErrInvalidTxID)
	}

	if len(txid) > MaxTxIDLength {
		return fmt.Errorf("%w: txid exceeds %d characters", ErrInvalidTxID, MaxTxIDLength)
	}

	return nil
}

// ValidateAmount checks that amount fits numeric(28,18) storage: at most
// 18 decimal places and an absolute value below 1e10.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.Exponent() < -MaxFractionalDigits {
		return fmt.Errorf("%w: at most %d decimal places", ErrAmountTooPrecise, MaxFractionalDigits)
	}

	if amount.Abs().GreaterThanOrEqual(decimal.New(1, MaxIntegerDigits)) {
		return fmt.Errorf("%w: absolute value must be below 1e%d", ErrAmountTooLarge, MaxIntegerDigits)
	}

	return nil
}

// ValidatePagination validates and limits pagination parameters
func ValidatePagination(limit, offset int) (int, int) {
	const MaxPageSize = 100
	const DefaultPageSize = 20

	if limit <= 0 {
		limit = DefaultPageSize
	}

	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
