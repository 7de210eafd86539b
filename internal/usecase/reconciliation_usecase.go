package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ReconciliationUseCase verifies stored wallet balances against the sum
// of their transactions. It reports drift but never repairs it; repair is
// LedgerUseCase.RecomputeBalance.
type ReconciliationUseCase struct {
	ledgerRepo LedgerRepository
}

// NewReconciliationUseCase creates a new reconciliation use case
func NewReconciliationUseCase(ledgerRepo LedgerRepository) *ReconciliationUseCase {
	return &ReconciliationUseCase{
		ledgerRepo: ledgerRepo,
	}
}

// ReconciliationResult represents the result of a single wallet check
type ReconciliationResult struct {
	WalletID        string
	Label           string
	RecordedBalance decimal.Decimal
	ComputedBalance decimal.Decimal
	Difference      decimal.Decimal
	IsReconciled    bool
}

// ReconciliationReport represents a full reconciliation sweep
type ReconciliationReport struct {
	TotalWallets      int
	ReconciledWallets int
	Discrepancies     []*ReconciliationResult
	CheckedAt         time.Time
}

// GenerateReport sweeps all wallets and reports any balance drift
func (uc *ReconciliationUseCase) GenerateReport(ctx context.Context) (*ReconciliationReport, error) {
	summaries, err := uc.ledgerRepo.BalanceSummaries(ctx)
	if err != nil {
		return nil, err
	}

	report := &ReconciliationReport{
		TotalWallets:  len(summaries),
		Discrepancies: make([]*ReconciliationResult, 0),
		CheckedAt:     time.Now().UTC(),
	}

	for _, summary := range summaries {
		difference := summary.Balance.Sub(summary.TransactionSum)
		if difference.IsZero() {
			report.ReconciledWallets++
			continue
		}

		report.Discrepancies = append(report.Discrepancies, &ReconciliationResult{
			WalletID:        summary.WalletID,
			Label:           summary.Label,
			RecordedBalance: summary.Balance,
			ComputedBalance: summary.TransactionSum,
			Difference:      difference,
			IsReconciled:    false,
		})
	}

	return report, nil
}
