package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/walletd/internal/domain"
	"github.com/iho/walletd/internal/infrastructure/postgres/generated"
)

// LedgerRepository implements usecase.LedgerRepository.
type LedgerRepository struct {
	queries *generated.Queries
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepository {
	return newLedgerRepositoryWithDB(pool)
}

func newLedgerRepositoryWithDB(db generated.DBTX) *LedgerRepository {
	return &LedgerRepository{queries: generated.New(db)}
}

// BalanceSummaries returns every wallet's stored balance next to the sum
// of its transactions.
func (r *LedgerRepository) BalanceSummaries(ctx context.Context) ([]*domain.BalanceSummary, error) {
	rows, err := r.queries.GetWalletBalanceSummaries(ctx)
	if err != nil {
		return nil, classifyError(err)
	}

	summaries := make([]*domain.BalanceSummary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, &domain.BalanceSummary{
			WalletID:       row.ID,
			Label:          row.Label,
			Balance:        numericToDecimal(row.Balance),
			TransactionSum: numericToDecimal(row.TransactionSum),
		})
	}

	return summaries, nil
}
