package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/walletd/internal/domain"
	"github.com/iho/walletd/internal/infrastructure/postgres/generated"
	"github.com/iho/walletd/internal/usecase"
)

// TransactionRepository implements usecase.TransactionRepository.
type TransactionRepository struct {
	db      generated.DBTX
	queries *generated.Queries
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return newTransactionRepositoryWithDB(pool)
}

func newTransactionRepositoryWithDB(db generated.DBTX) *TransactionRepository {
	return &TransactionRepository{
		db:      db,
		queries: generated.New(db),
	}
}

// Create creates a new transaction within a database transaction. A unique
// violation on the txid index surfaces as ErrDuplicateTxID.
func (r *TransactionRepository) Create(ctx context.Context, tx usecase.Tx, transaction *domain.Transaction) error {
	queries := generated.New(pgxTxFrom(tx))

	_, err := queries.CreateTransaction(ctx, generated.CreateTransactionParams{
		ID:        transaction.ID,
		WalletID:  transaction.WalletID,
		Txid:      transaction.TxID,
		Amount:    decimalToNumeric(transaction.Amount),
		CreatedAt: timeToPgTimestamptz(transaction.CreatedAt),
	})

	return classifyError(err)
}

// GetByID retrieves a transaction by ID.
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	row, err := r.queries.GetTransactionByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}

		return nil, classifyError(err)
	}

	return rowToTransaction(row), nil
}

// GetByTxID retrieves a transaction by its external txid.
func (r *TransactionRepository) GetByTxID(ctx context.Context, txid string) (*domain.Transaction, error) {
	row, err := r.queries.GetTransactionByTxID(ctx, txid)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}

		return nil, classifyError(err)
	}

	return rowToTransaction(row), nil
}

// List lists transactions matching the filter.
func (r *TransactionRepository) List(ctx context.Context, filter domain.TransactionFilter) ([]*domain.Transaction, error) {
	where, args := transactionFilterClause(filter)
	query := "SELECT id, wallet_id, txid, amount, created_at FROM transactions" + where +
		orderClause(transactionOrderColumns, filter.OrderBy, filter.Sort)
	args = append(args, filter.Limit, filter.Offset)
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, classifyError(err)
	}
	defer rows.Close()

	transactions := make([]*domain.Transaction, 0)
	for rows.Next() {
		var row generated.Transaction
		if err := rows.Scan(&row.ID, &row.WalletID, &row.Txid, &row.Amount, &row.CreatedAt); err != nil {
			return nil, err
		}
		transactions = append(transactions, rowToTransaction(row))
	}

	return transactions, rows.Err()
}

// Count counts transactions matching the filter.
func (r *TransactionRepository) Count(ctx context.Context, filter domain.TransactionFilter) (int64, error) {
	where, args := transactionFilterClause(filter)

	var count int64
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM transactions"+where, args...).Scan(&count)
	if err != nil {
		return 0, classifyError(err)
	}

	return count, nil
}

// SumByWallet sums all transaction amounts for a wallet.
func (r *TransactionRepository) SumByWallet(ctx context.Context, walletID string) (decimal.Decimal, error) {
	sum, err := r.queries.SumTransactionsByWallet(ctx, walletID)
	if err != nil {
		return decimal.Zero, classifyError(err)
	}

	return numericToDecimal(sum), nil
}

// SumByWalletTx sums all transaction amounts for a wallet within a database
// transaction. Inside the posting lock this sees the just inserted row.
func (r *TransactionRepository) SumByWalletTx(ctx context.Context, tx usecase.Tx, walletID string) (decimal.Decimal, error) {
	queries := generated.New(pgxTxFrom(tx))

	sum, err := queries.SumTransactionsByWallet(ctx, walletID)
	if err != nil {
		return decimal.Zero, classifyError(err)
	}

	return numericToDecimal(sum), nil
}

var transactionOrderColumns = map[string]string{
	"amount":     "amount",
	"created_at": "created_at",
}

func transactionFilterClause(filter domain.TransactionFilter) (string, []any) {
	var conditions []string
	var args []any

	if filter.WalletID != "" {
		args = append(args, filter.WalletID)
		conditions = append(conditions, fmt.Sprintf("wallet_id = $%d", len(args)))
	}
	if filter.TxID != "" {
		args = append(args, filter.TxID)
		conditions = append(conditions, fmt.Sprintf("txid = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		conditions = append(conditions, fmt.Sprintf("txid ILIKE $%d", len(args)))
	}

	if len(conditions) == 0 {
		return "", nil
	}

	return " WHERE " + strings.Join(conditions, " AND "), args
}

func rowToTransaction(row generated.Transaction) *domain.Transaction {
	return &domain.Transaction{
		ID:        row.ID,
		WalletID:  row.WalletID,
		TxID:      row.Txid,
		Amount:    numericToDecimal(row.Amount),
		CreatedAt: row.CreatedAt.Time,
	}
}
