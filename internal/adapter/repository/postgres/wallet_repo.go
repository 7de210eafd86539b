package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/walletd/internal/domain"
	"github.com/iho/walletd/internal/infrastructure/postgres/generated"
	"github.com/iho/walletd/internal/usecase"
)

// WalletRepository implements usecase.WalletRepository.
type WalletRepository struct {
	db      generated.DBTX
	queries *generated.Queries
}

// NewWalletRepository creates a new WalletRepository.
func NewWalletRepository(pool *pgxpool.Pool) *WalletRepository {
	return newWalletRepositoryWithDB(pool)
}

func newWalletRepositoryWithDB(db generated.DBTX) *WalletRepository {
	return &WalletRepository{
		db:      db,
		queries: generated.New(db),
	}
}

// CreateTx creates a new wallet within a transaction.
func (r *WalletRepository) CreateTx(ctx context.Context, tx usecase.Tx, wallet *domain.Wallet) error {
	queries := generated.New(pgxTxFrom(tx))

	_, err := queries.CreateWallet(ctx, generated.CreateWalletParams{
		ID:        wallet.ID,
		Label:     wallet.Label,
		Balance:   decimalToNumeric(wallet.Balance),
		CreatedAt: timeToPgTimestamptz(wallet.CreatedAt),
		UpdatedAt: timeToPgTimestamptz(wallet.UpdatedAt),
	})

	return classifyError(err)
}

// GetByID retrieves a wallet by ID.
func (r *WalletRepository) GetByID(ctx context.Context, id string) (*domain.Wallet, error) {
	row, err := r.queries.GetWalletByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrWalletNotFound
		}

		return nil, classifyError(err)
	}

	return rowToWallet(row), nil
}

// GetByIDForUpdate retrieves a wallet by ID with a FOR UPDATE lock.
func (r *WalletRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Tx, id string) (*domain.Wallet, error) {
	queries := generated.New(pgxTxFrom(tx))

	row, err := queries.GetWalletByIDForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrWalletNotFound
		}

		return nil, classifyError(err)
	}

	return rowToWallet(row), nil
}

// UpdateBalance updates the stored balance of a wallet.
func (r *WalletRepository) UpdateBalance(ctx context.Context, tx usecase.Tx, id string, balance decimal.Decimal, updatedAt time.Time) error {
	queries := generated.New(pgxTxFrom(tx))

	err := queries.UpdateWalletBalance(ctx, generated.UpdateWalletBalanceParams{
		ID:        id,
		Balance:   decimalToNumeric(balance),
		UpdatedAt: timeToPgTimestamptz(updatedAt),
	})

	return classifyError(err)
}

// UpdateLabel updates the label of a wallet.
func (r *WalletRepository) UpdateLabel(ctx context.Context, id, label string, updatedAt time.Time) (*domain.Wallet, error) {
	row, err := r.queries.UpdateWalletLabel(ctx, generated.UpdateWalletLabelParams{
		ID:        id,
		Label:     label,
		UpdatedAt: timeToPgTimestamptz(updatedAt),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrWalletNotFound
		}

		return nil, classifyError(err)
	}

	return rowToWallet(row), nil
}

// DeleteTx deletes a wallet within a transaction. The schema cascades the
// delete to the wallet's transactions.
func (r *WalletRepository) DeleteTx(ctx context.Context, tx usecase.Tx, id string) error {
	queries := generated.New(pgxTxFrom(tx))

	affected, err := queries.DeleteWallet(ctx, id)
	if err != nil {
		return classifyError(err)
	}
	if affected == 0 {
		return domain.ErrWalletNotFound
	}

	return nil
}

// List lists wallets matching the filter.
func (r *WalletRepository) List(ctx context.Context, filter domain.WalletFilter) ([]*domain.Wallet, error) {
	where, args := walletFilterClause(filter)
	query := "SELECT id, label, balance, created_at, updated_at FROM wallets" + where +
		orderClause(walletOrderColumns, filter.OrderBy, filter.Sort)
	args = append(args, filter.Limit, filter.Offset)
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, classifyError(err)
	}
	defer rows.Close()

	wallets := make([]*domain.Wallet, 0)
	for rows.Next() {
		var row generated.Wallet
		if err := rows.Scan(&row.ID, &row.Label, &row.Balance, &row.CreatedAt, &row.UpdatedAt); err != nil {
			return nil, err
		}
		wallets = append(wallets, rowToWallet(row))
	}

	return wallets, rows.Err()
}

// Count counts wallets matching the filter.
func (r *WalletRepository) Count(ctx context.Context, filter domain.WalletFilter) (int64, error) {
	where, args := walletFilterClause(filter)

	var count int64
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM wallets"+where, args...).Scan(&count)
	if err != nil {
		return 0, classifyError(err)
	}

	return count, nil
}

// walletOrderColumns whitelists sortable wallet columns. Anything else
// falls back to created_at.
var walletOrderColumns = map[string]string{
	"label":      "label",
	"balance":    "balance",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

func walletFilterClause(filter domain.WalletFilter) (string, []any) {
	var conditions []string
	var args []any

	if filter.Label != "" {
		args = append(args, filter.Label)
		conditions = append(conditions, fmt.Sprintf("label = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		conditions = append(conditions, fmt.Sprintf("label ILIKE $%d", len(args)))
	}

	if len(conditions) == 0 {
		return "", nil
	}

	return " WHERE " + strings.Join(conditions, " AND "), args
}

// orderClause builds an ORDER BY from a column whitelist. Unknown columns
// and directions fall back to created_at DESC.
func orderClause(columns map[string]string, orderBy, sort string) string {
	column, ok := columns[orderBy]
	if !ok {
		column = "created_at"
	}

	direction := "DESC"
	if strings.EqualFold(sort, "asc") {
		direction = "ASC"
	}

	return fmt.Sprintf(" ORDER BY %s %s", column, direction)
}

func rowToWallet(row generated.Wallet) *domain.Wallet {
	return &domain.Wallet{
		ID:        row.ID,
		Label:     row.Label,
		Balance:   numericToDecimal(row.Balance),
		CreatedAt: row.CreatedAt.Time,
		UpdatedAt: row.UpdatedAt.Time,
	}
}

// Type conversion helpers.
func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}

func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}
