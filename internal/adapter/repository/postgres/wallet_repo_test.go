package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/walletd/internal/domain"
	"github.com/iho/walletd/internal/usecase"
)

func walletColumns() []string {
	return []string{"id", "label", "balance", "created_at", "updated_at"}
}

func numericVal(t *testing.T, s string) pgtype.Numeric {
	t.Helper()
	var n pgtype.Numeric
	if err := n.Scan(s); err != nil {
		t.Fatalf("scanning numeric %q: %v", s, err)
	}
	return n
}

func tsVal(ts time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: ts, Valid: true}
}

func walletRow(t *testing.T, id, label, balance string) *pgxmock.Rows {
	t.Helper()
	now := time.Now().UTC()
	return pgxmock.NewRows(walletColumns()).AddRow(
		id, label, numericVal(t, balance), tsVal(now), tsVal(now),
	)
}

func beginTx(t *testing.T, mock pgxmock.PgxPoolIface) usecase.Tx {
	t.Helper()
	mock.ExpectBegin()
	tx, err := newTxManagerWithPool(mock).Begin(context.Background())
	require.NoError(t, err)
	return tx
}

func TestWalletRepositoryGetByID(t *testing.T) {
	mock := newMockPool(t)
	repo := newWalletRepositoryWithDB(mock)

	mock.ExpectQuery("SELECT .+ FROM wallets WHERE id").
		WithArgs("w1").
		WillReturnRows(walletRow(t, "w1", "savings", "100.5"))

	wallet, err := repo.GetByID(context.Background(), "w1")
	require.NoError(t, err)
	assert.Equal(t, "w1", wallet.ID)
	assert.Equal(t, "savings", wallet.Label)
	assert.True(t, wallet.Balance.Equal(decimal.RequireFromString("100.5")))
	assertExpectations(t, mock)
}

func TestWalletRepositoryGetByIDNotFound(t *testing.T) {
	mock := newMockPool(t)
	repo := newWalletRepositoryWithDB(mock)

	mock.ExpectQuery("SELECT .+ FROM wallets WHERE id").
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrWalletNotFound)
}

func TestWalletRepositoryGetByIDForUpdate(t *testing.T) {
	mock := newMockPool(t)
	repo := newWalletRepositoryWithDB(mock)

	tx := beginTx(t, mock)
	mock.ExpectQuery("SELECT .+ FROM wallets WHERE id .+ FOR UPDATE").
		WithArgs("w1").
		WillReturnRows(walletRow(t, "w1", "savings", "50"))

	wallet, err := repo.GetByIDForUpdate(context.Background(), tx, "w1")
	require.NoError(t, err)
	assert.True(t, wallet.Balance.Equal(decimal.NewFromInt(50)))
	assertExpectations(t, mock)
}

func TestWalletRepositoryCreateTx(t *testing.T) {
	mock := newMockPool(t)
	repo := newWalletRepositoryWithDB(mock)

	tx := beginTx(t, mock)
	mock.ExpectQuery("INSERT INTO wallets").
		WithArgs("w1", "savings", pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(walletRow(t, "w1", "savings", "0"))

	now := time.Now().UTC()
	err := repo.CreateTx(context.Background(), tx, &domain.Wallet{
		ID:        "w1",
		Label:     "savings",
		Balance:   decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	})
	require.NoError(t, err)
	assertExpectations(t, mock)
}

func TestWalletRepositoryUpdateBalance(t *testing.T) {
	mock := newMockPool(t)
	repo := newWalletRepositoryWithDB(mock)

	tx := beginTx(t, mock)
	mock.ExpectExec("UPDATE wallets SET balance").
		WithArgs("w1", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := repo.UpdateBalance(context.Background(), tx, "w1", decimal.RequireFromString("121.25"), time.Now().UTC())
	require.NoError(t, err)
	assertExpectations(t, mock)
}

func TestWalletRepositoryDeleteTxNotFound(t *testing.T) {
	mock := newMockPool(t)
	repo := newWalletRepositoryWithDB(mock)

	tx := beginTx(t, mock)
	mock.ExpectExec("DELETE FROM wallets").
		WithArgs("missing").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.DeleteTx(context.Background(), tx, "missing")
	assert.ErrorIs(t, err, domain.ErrWalletNotFound)
}

func TestWalletRepositoryList(t *testing.T) {
	mock := newMockPool(t)
	repo := newWalletRepositoryWithDB(mock)

	rows := pgxmock.NewRows(walletColumns()).
		AddRow("w1", "savings", numericVal(t, "10"), tsVal(time.Now()), tsVal(time.Now())).
		AddRow("w2", "checking", numericVal(t, "20"), tsVal(time.Now()), tsVal(time.Now()))

	mock.ExpectQuery("SELECT .+ FROM wallets ORDER BY created_at DESC LIMIT").
		WithArgs(20, 0).
		WillReturnRows(rows)

	wallets, err := repo.List(context.Background(), domain.WalletFilter{Limit: 20})
	require.NoError(t, err)
	require.Len(t, wallets, 2)
	assert.Equal(t, "w1", wallets[0].ID)
	assertExpectations(t, mock)
}

func TestWalletRepositoryListOrderWhitelist(t *testing.T) {
	mock := newMockPool(t)
	repo := newWalletRepositoryWithDB(mock)

	// An unknown order column falls back to created_at.
	mock.ExpectQuery("SELECT .+ FROM wallets ORDER BY created_at DESC LIMIT").
		WithArgs(20, 0).
		WillReturnRows(pgxmock.NewRows(walletColumns()))

	_, err := repo.List(context.Background(), domain.WalletFilter{OrderBy: "balance; DROP TABLE wallets", Limit: 20})
	require.NoError(t, err)
	assertExpectations(t, mock)
}

func TestWalletRepositoryListWithFilter(t *testing.T) {
	mock := newMockPool(t)
	repo := newWalletRepositoryWithDB(mock)

	mock.ExpectQuery("SELECT .+ FROM wallets WHERE label = .+ ORDER BY label ASC LIMIT").
		WithArgs("savings", 10, 0).
		WillReturnRows(walletRow(t, "w1", "savings", "10"))

	wallets, err := repo.List(context.Background(), domain.WalletFilter{
		Label:   "savings",
		OrderBy: "label",
		Sort:    "asc",
		Limit:   10,
	})
	require.NoError(t, err)
	require.Len(t, wallets, 1)
	assertExpectations(t, mock)
}

func TestWalletRepositoryCount(t *testing.T) {
	mock := newMockPool(t)
	repo := newWalletRepositoryWithDB(mock)

	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(7)))

	count, err := repo.Count(context.Background(), domain.WalletFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(7), count)
	assertExpectations(t, mock)
}
