package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/walletd/internal/domain"
	"github.com/iho/walletd/internal/infrastructure/metrics"
)

// WalletUseCase handles wallet lifecycle and read operations.
type WalletUseCase struct {
	txManager       TxManager
	walletRepo      WalletRepository
	transactionRepo TransactionRepository
	outboxRepo      OutboxRepository
	cache           WalletCache
	idGen           IDGenerator
	metrics         *metrics.Metrics
}

// NewWalletUseCase creates a new WalletUseCase.
func NewWalletUseCase(
	txManager TxManager,
	walletRepo WalletRepository,
	transactionRepo TransactionRepository,
	outboxRepo OutboxRepository,
	cache WalletCache,
	idGen IDGenerator,
	metrics *metrics.Metrics,
) *WalletUseCase {
	return &WalletUseCase{
		txManager:       txManager,
		walletRepo:      walletRepo,
		transactionRepo: transactionRepo,
		outboxRepo:      outboxRepo,
		cache:           cache,
		idGen:           idGen,
		metrics:         metrics,
	}
}

// CreateWalletInput represents input for creating a wallet.
type CreateWalletInput struct {
	Label string
}

// CreateWallet creates a new wallet with a zero balance.
func (uc *WalletUseCase) CreateWallet(ctx context.Context, input CreateWalletInput) (*domain.Wallet, error) {
	if err := domain.ValidateLabel(input.Label); err != nil {
		return nil, err
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	now := time.Now().UTC()
	wallet := &domain.Wallet{
		ID:        uc.idGen.Generate(),
		Label:     strings.TrimSpace(input.Label),
		Balance:   decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.walletRepo.CreateTx(txCtx, tx, wallet); err != nil {
		return nil, err
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   wallet.ID,
		AggregateType: domain.AggregateTypeWallet,
		EventType:     domain.EventTypeWalletCreated,
		Payload: map[string]any{
			"wallet_id": wallet.ID,
			"label":     wallet.Label,
		},
		CreatedAt: now,
		Published: false,
	}
	if err := uc.outboxRepo.Create(txCtx, tx, event); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.WalletsCreated.Inc()
	}

	return wallet, nil
}

// GetWallet retrieves a wallet by ID, serving from cache when possible.
func (uc *WalletUseCase) GetWallet(ctx context.Context, id string) (*domain.Wallet, error) {
	if uc.cache != nil {
		if wallet, err := uc.cache.Get(ctx, id); err == nil && wallet != nil {
			return wallet, nil
		}
	}

	wallet, err := uc.walletRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		_ = uc.cache.Set(ctx, wallet, WalletCacheTTL)
	}

	return wallet, nil
}

// WalletDetail is a wallet together with its transaction count and the
// most recent transactions.
type WalletDetail struct {
	Wallet             *domain.Wallet
	TransactionCount   int64
	RecentTransactions []*domain.Transaction
}

// GetWalletDetail retrieves a wallet with its recent activity.
func (uc *WalletUseCase) GetWalletDetail(ctx context.Context, id string) (*WalletDetail, error) {
	wallet, err := uc.GetWallet(ctx, id)
	if err != nil {
		return nil, err
	}

	filter := domain.TransactionFilter{WalletID: id}

	count, err := uc.transactionRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	filter.Limit = RecentTransactionsLimit
	recent, err := uc.transactionRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &WalletDetail{
		Wallet:             wallet,
		TransactionCount:   count,
		RecentTransactions: recent,
	}, nil
}

// ListWalletsInput represents input for listing wallets.
type ListWalletsInput struct {
	Label   string
	Search  string
	OrderBy string
	Sort    string
	Limit   int
	Offset  int
}

// ListWallets lists wallets with filtering and pagination. Returns the
// page of wallets and the total count of matches.
func (uc *WalletUseCase) ListWallets(ctx context.Context, input ListWalletsInput) ([]*domain.Wallet, int64, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	filter := domain.WalletFilter{
		Label:   input.Label,
		Search:  input.Search,
		OrderBy: input.OrderBy,
		Sort:    input.Sort,
		Limit:   limit,
		Offset:  offset,
	}

	wallets, err := uc.walletRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	total, err := uc.walletRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return wallets, total, nil
}

// UpdateLabel changes a wallet's label. The balance cannot be set directly.
func (uc *WalletUseCase) UpdateLabel(ctx context.Context, id, label string) (*domain.Wallet, error) {
	if err := domain.ValidateLabel(label); err != nil {
		return nil, err
	}

	wallet, err := uc.walletRepo.UpdateLabel(ctx, id, strings.TrimSpace(label), time.Now().UTC())
	if err != nil {
		return nil, err
	}

	uc.invalidateWallet(ctx, id)

	return wallet, nil
}

// DeleteWallet deletes a wallet and, through the schema's cascade, its
// transactions.
func (uc *WalletUseCase) DeleteWallet(ctx context.Context, id string) error {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	// Lock the row so a concurrent posting cannot interleave with the delete
	wallet, err := uc.walletRepo.GetByIDForUpdate(txCtx, tx, id)
	if err != nil {
		return err
	}

	if err := uc.walletRepo.DeleteTx(txCtx, tx, id); err != nil {
		return err
	}

	now := time.Now().UTC()
	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   wallet.ID,
		AggregateType: domain.AggregateTypeWallet,
		EventType:     domain.EventTypeWalletDeleted,
		Payload: map[string]any{
			"wallet_id": wallet.ID,
			"label":     wallet.Label,
			"balance":   wallet.Balance.String(),
		},
		CreatedAt: now,
		Published: false,
	}
	if err := uc.outboxRepo.Create(txCtx, tx, event); err != nil {
		return err
	}

	if err := tx.Commit(txCtx); err != nil {
		return err
	}

	uc.invalidateWallet(ctx, id)

	if uc.metrics != nil {
		uc.metrics.WalletsDeleted.Inc()
	}

	return nil
}

func (uc *WalletUseCase) invalidateWallet(ctx context.Context, walletID string) {
	if uc.cache == nil {
		return
	}
	_ = uc.cache.Delete(ctx, walletID)
}
