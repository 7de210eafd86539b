package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/iho/walletd/internal/domain"
	"github.com/iho/walletd/internal/usecase"
	"github.com/shopspring/decimal"
)

// MockWalletRepository is a mock implementation of WalletRepository.
type MockWalletRepository struct {
	mu      sync.RWMutex
	wallets map[string]*domain.Wallet

	CreateTxFunc         func(ctx context.Context, tx usecase.Tx, wallet *domain.Wallet) error
	GetByIDFunc          func(ctx context.Context, id string) (*domain.Wallet, error)
	GetByIDForUpdateFunc func(ctx context.Context, tx usecase.Tx, id string) (*domain.Wallet, error)
	UpdateBalanceFunc    func(ctx context.Context, tx usecase.Tx, id string, balance decimal.Decimal, updatedAt time.Time) error
	UpdateLabelFunc      func(ctx context.Context, id, label string, updatedAt time.Time) (*domain.Wallet, error)
	DeleteTxFunc         func(ctx context.Context, tx usecase.Tx, id string) error
	ListFunc             func(ctx context.Context, filter domain.WalletFilter) ([]*domain.Wallet, error)
	CountFunc            func(ctx context.Context, filter domain.WalletFilter) (int64, error)
}

func NewMockWalletRepository() *MockWalletRepository {
	return &MockWalletRepository{
		wallets: make(map[string]*domain.Wallet),
	}
}

func (m *MockWalletRepository) CreateTx(ctx context.Context, tx usecase.Tx, wallet *domain.Wallet) error {
	if m.CreateTxFunc != nil {
		return m.CreateTxFunc(ctx, tx, wallet)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.wallets[wallet.ID] = wallet
	return nil
}

func (m *MockWalletRepository) GetByID(ctx context.Context, id string) (*domain.Wallet, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if w, ok := m.wallets[id]; ok {
		return w, nil
	}
	return nil, domain.ErrWalletNotFound
}

func (m *MockWalletRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Tx, id string) (*domain.Wallet, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockWalletRepository) UpdateBalance(ctx context.Context, tx usecase.Tx, id string, balance decimal.Decimal, updatedAt time.Time) error {
	if m.UpdateBalanceFunc != nil {
		return m.UpdateBalanceFunc(ctx, tx, id, balance, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if w, ok := m.wallets[id]; ok {
		w.Balance = balance
		w.UpdatedAt = updatedAt
	}
	return nil
}

func (m *MockWalletRepository) UpdateLabel(ctx context.Context, id, label string, updatedAt time.Time) (*domain.Wallet, error) {
	if m.UpdateLabelFunc != nil {
		return m.UpdateLabelFunc(ctx, id, label, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if w, ok := m.wallets[id]; ok {
		w.Label = label
		w.UpdatedAt = updatedAt
		return w, nil
	}
	return nil, domain.ErrWalletNotFound
}

func (m *MockWalletRepository) DeleteTx(ctx context.Context, tx usecase.Tx, id string) error {
	if m.DeleteTxFunc != nil {
		return m.DeleteTxFunc(ctx, tx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.wallets[id]; !ok {
		return domain.ErrWalletNotFound
	}
	delete(m.wallets, id)
	return nil
}

func (m *MockWalletRepository) List(ctx context.Context, filter domain.WalletFilter) ([]*domain.Wallet, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var wallets []*domain.Wallet
	for _, w := range m.wallets {
		wallets = append(wallets, w)
	}
	return wallets, nil
}

func (m *MockWalletRepository) Count(ctx context.Context, filter domain.WalletFilter) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx, filter)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.wallets)), nil
}

// MockTransactionRepository is a mock implementation of TransactionRepository.
// The in-memory fallback enforces txid uniqueness like the real table does.
type MockTransactionRepository struct {
	mu           sync.RWMutex
	transactions map[string]*domain.Transaction

	CreateFunc        func(ctx context.Context, tx usecase.Tx, transaction *domain.Transaction) error
	GetByIDFunc       func(ctx context.Context, id string) (*domain.Transaction, error)
	GetByTxIDFunc     func(ctx context.Context, txid string) (*domain.Transaction, error)
	ListFunc          func(ctx context.Context, filter domain.TransactionFilter) ([]*domain.Transaction, error)
	CountFunc         func(ctx context.Context, filter domain.TransactionFilter) (int64, error)
	SumByWalletFunc   func(ctx context.Context, walletID string) (decimal.Decimal, error)
	SumByWalletTxFunc func(ctx context.Context, tx usecase.Tx, walletID string) (decimal.Decimal, error)
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{
		transactions: make(map[string]*domain.Transaction),
	}
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx usecase.Tx, transaction *domain.Transaction) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, transaction)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.transactions {
		if existing.TxID == transaction.TxID {
			return domain.ErrDuplicateTxID
		}
	}
	m.transactions[transaction.ID] = transaction
	return nil
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if t, ok := m.transactions[id]; ok {
		return t, nil
	}
	return nil, domain.ErrTransactionNotFound
}

func (m *MockTransactionRepository) GetByTxID(ctx context.Context, txid string) (*domain.Transaction, error) {
	if m.GetByTxIDFunc != nil {
		return m.GetByTxIDFunc(ctx, txid)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, t := range m.transactions {
		if t.TxID == txid {
			return t, nil
		}
	}
	return nil, domain.ErrTransactionNotFound
}

func (m *MockTransactionRepository) List(ctx context.Context, filter domain.TransactionFilter) ([]*domain.Transaction, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var transactions []*domain.Transaction
	for _, t := range m.transactions {
		if filter.WalletID != "" && t.WalletID != filter.WalletID {
			continue
		}
		if filter.TxID != "" && t.TxID != filter.TxID {
			continue
		}
		transactions = append(transactions, t)
	}
	return transactions, nil
}

func (m *MockTransactionRepository) Count(ctx context.Context, filter domain.TransactionFilter) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx, filter)
	}
	transactions, err := m.List(ctx, filter)
	if err != nil {
		return 0, err
	}
	return int64(len(transactions)), nil
}

func (m *MockTransactionRepository) SumByWallet(ctx context.Context, walletID string) (decimal.Decimal, error) {
	if m.SumByWalletFunc != nil {
		return m.SumByWalletFunc(ctx, walletID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	sum := decimal.Zero
	for _, t := range m.transactions {
		if t.WalletID == walletID {
			sum = sum.Add(t.Amount)
		}
	}
	return sum, nil
}

func (m *MockTransactionRepository) SumByWalletTx(ctx context.Context, tx usecase.Tx, walletID string) (decimal.Decimal, error) {
	if m.SumByWalletTxFunc != nil {
		return m.SumByWalletTxFunc(ctx, tx, walletID)
	}
	return m.SumByWallet(ctx, walletID)
}

// MockOutboxRepository is a mock implementation of OutboxRepository.
type MockOutboxRepository struct {
	mu     sync.RWMutex
	events map[string]*domain.OutboxEvent

	CreateFunc          func(ctx context.Context, tx usecase.Tx, event *domain.OutboxEvent) error
	GetUnpublishedFunc  func(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublishedFunc   func(ctx context.Context, id string, publishedAt time.Time) error
	DeletePublishedFunc func(ctx context.Context, before time.Time) error
}

func NewMockOutboxRepository() *MockOutboxRepository {
	return &MockOutboxRepository{
		events: make(map[string]*domain.OutboxEvent),
	}
}

func (m *MockOutboxRepository) Create(ctx context.Context, tx usecase.Tx, event *domain.OutboxEvent) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, event)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events[event.ID] = event
	return nil
}

func (m *MockOutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error) {
	if m.GetUnpublishedFunc != nil {
		return m.GetUnpublishedFunc(ctx, limit)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var events []*domain.OutboxEvent
	for _, e := range m.events {
		if e.Published {
			continue
		}
		events = append(events, e)
		if len(events) >= limit {
			break
		}
	}
	return events, nil
}

func (m *MockOutboxRepository) MarkPublished(ctx context.Context, id string, publishedAt time.Time) error {
	if m.MarkPublishedFunc != nil {
		return m.MarkPublishedFunc(ctx, id, publishedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.events[id]; ok {
		e.Published = true
		e.PublishedAt = &publishedAt
	}
	return nil
}

func (m *MockOutboxRepository) DeletePublished(ctx context.Context, before time.Time) error {
	if m.DeletePublishedFunc != nil {
		return m.DeletePublishedFunc(ctx, before)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, e := range m.events {
		if e.Published && e.CreatedAt.Before(before) {
			delete(m.events, id)
		}
	}
	return nil
}

// Events returns a snapshot of all stored events.
func (m *MockOutboxRepository) Events() []*domain.OutboxEvent {
	m.mu.RLock()
	defer m.mu.RUnlock()
	events := make([]*domain.OutboxEvent, 0, len(m.events))
	for _, e := range m.events {
		events = append(events, e)
	}
	return events
}

// MockTxManager is a mock implementation of TxManager.
type MockTxManager struct {
	BeginFunc func(ctx context.Context) (usecase.Tx, error)
}

func NewMockTxManager() *MockTxManager {
	return &MockTxManager{}
}

func (m *MockTxManager) Begin(ctx context.Context) (usecase.Tx, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	return &MockTx{}, nil
}

// MockTx is a mock implementation of Tx.
type MockTx struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error
}

func (m *MockTx) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	return nil
}

func (m *MockTx) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	return nil
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	GenerateFunc func() string
	counter      int
	mu           sync.Mutex
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("mock-id-%d", m.counter)
}

// MockIdempotencyStore is a mock implementation of IdempotencyStore.
type MockIdempotencyStore struct {
	mu   sync.RWMutex
	data map[string][]byte

	CheckAndSetFunc func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	UpdateFunc      func(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

func NewMockIdempotencyStore() *MockIdempotencyStore {
	return &MockIdempotencyStore{
		data: make(map[string][]byte),
	}
}

func (m *MockIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	if m.CheckAndSetFunc != nil {
		return m.CheckAndSetFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.data[key]; ok {
		return true, existing, nil
	}
	if response != nil {
		m.data[key] = response
	} else {
		m.data[key] = []byte("processing")
	}
	return false, nil, nil
}

func (m *MockIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = response
	return nil
}
