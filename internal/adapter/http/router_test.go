package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/walletd/internal/adapter/http/handler"
	apimiddleware "github.com/iho/walletd/internal/adapter/http/middleware"
	"github.com/iho/walletd/internal/domain"
	"github.com/iho/walletd/internal/usecase"
)

func TestNewRouter_HealthEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /health to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_MetricsEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /metrics to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_RateLimiterBlocksExcessRequests(t *testing.T) {
	rl := apimiddleware.NewRateLimiter(1, 1)
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.RateLimiter = rl
	}))

	req1 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req1.RemoteAddr = "1.2.3.4:1234"
	rec1 := httptest.NewRecorder()
	router.ServeHTTP(rec1, req1)
	if rec1.Code != http.StatusOK {
		t.Fatalf("expected first request to succeed, got %d", rec1.Code)
	}

	req2 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req2.RemoteAddr = "1.2.3.4:1234"
	rec2 := httptest.NewRecorder()
	router.ServeHTTP(rec2, req2)
	if rec2.Code != http.StatusTooManyRequests {
		t.Fatalf("expected second request to be throttled, got %d", rec2.Code)
	}
}

func TestNewRouter_IdempotencyMiddlewareInvokesStore(t *testing.T) {
	store := &stubIdempotencyStore{}
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.IdempotencyStore = store
	}))

	body := `{"label":"Main"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/wallets/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(apimiddleware.IdempotencyKeyHeader, "key-123")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if !store.checkCalled {
		t.Fatalf("expected idempotency store to be used")
	}
}

func TestNewRouter_TransactionMutationsNotAllowed(t *testing.T) {
	router := NewRouter(newRouterConfig())

	req := httptest.NewRequest(http.MethodPut, "/api/v1/transactions/tx-1", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405 for transaction mutation, got %d", rec.Code)
	}

	var resp map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("expected JSON error body: %v", err)
	}
	if resp["error"] != "method not allowed" {
		t.Fatalf("unexpected error body: %v", resp)
	}
}

func TestNewRouter_RegistersKeyRoutes(t *testing.T) {
	router := NewRouter(newRouterConfig())

	chiRoutes, ok := router.(chi.Router)
	if !ok {
		t.Fatal("router does not implement chi.Routes")
	}

	seen := map[string]bool{}
	if err := chi.Walk(chiRoutes, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		seen[method+" "+route] = true
		return nil
	}); err != nil {
		t.Fatalf("walk failed: %v", err)
	}

	expected := []string{
		"GET /health",
		"GET /ready",
		"GET /metrics",
		"POST /api/v1/wallets/",
		"GET /api/v1/wallets/",
		"GET /api/v1/wallets/{id}",
		"PUT /api/v1/wallets/{id}",
		"DELETE /api/v1/wallets/{id}",
		"GET /api/v1/wallets/{id}/balance",
		"POST /api/v1/wallets/{id}/transactions",
		"POST /api/v1/wallets/{id}/recompute",
		"GET /api/v1/transactions/{id}",
		"GET /api/v1/transactions/txid/{txid}",
		"GET /api/v1/reconciliation",
	}

	for _, route := range expected {
		if !seen[route] {
			t.Fatalf("expected route %s to be registered", route)
		}
	}
}

func newRouterConfig(opts ...func(*RouterConfig)) RouterConfig {
	cfg := RouterConfig{
		WalletHandler:      handler.NewWalletHandler(stubWalletService{}),
		TransactionHandler: handler.NewTransactionHandler(stubTransactionService{}),
		LedgerHandler:      handler.NewLedgerHandler(stubLedgerService{}),
		ReconcileHandler:   handler.NewReconcileHandler(stubReconcileService{}),
		HealthHandler:      &handler.HealthHandler{},
		Logger:             zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

type stubWalletService struct{}

func (stubWalletService) CreateWallet(ctx context.Context, input usecase.CreateWalletInput) (*domain.Wallet, error) {
	return &domain.Wallet{ID: "w1", Label: input.Label}, nil
}

func (stubWalletService) GetWallet(ctx context.Context, id string) (*domain.Wallet, error) {
	return &domain.Wallet{ID: id}, nil
}

func (stubWalletService) GetWalletDetail(ctx context.Context, id string) (*usecase.WalletDetail, error) {
	return &usecase.WalletDetail{Wallet: &domain.Wallet{ID: id}}, nil
}

func (stubWalletService) ListWallets(ctx context.Context, input usecase.ListWalletsInput) ([]*domain.Wallet, int64, error) {
	return []*domain.Wallet{}, 0, nil
}

func (stubWalletService) UpdateLabel(ctx context.Context, id, label string) (*domain.Wallet, error) {
	return &domain.Wallet{ID: id, Label: label}, nil
}

func (stubWalletService) DeleteWallet(ctx context.Context, id string) error {
	return nil
}

type stubTransactionService struct{}

func (stubTransactionService) GetTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	return &domain.Transaction{ID: id}, nil
}

func (stubTransactionService) GetTransactionByTxID(ctx context.Context, txid string) (*domain.Transaction, error) {
	return &domain.Transaction{ID: "t1", TxID: txid}, nil
}

func (stubTransactionService) ListTransactions(ctx context.Context, input usecase.ListTransactionsInput) ([]*domain.Transaction, int64, error) {
	return []*domain.Transaction{}, 0, nil
}

func (stubTransactionService) ListWalletTransactions(ctx context.Context, walletID string, input usecase.ListTransactionsInput) ([]*domain.Transaction, int64, error) {
	return []*domain.Transaction{}, 0, nil
}

type stubLedgerService struct{}

func (stubLedgerService) PostTransaction(ctx context.Context, input usecase.PostTransactionInput) (*domain.Transaction, decimal.Decimal, error) {
	return &domain.Transaction{ID: "t1", WalletID: input.WalletID}, decimal.Zero, nil
}

func (stubLedgerService) RecomputeBalance(ctx context.Context, walletID string) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

type stubReconcileService struct{}

func (stubReconcileService) GenerateReport(ctx context.Context) (*usecase.ReconciliationReport, error) {
	return &usecase.ReconciliationReport{CheckedAt: time.Now()}, nil
}

type stubIdempotencyStore struct {
	checkCalled bool
}

func (s *stubIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	s.checkCalled = true
	return false, nil, nil
}

func (s *stubIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	return nil
}
