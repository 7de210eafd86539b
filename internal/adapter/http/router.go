package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/walletd/internal/adapter/http/dto"
	"github.com/iho/walletd/internal/adapter/http/handler"
	"github.com/iho/walletd/internal/adapter/http/middleware"
	"github.com/iho/walletd/internal/infrastructure/metrics"
	"github.com/iho/walletd/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	WalletHandler      *handler.WalletHandler
	TransactionHandler *handler.TransactionHandler
	LedgerHandler      *handler.LedgerHandler
	ReconcileHandler   *handler.ReconcileHandler
	HealthHandler      *handler.HealthHandler
	IdempotencyStore   usecase.IdempotencyStore
	IdempotencyTTL     time.Duration
	RateLimiter        *middleware.RateLimiter
	Metrics            *metrics.Metrics
	Logger             zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery(cfg.Logger))
	if cfg.Metrics != nil {
		r.Use(middleware.NewMetricsMiddleware(cfg.Metrics).Wrap)
	}
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	r.MethodNotAllowed(methodNotAllowed)

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Set before the subrouters are mounted so they pick it up
		r.MethodNotAllowed(methodNotAllowed)

		// Wallets
		r.Route("/wallets", func(r chi.Router) {
			r.Post("/", cfg.WalletHandler.Create)
			r.Get("/", cfg.WalletHandler.List)
			r.Get("/{id}", cfg.WalletHandler.Get)
			r.Put("/{id}", cfg.WalletHandler.Update)
			r.Delete("/{id}", cfg.WalletHandler.Delete)
			r.Get("/{id}/detail", cfg.WalletHandler.GetDetail)
			r.Get("/{id}/balance", cfg.WalletHandler.Balance)
			r.Post("/{id}/transactions", cfg.LedgerHandler.Post)
			r.Get("/{id}/transactions", cfg.TransactionHandler.ListByWallet)
			r.Post("/{id}/recompute", cfg.LedgerHandler.Recompute)
		})

		// Transactions are immutable, only reads are routed
		r.Route("/transactions", func(r chi.Router) {
			r.Get("/", cfg.TransactionHandler.List)
			r.Get("/{id}", cfg.TransactionHandler.Get)
			r.Get("/txid/{txid}", cfg.TransactionHandler.GetByTxID)
		})

		r.Get("/reconciliation", cfg.ReconcileHandler.Report)
	})

	return r
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusMethodNotAllowed)
	_ = json.NewEncoder(w).Encode(dto.ErrorResponse{Error: "method not allowed"})
}
