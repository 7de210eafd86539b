package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpAdapter "github.com/iho/walletd/internal/adapter/http"
	"github.com/iho/walletd/internal/adapter/http/handler"
	"github.com/iho/walletd/internal/adapter/http/middleware"
	postgresRepo "github.com/iho/walletd/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/walletd/internal/adapter/repository/redis"
	"github.com/iho/walletd/internal/infrastructure/config"
	"github.com/iho/walletd/internal/infrastructure/eventpublisher"
	"github.com/iho/walletd/internal/infrastructure/logger"
	"github.com/iho/walletd/internal/infrastructure/metrics"
	"github.com/iho/walletd/internal/infrastructure/postgres"
	"github.com/iho/walletd/internal/infrastructure/redis"
	"github.com/iho/walletd/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Setup logger
	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPoolWithConfig(ctx, postgres.PoolConfig{
		DatabaseURL:    cfg.DatabaseURL,
		MaxConns:       cfg.DatabaseMaxConns,
		MinConns:       cfg.DatabaseMinConns,
		LockTimeout:    cfg.LockTimeout,
		ConnectTimeout: cfg.DatabaseTimeout,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Run migrations
	if cfg.AutoMigrate {
		if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, log); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}
	}

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	m := metrics.New()

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	walletRepo := postgresRepo.NewWalletRepository(pool)
	transactionRepo := postgresRepo.NewTransactionRepository(pool)
	ledgerRepo := postgresRepo.NewLedgerRepository(pool)
	var outboxRepo usecase.OutboxRepository = postgresRepo.NewNullOutboxRepository()
	if cfg.OutboxEnabled {
		outboxRepo = postgresRepo.NewOutboxRepository(pool)
	}
	cache := redisRepo.NewWalletCache(redisClient)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	idGen := postgresRepo.NewULIDGenerator()
	txidGen := postgresRepo.NewUUIDGenerator()

	// Initialize use cases
	walletUC := usecase.NewWalletUseCase(txManager, walletRepo, transactionRepo, outboxRepo, cache, idGen, m)
	ledgerUC := usecase.NewLedgerUseCase(txManager, walletRepo, transactionRepo, outboxRepo, cache, idGen, txidGen, m).
		WithRetrier(postgresRepo.NewRetrier())
	transactionUC := usecase.NewTransactionUseCase(transactionRepo, walletRepo)
	reconciliationUC := usecase.NewReconciliationUseCase(ledgerRepo)

	// Initialize handlers
	walletHandler := handler.NewWalletHandler(walletUC)
	ledgerHandler := handler.NewLedgerHandler(ledgerUC)
	transactionHandler := handler.NewTransactionHandler(transactionUC)
	reconcileHandler := handler.NewReconcileHandler(reconciliationUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst).WithMetrics(m)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		WalletHandler:      walletHandler,
		TransactionHandler: transactionHandler,
		LedgerHandler:      ledgerHandler,
		ReconcileHandler:   reconcileHandler,
		HealthHandler:      healthHandler,
		IdempotencyStore:   idempotencyStore,
		IdempotencyTTL:     cfg.IdempotencyTTL,
		RateLimiter:        rateLimiter,
		Metrics:            m,
		Logger:             log,
	})

	// Background workers
	workerCtx, stopWorkers := context.WithCancel(ctx)
	defer stopWorkers()

	if cfg.OutboxEnabled {
		publisher := eventpublisher.NewEventPublisher(eventpublisher.Config{
			OutboxRepo: outboxRepo,
			Publisher:  redisRepo.NewEventPublisher(redisClient),
			Logger:     log,
			Metrics:    m,
			BatchSize:  cfg.OutboxBatchSize,
			Interval:   cfg.OutboxInterval,
			Retention:  cfg.OutboxRetention,
		})
		go func() {
			if err := publisher.Start(workerCtx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error().Err(err).Msg("event publisher stopped")
			}
		}()
	}

	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-workerCtx.Done():
				return
			case <-ticker.C:
				rateLimiter.CleanupLimiters()
			}
		}
	}()

	// Create server
	server := &http.Server{
		Addr:         serverAddr(cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")
	stopWorkers()

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

func serverAddr(port string) string {
	return fmt.Sprintf(":%s", port)
}
