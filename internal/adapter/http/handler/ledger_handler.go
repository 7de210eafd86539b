package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/iho/walletd/internal/adapter/http/dto"
	"github.com/iho/walletd/internal/domain"
	"github.com/iho/walletd/internal/usecase"
)

// LedgerService defines the behavior needed by LedgerHandler.
type LedgerService interface {
	PostTransaction(ctx context.Context, input usecase.PostTransactionInput) (*domain.Transaction, decimal.Decimal, error)
	RecomputeBalance(ctx context.Context, walletID string) (decimal.Decimal, error)
}

// LedgerHandler handles transaction posting and balance repair.
type LedgerHandler struct {
	ledgerUC LedgerService
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerUC LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerUC: ledgerUC}
}

// Post records a signed amount against a wallet.
func (h *LedgerHandler) Post(w http.ResponseWriter, r *http.Request) {
	walletID := chi.URLParam(r, "id")
	if walletID == "" {
		writeError(w, http.StatusBadRequest, "missing wallet ID", "")
		return
	}

	var req dto.PostTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	transaction, balance, err := h.ledgerUC.PostTransaction(r.Context(), req.ToUseCaseInput(walletID))
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to post transaction", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.PostTransactionResponse{
		Transaction: dto.TransactionFromDomain(transaction),
		Balance:     balance,
	})
}

// Recompute rebuilds a wallet's stored balance from its transactions.
func (h *LedgerHandler) Recompute(w http.ResponseWriter, r *http.Request) {
	walletID := chi.URLParam(r, "id")
	if walletID == "" {
		writeError(w, http.StatusBadRequest, "missing wallet ID", "")
		return
	}

	balance, err := h.ledgerUC.RecomputeBalance(r.Context(), walletID)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to recompute balance", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceResponse{
		WalletID: walletID,
		Balance:  balance,
	})
}
