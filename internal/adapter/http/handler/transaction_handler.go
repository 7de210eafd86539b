package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/walletd/internal/adapter/http/dto"
	"github.com/iho/walletd/internal/domain"
	"github.com/iho/walletd/internal/usecase"
)

// TransactionService defines the behavior needed by TransactionHandler.
type TransactionService interface {
	GetTransaction(ctx context.Context, id string) (*domain.Transaction, error)
	GetTransactionByTxID(ctx context.Context, txid string) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, input usecase.ListTransactionsInput) ([]*domain.Transaction, int64, error)
	ListWalletTransactions(ctx context.Context, walletID string, input usecase.ListTransactionsInput) ([]*domain.Transaction, int64, error)
}

// TransactionHandler handles transaction read requests.
type TransactionHandler struct {
	transactionUC TransactionService
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionUC TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionUC: transactionUC}
}

// Get retrieves a transaction by ID.
func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing transaction ID", "")
		return
	}

	transaction, err := h.transactionUC.GetTransaction(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get transaction", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionFromDomain(transaction))
}

// GetByTxID retrieves a transaction by its client-supplied txid.
func (h *TransactionHandler) GetByTxID(w http.ResponseWriter, r *http.Request) {
	txid := chi.URLParam(r, "txid")
	if txid == "" {
		writeError(w, http.StatusBadRequest, "missing txid", "")
		return
	}

	transaction, err := h.transactionUC.GetTransactionByTxID(r.Context(), txid)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get transaction", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionFromDomain(transaction))
}

// List lists transactions across all wallets.
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	transactions, total, err := h.transactionUC.ListTransactions(r.Context(), listTransactionsInput(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list transactions", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListTransactionsResponse{
		Transactions: dto.TransactionsFromDomain(transactions),
		Total:        total,
	})
}

// ListByWallet lists transactions for a wallet.
func (h *TransactionHandler) ListByWallet(w http.ResponseWriter, r *http.Request) {
	walletID := chi.URLParam(r, "id")
	if walletID == "" {
		writeError(w, http.StatusBadRequest, "missing wallet ID", "")
		return
	}

	transactions, total, err := h.transactionUC.ListWalletTransactions(r.Context(), walletID, listTransactionsInput(r))
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to list transactions", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.ListTransactionsResponse{
		Transactions: dto.TransactionsFromDomain(transactions),
		Total:        total,
	})
}

func listTransactionsInput(r *http.Request) usecase.ListTransactionsInput {
	return usecase.ListTransactionsInput{
		WalletID: r.URL.Query().Get("wallet_id"),
		TxID:     r.URL.Query().Get("txid"),
		Search:   r.URL.Query().Get("search"),
		OrderBy:  r.URL.Query().Get("order_by"),
		Sort:     r.URL.Query().Get("sort"),
		Limit:    parseIntQuery(r, "limit", 20),
		Offset:   parseIntQuery(r, "offset", 0),
	}
}
