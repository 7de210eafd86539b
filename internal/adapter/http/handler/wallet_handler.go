package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/walletd/internal/adapter/http/dto"
	"github.com/iho/walletd/internal/domain"
	"github.com/iho/walletd/internal/usecase"
)

// WalletService defines the behavior needed by WalletHandler.
type WalletService interface {
	CreateWallet(ctx context.Context, input usecase.CreateWalletInput) (*domain.Wallet, error)
	GetWallet(ctx context.Context, id string) (*domain.Wallet, error)
	GetWalletDetail(ctx context.Context, id string) (*usecase.WalletDetail, error)
	ListWallets(ctx context.Context, input usecase.ListWalletsInput) ([]*domain.Wallet, int64, error)
	UpdateLabel(ctx context.Context, id, label string) (*domain.Wallet, error)
	DeleteWallet(ctx context.Context, id string) error
}

// WalletHandler handles wallet-related HTTP requests.
type WalletHandler struct {
	walletUC WalletService
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(walletUC WalletService) *WalletHandler {
	return &WalletHandler{walletUC: walletUC}
}

// Create creates a new wallet.
func (h *WalletHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateWalletRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	wallet, err := h.walletUC.CreateWallet(r.Context(), req.ToUseCaseInput())
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to create wallet", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.WalletFromDomain(wallet))
}

// Get retrieves a wallet by ID.
func (h *WalletHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing wallet ID", "")
		return
	}

	wallet, err := h.walletUC.GetWallet(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get wallet", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.WalletFromDomain(wallet))
}

// GetDetail retrieves a wallet with its recent activity.
func (h *WalletHandler) GetDetail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing wallet ID", "")
		return
	}

	detail, err := h.walletUC.GetWalletDetail(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get wallet detail", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.WalletDetailFromUseCase(detail))
}

// Balance returns the wallet's current balance.
func (h *WalletHandler) Balance(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing wallet ID", "")
		return
	}

	wallet, err := h.walletUC.GetWallet(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get balance", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceResponse{
		WalletID: wallet.ID,
		Balance:  wallet.Balance,
	})
}

// List lists wallets.
func (h *WalletHandler) List(w http.ResponseWriter, r *http.Request) {
	input := usecase.ListWalletsInput{
		Label:   r.URL.Query().Get("label"),
		Search:  r.URL.Query().Get("search"),
		OrderBy: r.URL.Query().Get("order_by"),
		Sort:    r.URL.Query().Get("sort"),
		Limit:   parseIntQuery(r, "limit", 20),
		Offset:  parseIntQuery(r, "offset", 0),
	}

	wallets, total, err := h.walletUC.ListWallets(r.Context(), input)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list wallets", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListWalletsResponse{
		Wallets: dto.WalletsFromDomain(wallets),
		Total:   total,
	})
}

// Update changes a wallet's label.
func (h *WalletHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing wallet ID", "")
		return
	}

	var req dto.UpdateWalletRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	wallet, err := h.walletUC.UpdateLabel(r.Context(), id, req.Label)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to update wallet", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.WalletFromDomain(wallet))
}

// Delete removes a wallet and all of its transactions.
func (h *WalletHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing wallet ID", "")
		return
	}

	if err := h.walletUC.DeleteWallet(r.Context(), id); err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to delete wallet", err.Error())

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
