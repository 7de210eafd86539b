package handler

import (
	"context"
	"net/http"

	"github.com/iho/walletd/internal/adapter/http/dto"
	"github.com/iho/walletd/internal/usecase"
)

// ReconcileService defines the behavior needed by ReconcileHandler.
type ReconcileService interface {
	GenerateReport(ctx context.Context) (*usecase.ReconciliationReport, error)
}

// ReconcileHandler handles ledger-wide balance verification.
type ReconcileHandler struct {
	reconcileUC ReconcileService
}

// NewReconcileHandler creates a new ReconcileHandler.
func NewReconcileHandler(reconcileUC ReconcileService) *ReconcileHandler {
	return &ReconcileHandler{reconcileUC: reconcileUC}
}

// Report sweeps all wallets and reports balance drift. Responds 409 when
// any wallet's stored balance disagrees with its transaction history.
func (h *ReconcileHandler) Report(w http.ResponseWriter, r *http.Request) {
	report, err := h.reconcileUC.GenerateReport(r.Context())
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to reconcile", err.Error())

		return
	}

	status := http.StatusOK
	if len(report.Discrepancies) > 0 {
		status = http.StatusConflict
	}

	writeJSON(w, status, dto.ReconciliationFromUseCase(report))
}
