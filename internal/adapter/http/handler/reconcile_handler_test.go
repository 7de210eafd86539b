package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/walletd/internal/adapter/http/dto"
	"github.com/iho/walletd/internal/usecase"
)

type reconcileServiceStub struct {
	reportFn func(ctx context.Context) (*usecase.ReconciliationReport, error)
}

func (s *reconcileServiceStub) GenerateReport(ctx context.Context) (*usecase.ReconciliationReport, error) {
	return s.reportFn(ctx)
}

func TestReconcileHandler_Report_Clean(t *testing.T) {
	handler := NewReconcileHandler(&reconcileServiceStub{
		reportFn: func(ctx context.Context) (*usecase.ReconciliationReport, error) {
			return &usecase.ReconciliationReport{
				TotalWallets:      3,
				ReconciledWallets: 3,
				CheckedAt:         time.Now(),
			}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/reconciliation", nil)
	rec := httptest.NewRecorder()

	handler.Report(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.ReconciliationResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.TotalWallets != 3 || resp.ReconciledWallets != 3 {
		t.Fatalf("unexpected report: %+v", resp)
	}
}

func TestReconcileHandler_Report_Drift(t *testing.T) {
	handler := NewReconcileHandler(&reconcileServiceStub{
		reportFn: func(ctx context.Context) (*usecase.ReconciliationReport, error) {
			return &usecase.ReconciliationReport{
				TotalWallets:      2,
				ReconciledWallets: 1,
				Discrepancies: []*usecase.ReconciliationResult{
					{
						WalletID:        "w2",
						RecordedBalance: decimal.RequireFromString("100"),
						ComputedBalance: decimal.RequireFromString("99.75"),
						Difference:      decimal.RequireFromString("0.25"),
					},
				},
				CheckedAt: time.Now(),
			}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/reconciliation", nil)
	rec := httptest.NewRecorder()

	handler.Report(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 when balances drifted, got %d", rec.Code)
	}
}

func TestReconcileHandler_Report_Error(t *testing.T) {
	handler := NewReconcileHandler(&reconcileServiceStub{
		reportFn: func(ctx context.Context) (*usecase.ReconciliationReport, error) {
			return nil, errors.New("db down")
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/reconciliation", nil)
	rec := httptest.NewRecorder()

	handler.Report(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}
