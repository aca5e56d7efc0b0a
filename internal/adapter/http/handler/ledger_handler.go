package handler

import (
	"net/http"

	"github.com/oseme/esusu/internal/adapter/http/dto"
	"github.com/oseme/esusu/internal/usecase"
)

// LedgerHandler handles ledger-wide operations.
type LedgerHandler struct {
	ledgerUC *usecase.LedgerUseCase
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerUC *usecase.LedgerUseCase) *LedgerHandler {
	return &LedgerHandler{ledgerUC: ledgerUC}
}

// CheckConsistency reports whether fund balances add up to verified
// deposits. An inconsistent ledger answers 409 so monitors can alert
// on status alone.
func (h *LedgerHandler) CheckConsistency(w http.ResponseWriter, r *http.Request) {
	report, err := h.ledgerUC.CheckConsistency(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to check consistency", err.Error())
		return
	}

	status := http.StatusOK
	if !report.Consistent {
		status = http.StatusConflict
	}

	writeJSON(w, status, dto.ConsistencyResponse{
		TotalBalance:  report.TotalBalance,
		TotalVerified: report.TotalVerified,
		Consistent:    report.Consistent,
	})
}
