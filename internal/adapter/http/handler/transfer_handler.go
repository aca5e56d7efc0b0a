package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/oseme/esusu/internal/adapter/http/dto"
	"github.com/oseme/esusu/internal/adapter/http/middleware"
	"github.com/oseme/esusu/internal/usecase"
)

// TransferHandler handles fund-transfer HTTP requests.
type TransferHandler struct {
	transferUC *usecase.TransferUseCase
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(transferUC *usecase.TransferUseCase) *TransferHandler {
	return &TransferHandler{transferUC: transferUC}
}

// Create moves money between two funds.
func (h *TransferHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.MemberFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req dto.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	txn, err := h.transferUC.Transfer(r.Context(), usecase.TransferInput{
		FromFundID:  req.FromFundID,
		ToFundID:    req.ToFundID,
		Amount:      req.Amount,
		Description: req.Description,
		Actor:       actor,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to transfer", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(txn))
}

// Get retrieves a transaction by ID.
func (h *TransferHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing transaction ID", "")
		return
	}

	txn, err := h.transferUC.GetTransaction(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get transaction", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionFromDomain(txn))
}

// ListByFund lists transactions touching a fund.
func (h *TransferHandler) ListByFund(w http.ResponseWriter, r *http.Request) {
	fundID := chi.URLParam(r, "id")
	if fundID == "" {
		writeError(w, http.StatusBadRequest, "missing fund ID", "")
		return
	}

	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	txns, err := h.transferUC.ListTransactionsByFund(r.Context(), fundID, limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list transactions", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionsFromDomain(txns))
}
