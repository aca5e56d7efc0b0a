package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/oseme/esusu/internal/adapter/http/dto"
	"github.com/oseme/esusu/internal/adapter/http/middleware"
	"github.com/oseme/esusu/internal/domain"
	"github.com/oseme/esusu/internal/usecase"
)

// DepositHandler handles deposit HTTP requests.
type DepositHandler struct {
	depositUC *usecase.DepositUseCase
}

// NewDepositHandler creates a new DepositHandler.
func NewDepositHandler(depositUC *usecase.DepositUseCase) *DepositHandler {
	return &DepositHandler{depositUC: depositUC}
}

// Submit records a pending deposit for the authenticated member.
func (h *DepositHandler) Submit(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.MemberFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req dto.SubmitDepositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.Parse()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid month", err.Error())
		return
	}
	input.Actor = actor

	deposit, err := h.depositUC.SubmitDeposit(r.Context(), input)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to submit deposit", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.DepositFromDomain(deposit))
}

// Verify credits a fund with a pending deposit's amount.
func (h *DepositHandler) Verify(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.MemberFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing deposit ID", "")
		return
	}

	var req dto.VerifyDepositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	deposit, err := h.depositUC.VerifyDeposit(r.Context(), usecase.VerifyDepositInput{
		DepositID: id,
		FundID:    req.FundID,
		Actor:     actor,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to verify deposit", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.DepositFromDomain(deposit))
}

// Reject marks a pending deposit rejected.
func (h *DepositHandler) Reject(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.MemberFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing deposit ID", "")
		return
	}

	var req dto.RejectDepositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	deposit, err := h.depositUC.RejectDeposit(r.Context(), usecase.RejectDepositInput{
		DepositID: id,
		Reason:    req.Reason,
		Actor:     actor,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to reject deposit", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.DepositFromDomain(deposit))
}

// Get retrieves a deposit by ID.
func (h *DepositHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing deposit ID", "")
		return
	}

	deposit, err := h.depositUC.GetDeposit(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get deposit", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.DepositFromDomain(deposit))
}

// ListMine lists the authenticated member's deposits.
func (h *DepositHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.MemberFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	deposits, err := h.depositUC.ListDepositsByMember(r.Context(), actor.ID, limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list deposits", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.DepositsFromDomain(deposits))
}

// ListByStatus lists deposits in a verification state, oldest first,
// so managers work the queue first come first served.
func (h *DepositHandler) ListByStatus(w http.ResponseWriter, r *http.Request) {
	status := domain.DepositStatus(r.URL.Query().Get("status"))
	switch status {
	case domain.DepositPending, domain.DepositVerified, domain.DepositRejected:
	case "":
		status = domain.DepositPending
	default:
		writeError(w, http.StatusBadRequest, "invalid status", string(status))
		return
	}

	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	deposits, err := h.depositUC.ListDepositsByStatus(r.Context(), status, limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list deposits", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.DepositsFromDomain(deposits))
}
