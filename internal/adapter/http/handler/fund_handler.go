package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/oseme/esusu/internal/adapter/http/dto"
	"github.com/oseme/esusu/internal/adapter/http/middleware"
	"github.com/oseme/esusu/internal/usecase"
)

// FundHandler handles fund-related HTTP requests.
type FundHandler struct {
	fundUC *usecase.FundUseCase
}

// NewFundHandler creates a new FundHandler.
func NewFundHandler(fundUC *usecase.FundUseCase) *FundHandler {
	return &FundHandler{fundUC: fundUC}
}

// Create creates a new fund.
func (h *FundHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.MemberFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req dto.CreateFundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	fund, err := h.fundUC.CreateFund(r.Context(), usecase.CreateFundInput{
		Title:    req.Title,
		Currency: req.Currency,
		Actor:    actor,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create fund", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.FundFromDomain(fund))
}

// Get retrieves a fund by ID.
func (h *FundHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing fund ID", "")
		return
	}

	fund, err := h.fundUC.GetFund(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get fund", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.FundFromDomain(fund))
}

// List lists funds.
func (h *FundHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	funds, err := h.fundUC.ListFunds(r.Context(), limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list funds", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.FundsFromDomain(funds))
}

// Delete soft-deletes an empty fund.
func (h *FundHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.MemberFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing fund ID", "")
		return
	}

	if err := h.fundUC.DeleteFund(r.Context(), id, actor); err != nil {
		writeError(w, mapDomainError(err), "failed to delete fund", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
