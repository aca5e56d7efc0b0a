package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/oseme/esusu/internal/adapter/http/dto"
	"github.com/oseme/esusu/internal/adapter/http/middleware"
	"github.com/oseme/esusu/internal/domain"
	"github.com/oseme/esusu/internal/usecase"
)

// PolicyHandler handles deposit-policy HTTP requests.
type PolicyHandler struct {
	policyUC *usecase.PolicyUseCase
}

// NewPolicyHandler creates a new PolicyHandler.
func NewPolicyHandler(policyUC *usecase.PolicyUseCase) *PolicyHandler {
	return &PolicyHandler{policyUC: policyUC}
}

// Create creates a new deposit policy.
func (h *PolicyHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.MemberFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req dto.CreatePolicyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput(actor.ID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid effective month", err.Error())
		return
	}

	policy, err := h.policyUC.CreatePolicy(r.Context(), input)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create policy", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.PolicyFromDomain(policy))
}

// Delete deletes an upcoming policy.
func (h *PolicyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.MemberFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing policy ID", "")
		return
	}

	if err := h.policyUC.DeletePolicy(r.Context(), id, actor); err != nil {
		writeError(w, mapDomainError(err), "failed to delete policy", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ResolveEffective returns the policy governing a month. With no month
// query parameter the current month is resolved.
func (h *PolicyHandler) ResolveEffective(w http.ResponseWriter, r *http.Request) {
	m := domain.MonthOf(time.Now().UTC())

	if q := r.URL.Query().Get("month"); q != "" {
		parsed, err := domain.ParseMonth(q)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid month", err.Error())
			return
		}
		m = parsed
	}

	policy, err := h.policyUC.ResolveEffective(r.Context(), m)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to resolve policy", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.PolicyFromDomain(policy))
}

// List lists policies.
func (h *PolicyHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	policies, err := h.policyUC.ListPolicies(r.Context(), limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list policies", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.PoliciesFromDomain(policies))
}
