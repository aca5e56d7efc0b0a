package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/oseme/esusu/internal/adapter/http/dto"
	"github.com/oseme/esusu/internal/adapter/http/middleware"
	"github.com/oseme/esusu/internal/usecase"
)

// MemberHandler handles member HTTP requests.
type MemberHandler struct {
	memberUC *usecase.MemberUseCase
}

// NewMemberHandler creates a new MemberHandler.
func NewMemberHandler(memberUC *usecase.MemberUseCase) *MemberHandler {
	return &MemberHandler{memberUC: memberUC}
}

// Register adds a member under their identity-provider subject ID.
func (h *MemberHandler) Register(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.MemberFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req dto.RegisterMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	member, err := h.memberUC.RegisterMember(r.Context(), usecase.RegisterMemberInput{
		ID:    req.ID,
		Email: req.Email,
		Name:  req.Name,
		Role:  req.Role,
		Actor: actor,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to register member", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.MemberFromDomain(member))
}

// Get retrieves a member by ID.
func (h *MemberHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing member ID", "")
		return
	}

	member, err := h.memberUC.GetMember(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get member", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.MemberFromDomain(member))
}

// List lists members.
func (h *MemberHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	members, err := h.memberUC.ListMembers(r.Context(), limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list members", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.MembersFromDomain(members))
}
