package handler

import (
	"net/http"
	"time"

	"github.com/oseme/esusu/internal/adapter/http/dto"
	"github.com/oseme/esusu/internal/domain"
	"github.com/oseme/esusu/internal/usecase"
)

// ActivityHandler handles activity-log HTTP requests.
type ActivityHandler struct {
	activityUC *usecase.ActivityUseCase
}

// NewActivityHandler creates a new ActivityHandler.
func NewActivityHandler(activityUC *usecase.ActivityUseCase) *ActivityHandler {
	return &ActivityHandler{activityUC: activityUC}
}

// List lists activity entries, newest first. Supports actor_id,
// action, start_date and end_date (RFC 3339) filters.
func (h *ActivityHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := domain.ActivityFilter{
		ActorID: r.URL.Query().Get("actor_id"),
		Action:  r.URL.Query().Get("action"),
		Limit:   parseIntQuery(r, "limit", 20),
		Offset:  parseIntQuery(r, "offset", 0),
	}

	if v := r.URL.Query().Get("start_date"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid start_date", err.Error())
			return
		}
		filter.StartDate = &t
	}

	if v := r.URL.Query().Get("end_date"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid end_date", err.Error())
			return
		}
		filter.EndDate = &t
	}

	entries, err := h.activityUC.ListActivity(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list activity", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ActivitiesFromDomain(entries))
}
