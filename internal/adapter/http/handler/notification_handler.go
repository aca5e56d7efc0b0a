package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/oseme/esusu/internal/adapter/http/dto"
	"github.com/oseme/esusu/internal/adapter/http/middleware"
	"github.com/oseme/esusu/internal/usecase"
)

// NotificationHandler handles notification HTTP requests.
type NotificationHandler struct {
	notificationUC *usecase.NotificationUseCase
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(notificationUC *usecase.NotificationUseCase) *NotificationHandler {
	return &NotificationHandler{notificationUC: notificationUC}
}

// List lists the authenticated member's notifications. ?unread=true
// filters to unread ones.
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.MemberFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	unreadOnly := r.URL.Query().Get("unread") == "true"
	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	notifications, err := h.notificationUC.ListNotifications(r.Context(), actor.ID, unreadOnly, limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list notifications", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.NotificationsFromDomain(notifications))
}

// MarkRead marks one of the member's notifications as read.
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.MemberFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing notification ID", "")
		return
	}

	if err := h.notificationUC.MarkRead(r.Context(), id, actor.ID); err != nil {
		writeError(w, mapDomainError(err), "failed to mark notification read", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RunReminders triggers the deposit-reminder sweep. The scheduler
// calls the same use case daily; this endpoint exists for operators.
func (h *NotificationHandler) RunReminders(w http.ResponseWriter, r *http.Request) {
	sent, err := h.notificationUC.SendDepositReminders(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to send reminders", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"sent": sent})
}
