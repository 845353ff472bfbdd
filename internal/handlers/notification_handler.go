package handlers

import (
	"net/http"

	"github.com/mkale/rosterd/internal/middleware"
)

func (h *Handlers) listNotifications(w http.ResponseWriter, r *http.Request) {
	notifications, err := h.Notifications.List(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toNotifications(notifications))
}

func (h *Handlers) readAllNotifications(w http.ResponseWriter, r *http.Request) {
	err := h.Notifications.MarkAllRead(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "all notifications marked read"})
}
