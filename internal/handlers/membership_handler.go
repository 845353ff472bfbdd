package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mkale/rosterd/internal/middleware"
	"github.com/mkale/rosterd/internal/service"
)

type setAdminRequest struct {
	Admin *bool `json:"admin"`
}

func (h *Handlers) requestJoin(w http.ResponseWriter, r *http.Request) {
	m, err := h.Memberships.RequestJoin(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "groupID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"membership_id": m.ID})
}

func (h *Handlers) approveJoin(w http.ResponseWriter, r *http.Request) {
	err := h.Memberships.ApproveJoin(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "membershipID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "membership approved"})
}

func (h *Handlers) declineJoin(w http.ResponseWriter, r *http.Request) {
	err := h.Memberships.DeclineJoin(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "membershipID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "membership declined"})
}

func (h *Handlers) setAdmin(w http.ResponseWriter, r *http.Request) {
	var req setAdminRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Admin == nil {
		writeError(w, service.ErrInvalidInput)
		return
	}

	err := h.Memberships.SetAdmin(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "membershipID"), *req.Admin)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "admin status updated"})
}
