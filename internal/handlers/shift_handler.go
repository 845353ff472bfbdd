package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mkale/rosterd/internal/middleware"
	"github.com/mkale/rosterd/internal/service"
)

type shiftRequest struct {
	OwnerMembershipID string `json:"shift_owner_membership_id"`
	StartTime         string `json:"start_time"`
	EndTime           string `json:"end_time"`
}

func (req *shiftRequest) interval() (start, end time.Time, err error) {
	start, err = time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return start, end, fmt.Errorf("%w: start_time must be RFC 3339", service.ErrInvalidInput)
	}
	end, err = time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		return start, end, fmt.Errorf("%w: end_time must be RFC 3339", service.ErrInvalidInput)
	}
	return start, end, nil
}

func (h *Handlers) listShifts(w http.ResponseWriter, r *http.Request) {
	shifts, err := h.Shifts.List(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "groupID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toShifts(shifts))
}

func (h *Handlers) createShift(w http.ResponseWriter, r *http.Request) {
	var req shiftRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	start, end, err := req.interval()
	if err != nil {
		writeError(w, err)
		return
	}

	shift, err := h.Shifts.Create(r.Context(),
		middleware.GetUserID(r.Context()), chi.URLParam(r, "groupID"), req.OwnerMembershipID, start, end)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toShift(shift))
}

func (h *Handlers) modifyShift(w http.ResponseWriter, r *http.Request) {
	var req shiftRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	start, end, err := req.interval()
	if err != nil {
		writeError(w, err)
		return
	}

	shift, err := h.Shifts.Modify(r.Context(),
		middleware.GetUserID(r.Context()), chi.URLParam(r, "shiftID"), req.OwnerMembershipID, start, end)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toShift(shift))
}

func (h *Handlers) deleteShift(w http.ResponseWriter, r *http.Request) {
	err := h.Shifts.Delete(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "shiftID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
