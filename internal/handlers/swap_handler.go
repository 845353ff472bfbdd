package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mkale/rosterd/internal/middleware"
)

type declineSwapRequest struct {
	// DeleteRequest distinguishes "reopen the swap" (false) from "remove the
	// record" (true). Absent is only valid for the withdrawing candidate.
	DeleteRequest *bool `json:"delete_request"`
}

func (h *Handlers) openSwap(w http.ResponseWriter, r *http.Request) {
	swap, err := h.Swaps.Open(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "shiftID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toSwap(swap))
}

func (h *Handlers) linkSwap(w http.ResponseWriter, r *http.Request) {
	swap, err := h.Swaps.Link(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "swapID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSwap(swap))
}

func (h *Handlers) approveSwap(w http.ResponseWriter, r *http.Request) {
	swap, err := h.Swaps.Approve(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "swapID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSwap(swap))
}

func (h *Handlers) declineSwap(w http.ResponseWriter, r *http.Request) {
	var req declineSwapRequest
	if r.ContentLength > 0 {
		if err := decode(r, &req); err != nil {
			writeError(w, err)
			return
		}
	}

	err := h.Swaps.Decline(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "swapID"), req.DeleteRequest)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "swap declined"})
}
