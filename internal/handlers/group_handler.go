package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mkale/rosterd/internal/middleware"
)

type createGroupRequest struct {
	Name string `json:"name"`
}

type groupDetailsResponse struct {
	Group           groupJSON    `json:"group"`
	Role            string       `json:"role"`
	Members         []memberJSON `json:"members"`
	PendingRequests []memberJSON `json:"membership_requests,omitempty"`
}

type myGroupsResponse struct {
	Owned  []groupJSON `json:"my_groups"`
	Joined []groupJSON `json:"groups"`
}

func (h *Handlers) createGroup(w http.ResponseWriter, r *http.Request) {
	var req createGroupRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	group, err := h.Groups.Create(r.Context(), middleware.GetUserID(r.Context()), req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toGroup(group))
}

func (h *Handlers) getGroup(w http.ResponseWriter, r *http.Request) {
	details, err := h.Groups.Get(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "groupID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, groupDetailsResponse{
		Group:           toGroup(details.Group),
		Role:            details.Role.String(),
		Members:         toMembers(details.Members),
		PendingRequests: toMembers(details.PendingRequests),
	})
}

func (h *Handlers) listMyGroups(w http.ResponseWriter, r *http.Request) {
	owned, joined, err := h.Groups.ListMine(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, myGroupsResponse{Owned: toGroups(owned), Joined: toGroups(joined)})
}

func (h *Handlers) searchGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.Groups.Search(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toGroups(groups))
}

func (h *Handlers) deleteGroup(w http.ResponseWriter, r *http.Request) {
	err := h.Groups.Delete(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "groupID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
