package handlers

import (
	"time"

	"github.com/mkale/rosterd/internal/models"
	"github.com/mkale/rosterd/internal/service"
)

// Wire representations. Shift bounds travel as RFC 3339 strings; created_at
// fields as Unix seconds, matching the storage convention.

type userJSON struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type groupJSON struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	OwnerID string `json:"owner_id"`
}

type memberJSON struct {
	MembershipID string `json:"id"`
	UserID       string `json:"user_id"`
	Username     string `json:"username"`
	Admin        bool   `json:"admin"`
}

type shiftJSON struct {
	ID        string `json:"id"`
	GroupID   string `json:"group_id"`
	UserID    string `json:"user_id,omitempty"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type swapJSON struct {
	ID                string `json:"id"`
	ShiftID           string `json:"shift_id"`
	CurrentOwnerID    string `json:"current_owner_id,omitempty"`
	NewOwnerID        string `json:"new_owner_id,omitempty"`
	ApprovedByAdminID string `json:"approved_by_admin_id,omitempty"`
}

type notificationJSON struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Message   string `json:"message"`
	Read      bool   `json:"read"`
	CreatedAt int64  `json:"iat"`
}

func toUser(u *models.User) userJSON {
	return userJSON{ID: u.ID, Username: u.Username, Email: u.Email}
}

func toGroup(g *models.Group) groupJSON {
	return groupJSON{ID: g.ID, Name: g.Name, OwnerID: g.OwnerID}
}

func toGroups(groups []models.Group) []groupJSON {
	out := make([]groupJSON, len(groups))
	for i := range groups {
		out[i] = toGroup(&groups[i])
	}
	return out
}

func toMembers(members []service.Member) []memberJSON {
	out := make([]memberJSON, len(members))
	for i, m := range members {
		out[i] = memberJSON{
			MembershipID: m.MembershipID,
			UserID:       m.UserID,
			Username:     m.Username,
			Admin:        m.Admin,
		}
	}
	return out
}

func toShift(s *models.Shift) shiftJSON {
	return shiftJSON{
		ID:        s.ID,
		GroupID:   s.GroupID,
		UserID:    s.UserID,
		StartTime: s.StartTime.Format(time.RFC3339),
		EndTime:   s.EndTime.Format(time.RFC3339),
	}
}

func toShifts(shifts []models.Shift) []shiftJSON {
	out := make([]shiftJSON, len(shifts))
	for i := range shifts {
		out[i] = toShift(&shifts[i])
	}
	return out
}

func toSwap(w *models.ShiftSwap) swapJSON {
	return swapJSON{
		ID:                w.ID,
		ShiftID:           w.ShiftID,
		CurrentOwnerID:    w.CurrentOwnerID,
		NewOwnerID:        w.NewOwnerID,
		ApprovedByAdminID: w.ApprovedByAdminID,
	}
}

func toNotifications(notifications []models.Notification) []notificationJSON {
	out := make([]notificationJSON, len(notifications))
	for i, n := range notifications {
		out[i] = notificationJSON{
			ID:        n.ID,
			UserID:    n.UserID,
			Message:   n.Message,
			Read:      n.Read,
			CreatedAt: n.CreatedAt,
		}
	}
	return out
}
