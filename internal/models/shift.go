package models

import "time"

// Shift is a half-open time interval [StartTime, EndTime) belonging to one
// group and assigned to at most one user. An empty UserID means the slot is
// unassigned.
type Shift struct {
	// ID is the unique identifier for the shift (UUID format).
	ID string

	// GroupID references the owning group.
	GroupID string

	// UserID references the assigned user, or "" for an ownerless slot.
	UserID string

	// StartTime is the inclusive start of the shift.
	StartTime time.Time

	// EndTime is the exclusive end of the shift.
	EndTime time.Time
}

// Active reports whether the shift has not yet ended at the given instant.
// Ended shifts are never considered for overlap merging.
func (s *Shift) Active(now time.Time) bool {
	return !s.EndTime.Before(now)
}

// ShiftSwap is a negotiation record for transferring one shift between
// members.
//
// Lifecycle: open (NewOwnerID empty) -> linked (a candidate claimed it) ->
// resolved (ApprovedByAdminID set, ownership transferred) or back to open
// on decline/unlink. CurrentOwnerID is snapshotted when the swap is opened
// and is not updated if the shift is reassigned afterwards.
type ShiftSwap struct {
	// ID is the unique identifier for the swap (UUID format).
	ID string

	// ShiftID references the shift under negotiation.
	ShiftID string

	// CurrentOwnerID is the shift's assigned owner at the time the swap
	// was opened.
	CurrentOwnerID string

	// NewOwnerID is the member who linked themself to take the shift, or
	// "" while the swap is unclaimed.
	NewOwnerID string

	// ApprovedByAdminID records which admin resolved the swap, or "" while
	// it is still pending. A non-empty value marks the swap as resolved.
	ApprovedByAdminID string
}

// Linked reports whether a candidate has claimed the swap.
func (w *ShiftSwap) Linked() bool { return w.NewOwnerID != "" }

// Resolved reports whether the swap has been approved and the transfer
// completed. Resolved swaps are kept for audit and reject further actions.
func (w *ShiftSwap) Resolved() bool { return w.ApprovedByAdminID != "" }
