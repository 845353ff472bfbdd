package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mkale/rosterd/internal/models"
	"github.com/mkale/rosterd/internal/schedule"
	"github.com/mkale/rosterd/internal/storage"
)

// recentWindow is how far back group schedule listings reach.
const recentWindow = 24 * time.Hour

// ShiftService manages the lifecycle of shift assignments. Every mutation
// runs in a single transaction: the overlap scan, the deletion of superseded
// shifts, the shift write and the notification records commit together.
type ShiftService struct {
	store   storage.Store
	emitter *Emitter
}

// NewShiftService creates a new ShiftService with the given storage backend.
func NewShiftService(store storage.Store) *ShiftService {
	return &ShiftService{store: store, emitter: &Emitter{}}
}

// Create schedules a shift for the member identified by ownerMembershipID.
// The caller must be an admin of the group; the target membership must be
// approved. Overlapping or adjacent shifts already held by the target owner
// are coalesced into the new record.
func (s *ShiftService) Create(ctx context.Context, callerID, groupID, ownerMembershipID string, start, end time.Time) (*models.Shift, error) {
	window := schedule.Window{Start: start, End: end}
	if !window.Valid() {
		return nil, fmt.Errorf("%w: shift must end after it starts", ErrInvalidInput)
	}

	var created *models.Shift
	err := s.store.InTx(ctx, func(tx storage.Store) error {
		group, err := tx.GetGroup(ctx, groupID)
		if err != nil {
			return notFound(err, "group does not exist")
		}

		role, err := resolveRole(ctx, tx, callerID, group)
		if err != nil {
			return err
		}
		if !role.AtLeast(models.RoleAdmin) {
			return fmt.Errorf("%w: only group admins can create shifts", ErrForbidden)
		}

		target, err := tx.GetMembership(ctx, ownerMembershipID)
		if err != nil {
			return notFound(err, "member does not exist")
		}
		if target.GroupID != group.ID {
			return fmt.Errorf("%w: member does not belong to this group", ErrNotFound)
		}
		if !target.Approved {
			return fmt.Errorf("%w: member has not been approved", ErrForbidden)
		}

		shift := &models.Shift{GroupID: group.ID, UserID: target.UserID}
		if err := s.mergeAndWrite(ctx, tx, shift, window, ""); err != nil {
			return err
		}

		s.emitter.Emit(ctx, tx, shift.UserID,
			fmt.Sprintf("You have been assigned a shift in %s: %s.", group.Name, timeRange(shift.StartTime, shift.EndTime)))

		created = shift
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("shift created", "shift_id", created.ID, "group_id", groupID, "user_id", created.UserID)
	return created, nil
}

// Modify changes a shift's owner and/or interval. The overlap scan runs
// against the new owner's schedule. If ownership changes, both the previous
// and the new owner are notified; otherwise the owner gets a single update
// message describing the change.
func (s *ShiftService) Modify(ctx context.Context, callerID, shiftID, ownerMembershipID string, start, end time.Time) (*models.Shift, error) {
	window := schedule.Window{Start: start, End: end}
	if !window.Valid() {
		return nil, fmt.Errorf("%w: shift must end after it starts", ErrInvalidInput)
	}

	var updated *models.Shift
	err := s.store.InTx(ctx, func(tx storage.Store) error {
		shift, err := tx.GetShift(ctx, shiftID)
		if err != nil {
			return notFound(err, "shift does not exist")
		}
		previous := *shift

		group, err := tx.GetGroup(ctx, shift.GroupID)
		if err != nil {
			return notFound(err, "group does not exist")
		}

		role, err := resolveRole(ctx, tx, callerID, group)
		if err != nil {
			return err
		}
		if !role.AtLeast(models.RoleAdmin) {
			return fmt.Errorf("%w: only group admins can edit shifts", ErrForbidden)
		}

		target, err := tx.GetMembership(ctx, ownerMembershipID)
		if err != nil {
			return notFound(err, "member does not exist")
		}
		if target.GroupID != group.ID {
			return fmt.Errorf("%w: member does not belong to this group", ErrNotFound)
		}
		if !target.Approved {
			return fmt.Errorf("%w: member has not been approved", ErrForbidden)
		}

		shift.UserID = target.UserID
		if err := s.mergeAndWrite(ctx, tx, shift, window, shift.ID); err != nil {
			return err
		}

		if previous.UserID == shift.UserID {
			s.emitter.Emit(ctx, tx, shift.UserID,
				fmt.Sprintf("Your shift in %s was changed from %s to %s.",
					group.Name, timeRange(previous.StartTime, previous.EndTime), timeRange(shift.StartTime, shift.EndTime)))
		} else {
			s.emitter.Emit(ctx, tx, previous.UserID,
				fmt.Sprintf("You have been unassigned from your shift in %s (%s).",
					group.Name, timeRange(previous.StartTime, previous.EndTime)))
			s.emitter.Emit(ctx, tx, shift.UserID,
				fmt.Sprintf("You have been assigned a shift in %s: %s.",
					group.Name, timeRange(shift.StartTime, shift.EndTime)))
		}

		updated = shift
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("shift updated", "shift_id", shiftID, "user_id", updated.UserID)
	return updated, nil
}

// Delete removes a shift and notifies its assigned owner. Deleting an
// ownerless slot emits nothing.
func (s *ShiftService) Delete(ctx context.Context, callerID, shiftID string) error {
	err := s.store.InTx(ctx, func(tx storage.Store) error {
		shift, err := tx.GetShift(ctx, shiftID)
		if err != nil {
			return notFound(err, "shift does not exist")
		}

		group, err := tx.GetGroup(ctx, shift.GroupID)
		if err != nil {
			return notFound(err, "group does not exist")
		}

		role, err := resolveRole(ctx, tx, callerID, group)
		if err != nil {
			return err
		}
		if !role.AtLeast(models.RoleAdmin) {
			return fmt.Errorf("%w: only group admins can delete shifts", ErrForbidden)
		}

		if err := tx.DeleteShift(ctx, shift.ID); err != nil {
			return err
		}

		s.emitter.Emit(ctx, tx, shift.UserID,
			fmt.Sprintf("Your shift in %s (%s) was removed.", group.Name, timeRange(shift.StartTime, shift.EndTime)))
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("shift deleted", "shift_id", shiftID)
	return nil
}

// List returns the group's recent schedule (shifts ending within the last 24
// hours or later). The caller must be an approved member.
func (s *ShiftService) List(ctx context.Context, callerID, groupID string) ([]models.Shift, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, notFound(err, "group does not exist")
	}

	role, err := resolveRole(ctx, s.store, callerID, group)
	if err != nil {
		return nil, err
	}
	if !role.Approved() {
		return nil, fmt.Errorf("%w: membership not approved", ErrForbidden)
	}

	return s.store.ListGroupShifts(ctx, groupID, time.Now().Add(-recentWindow))
}

// mergeAndWrite coalesces the window with the owner's active shifts, deletes
// the superseded records and writes the (possibly widened) shift. excludeID
// keeps the shift being edited out of its own merge scan. Unassigned slots
// skip the scan entirely.
func (s *ShiftService) mergeAndWrite(ctx context.Context, tx storage.Store, shift *models.Shift, window schedule.Window, excludeID string) error {
	final := window
	if shift.UserID != "" {
		now := time.Now()
		existing, err := tx.ListActiveShifts(ctx, shift.UserID, now)
		if err != nil {
			return err
		}
		if excludeID != "" {
			kept := existing[:0]
			for _, sh := range existing {
				if sh.ID != excludeID {
					kept = append(kept, sh)
				}
			}
			existing = kept
		}

		var superseded []string
		final, superseded = schedule.Merge(window, existing, now)
		for _, id := range superseded {
			if err := tx.DeleteShift(ctx, id); err != nil {
				return err
			}
		}
	}

	shift.StartTime = final.Start
	shift.EndTime = final.End
	if shift.ID == "" {
		return tx.CreateShift(ctx, shift)
	}
	return tx.UpdateShift(ctx, shift)
}
