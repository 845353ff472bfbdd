package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mkale/rosterd/internal/models"
	"github.com/mkale/rosterd/internal/schedule"
	"github.com/mkale/rosterd/internal/storage"
)

// SwapService drives a shift through the swap negotiation protocol:
// open -> linked -> approved (ownership transfers) or declined/unlinked.
//
// A swap opened by any approved member snapshots the shift's owner at that
// instant. A candidate who links themself resolves immediately when either
// party holds admin authority; otherwise the swap waits for explicit admin
// approval. At most one unresolved swap may exist per shift.
type SwapService struct {
	store   storage.Store
	emitter *Emitter
	shifts  *ShiftService
}

// NewSwapService creates a new SwapService with the given storage backend.
func NewSwapService(store storage.Store) *SwapService {
	return &SwapService{store: store, emitter: &Emitter{}, shifts: NewShiftService(store)}
}

// Open starts a swap negotiation on a shift. Any approved member of the
// shift's group may open one; the shift's live owner is snapshotted as the
// swap's current owner.
func (s *SwapService) Open(ctx context.Context, callerID, shiftID string) (*models.ShiftSwap, error) {
	var swap *models.ShiftSwap
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
		if !role.Approved() {
			return fmt.Errorf("%w: membership not approved", ErrForbidden)
		}

		if _, err := tx.GetUnresolvedSwapForShift(ctx, shift.ID); err == nil {
			return fmt.Errorf("%w: a swap is already open for this shift", ErrConflict)
		} else if !errors.Is(err, storage.ErrNotFound) {
			return err
		}

		swap = &models.ShiftSwap{ShiftID: shift.ID, CurrentOwnerID: shift.UserID}
		return tx.CreateSwap(ctx, swap)
	})
	if err != nil {
		return nil, err
	}

	slog.Info("swap opened", "swap_id", swap.ID, "shift_id", shiftID)
	return swap, nil
}

// Link claims an open swap for the caller. If either the caller or the
// swap's current owner holds admin authority, the swap resolves on the spot:
// the shift merges into the caller's schedule and the previous owner is told
// they were unassigned. Otherwise the swap stays linked awaiting admin
// approval and the shift's owner is told about the pending request.
func (s *SwapService) Link(ctx context.Context, callerID, swapID string) (*models.ShiftSwap, error) {
	var linked *models.ShiftSwap
	err := s.store.InTx(ctx, func(tx storage.Store) error {
		swap, err := tx.GetSwap(ctx, swapID)
		if err != nil {
			return notFound(err, "swap does not exist")
		}
		if swap.Resolved() {
			return fmt.Errorf("%w: swap has already been resolved", ErrConflict)
		}
		if swap.Linked() {
			return fmt.Errorf("%w: swap has already been claimed", ErrConflict)
		}

		shift, err := tx.GetShift(ctx, swap.ShiftID)
		if err != nil {
			return notFound(err, "shift does not exist")
		}

		group, err := tx.GetGroup(ctx, shift.GroupID)
		if err != nil {
			return notFound(err, "group does not exist")
		}

		callerRole, err := resolveRole(ctx, tx, callerID, group)
		if err != nil {
			return err
		}
		if !callerRole.Approved() {
			return fmt.Errorf("%w: membership not approved", ErrForbidden)
		}

		swap.NewOwnerID = callerID

		// Fast path: a swap with an admin on either side needs no further
		// sign-off.
		ownerRole := models.RoleNone
		if swap.CurrentOwnerID != "" {
			ownerRole, err = resolveRole(ctx, tx, swap.CurrentOwnerID, group)
			if err != nil {
				return err
			}
		}

		if callerRole.AtLeast(models.RoleAdmin) || ownerRole.AtLeast(models.RoleAdmin) {
			if callerRole.AtLeast(models.RoleAdmin) {
				swap.ApprovedByAdminID = callerID
			} else {
				swap.ApprovedByAdminID = swap.CurrentOwnerID
			}
			if err := s.transfer(ctx, tx, group, shift, swap, false); err != nil {
				return err
			}
		} else {
			if err := tx.UpdateSwap(ctx, swap); err != nil {
				return err
			}
			s.emitter.Emit(ctx, tx, shift.UserID,
				fmt.Sprintf("A member offered to take your shift in %s (%s). Awaiting admin approval.",
					group.Name, timeRange(shift.StartTime, shift.EndTime)))
		}

		linked = swap
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("swap linked", "swap_id", swapID, "new_owner_id", callerID, "resolved", linked.Resolved())
	return linked, nil
}

// Approve resolves a linked swap. The caller must be a group admin; the
// shift transfers to the linked candidate and the candidate's schedule is
// overlap-checked during the transfer. Both parties are notified.
func (s *SwapService) Approve(ctx context.Context, callerID, swapID string) (*models.ShiftSwap, error) {
	var approved *models.ShiftSwap
	err := s.store.InTx(ctx, func(tx storage.Store) error {
		swap, err := tx.GetSwap(ctx, swapID)
		if err != nil {
			return notFound(err, "swap does not exist")
		}
		if swap.Resolved() {
			return fmt.Errorf("%w: swap has already been resolved", ErrConflict)
		}
		if !swap.Linked() {
			return fmt.Errorf("%w: swap has no candidate to approve", ErrInvalidInput)
		}

		shift, err := tx.GetShift(ctx, swap.ShiftID)
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
			return fmt.Errorf("%w: only group admins can approve swaps", ErrForbidden)
		}

		swap.ApprovedByAdminID = callerID
		if err := s.transfer(ctx, tx, group, shift, swap, true); err != nil {
			return err
		}

		approved = swap
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("swap approved", "swap_id", swapID, "approved_by", callerID)
	return approved, nil
}

// Decline walks a swap back. The linked candidate may withdraw themself; the
// current owner or an admin may either reopen the swap (deleteRequest false)
// or delete the record entirely (deleteRequest true). Declining without a
// deleteRequest decision is only valid for the withdrawing candidate.
func (s *SwapService) Decline(ctx context.Context, callerID, swapID string, deleteRequest *bool) error {
	err := s.store.InTx(ctx, func(tx storage.Store) error {
		swap, err := tx.GetSwap(ctx, swapID)
		if err != nil {
			return notFound(err, "swap does not exist")
		}
		if swap.Resolved() {
			return fmt.Errorf("%w: swap has already been resolved", ErrConflict)
		}

		shift, err := tx.GetShift(ctx, swap.ShiftID)
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
		isParty := callerID == swap.CurrentOwnerID || (swap.Linked() && callerID == swap.NewOwnerID)
		if !role.AtLeast(models.RoleAdmin) && !isParty {
			return fmt.Errorf("%w: not a party to this swap", ErrForbidden)
		}

		// The linked candidate withdrawing themself.
		if swap.Linked() && callerID == swap.NewOwnerID {
			swap.NewOwnerID = ""
			if err := tx.UpdateSwap(ctx, swap); err != nil {
				return err
			}
			s.emitter.Emit(ctx, tx, shift.UserID,
				fmt.Sprintf("The candidate for your shift swap in %s withdrew their offer.", group.Name))
			return nil
		}

		if deleteRequest == nil {
			return fmt.Errorf("%w: delete_request is required", ErrInvalidInput)
		}

		if *deleteRequest {
			if err := tx.DeleteSwap(ctx, swap.ID); err != nil {
				return err
			}
			if callerID != shift.UserID {
				s.emitter.Emit(ctx, tx, shift.UserID,
					fmt.Sprintf("The swap request for your shift in %s was removed by an admin.", group.Name))
			}
			return nil
		}

		swap.NewOwnerID = ""
		if err := tx.UpdateSwap(ctx, swap); err != nil {
			return err
		}
		if callerID != shift.UserID {
			s.emitter.Emit(ctx, tx, shift.UserID,
				fmt.Sprintf("The swap request for your shift in %s was declined by an admin.", group.Name))
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("swap declined", "swap_id", swapID, "caller_id", callerID)
	return nil
}

// transfer reassigns the swap's shift to the linked candidate, merging the
// shift into the candidate's schedule, and records the resolution. The
// previous owner is told they were unassigned; on explicit approval
// (notifyNewOwner) the new owner is told as well.
func (s *SwapService) transfer(ctx context.Context, tx storage.Store, group *models.Group, shift *models.Shift, swap *models.ShiftSwap, notifyNewOwner bool) error {
	previousOwner := shift.UserID

	shift.UserID = swap.NewOwnerID
	window := schedule.Window{Start: shift.StartTime, End: shift.EndTime}
	if err := s.shifts.mergeAndWrite(ctx, tx, shift, window, shift.ID); err != nil {
		return err
	}

	if err := tx.UpdateSwap(ctx, swap); err != nil {
		return err
	}

	if previousOwner != swap.NewOwnerID {
		s.emitter.Emit(ctx, tx, previousOwner,
			fmt.Sprintf("Your shift in %s (%s) was reassigned via swap.", group.Name, timeRange(shift.StartTime, shift.EndTime)))
	}
	if notifyNewOwner {
		s.emitter.Emit(ctx, tx, swap.NewOwnerID,
			fmt.Sprintf("You have been assigned a shift in %s via swap: %s.", group.Name, timeRange(shift.StartTime, shift.EndTime)))
	}
	return nil
}
