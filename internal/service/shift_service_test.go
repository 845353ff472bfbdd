package service

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestCreateShift(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()
	ctx := context.Background()

	owner := mustUser(t, store, "owner")
	worker := mustUser(t, store, "worker")
	group := mustGroup(t, store, owner.ID, "Night Crew")
	workerMembership := mustMember(t, store, worker.ID, group.ID, false)

	shifts := NewShiftService(store)

	shift, err := shifts.Create(ctx, owner.ID, group.ID, workerMembership.ID, hour(9), hour(17))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if shift.UserID != worker.ID {
		t.Errorf("owner: expected %s, got %s", worker.ID, shift.UserID)
	}
	if !shift.StartTime.Equal(hour(9)) || !shift.EndTime.Equal(hour(17)) {
		t.Errorf("interval: got %v to %v", shift.StartTime, shift.EndTime)
	}

	msgs := notifications(t, store, worker.ID)
	if len(msgs) != 1 {
		t.Fatalf("expected 1 notification for the worker, got %d", len(msgs))
	}
}

func TestCreateShift_MergesOverlap(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()
	ctx := context.Background()

	owner := mustUser(t, store, "owner")
	worker := mustUser(t, store, "worker")
	group := mustGroup(t, store, owner.ID, "Night Crew")
	workerMembership := mustMember(t, store, worker.ID, group.ID, false)

	shifts := NewShiftService(store)

	first, err := shifts.Create(ctx, owner.ID, group.ID, workerMembership.ID, hour(9), hour(17))
	if err != nil {
		t.Fatalf("first Create failed: %v", err)
	}

	second, err := shifts.Create(ctx, owner.ID, group.ID, workerMembership.ID, hour(15), hour(20))
	if err != nil {
		t.Fatalf("second Create failed: %v", err)
	}

	// One continuous block covering both intervals.
	if !second.StartTime.Equal(hour(9)) || !second.EndTime.Equal(hour(20)) {
		t.Errorf("merged interval: expected 09:00 to 20:00, got %v to %v", second.StartTime, second.EndTime)
	}

	// The superseded record is gone.
	if _, err := store.GetShift(ctx, first.ID); err == nil {
		t.Error("expected first shift to be deleted after merge")
	}

	active, err := store.ListActiveShifts(ctx, worker.ID, time.Now())
	if err != nil {
		t.Fatalf("ListActiveShifts failed: %v", err)
	}
	if len(active) != 1 {
		t.Fatalf("expected exactly 1 active shift, got %d", len(active))
	}
}

func TestCreateShift_Gating(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()
	ctx := context.Background()

	owner := mustUser(t, store, "owner")
	worker := mustUser(t, store, "worker")
	outsider := mustUser(t, store, "outsider")
	waiting := mustUser(t, store, "waiting")
	group := mustGroup(t, store, owner.ID, "Night Crew")
	workerMembership := mustMember(t, store, worker.ID, group.ID, false)
	mustPending(t, store, waiting.ID, group.ID)

	shifts := NewShiftService(store)

	t.Run("regular member cannot create", func(t *testing.T) {
		_, err := shifts.Create(ctx, worker.ID, group.ID, workerMembership.ID, hour(9), hour(17))
		if !errors.Is(err, ErrForbidden) {
			t.Errorf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("pending member cannot create", func(t *testing.T) {
		_, err := shifts.Create(ctx, waiting.ID, group.ID, workerMembership.ID, hour(9), hour(17))
		if !errors.Is(err, ErrForbidden) {
			t.Errorf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("non-member cannot create", func(t *testing.T) {
		_, err := shifts.Create(ctx, outsider.ID, group.ID, workerMembership.ID, hour(9), hour(17))
		if !errors.Is(err, ErrForbidden) {
			t.Errorf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("reversed interval rejected", func(t *testing.T) {
		_, err := shifts.Create(ctx, owner.ID, group.ID, workerMembership.ID, hour(17), hour(9))
		if !errors.Is(err, ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("unapproved target rejected", func(t *testing.T) {
		pending, err := store.GetMembershipByUserGroup(ctx, waiting.ID, group.ID)
		if err != nil {
			t.Fatalf("failed to fetch pending membership: %v", err)
		}
		_, err = shifts.Create(ctx, owner.ID, group.ID, pending.ID, hour(9), hour(17))
		if !errors.Is(err, ErrForbidden) {
			t.Errorf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("missing target membership", func(t *testing.T) {
		_, err := shifts.Create(ctx, owner.ID, group.ID, "nonexistent-id", hour(9), hour(17))
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestModifyShift_SameOwner(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()
	ctx := context.Background()

	owner := mustUser(t, store, "owner")
	worker := mustUser(t, store, "worker")
	group := mustGroup(t, store, owner.ID, "Night Crew")
	workerMembership := mustMember(t, store, worker.ID, group.ID, false)

	shifts := NewShiftService(store)

	shift, err := shifts.Create(ctx, owner.ID, group.ID, workerMembership.ID, hour(9), hour(17))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	updated, err := shifts.Modify(ctx, owner.ID, shift.ID, workerMembership.ID, hour(10), hour(18))
	if err != nil {
		t.Fatalf("Modify failed: %v", err)
	}

	if !updated.StartTime.Equal(hour(10)) || !updated.EndTime.Equal(hour(18)) {
		t.Errorf("interval: expected 10:00 to 18:00, got %v to %v", updated.StartTime, updated.EndTime)
	}
	if updated.UserID != worker.ID {
		t.Errorf("owner should be unchanged, got %s", updated.UserID)
	}

	// One notification for create, one for the edit.
	msgs := notifications(t, store, worker.ID)
	if len(msgs) != 2 {
		t.Fatalf("expected 2 notifications, got %d: %v", len(msgs), msgs)
	}
}

func TestModifyShift_OwnerChange(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()
	ctx := context.Background()

	owner := mustUser(t, store, "owner")
	alice := mustUser(t, store, "alice")
	bob := mustUser(t, store, "bob")
	group := mustGroup(t, store, owner.ID, "Night Crew")
	aliceMembership := mustMember(t, store, alice.ID, group.ID, false)
	bobMembership := mustMember(t, store, bob.ID, group.ID, false)

	shifts := NewShiftService(store)

	shift, err := shifts.Create(ctx, owner.ID, group.ID, aliceMembership.ID, hour(9), hour(17))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	updated, err := shifts.Modify(ctx, owner.ID, shift.ID, bobMembership.ID, hour(9), hour(17))
	if err != nil {
		t.Fatalf("Modify failed: %v", err)
	}
	if updated.UserID != bob.ID {
		t.Errorf("expected shift reassigned to bob, got %s", updated.UserID)
	}

	// Alice: create + unassigned. Bob: assigned.
	if msgs := notifications(t, store, alice.ID); len(msgs) != 2 {
		t.Errorf("expected 2 notifications for alice, got %d: %v", len(msgs), msgs)
	}
	if msgs := notifications(t, store, bob.ID); len(msgs) != 1 {
		t.Errorf("expected 1 notification for bob, got %d: %v", len(msgs), msgs)
	}
}

func TestModifyShift_MergesAgainstNewOwner(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()
	ctx := context.Background()

	owner := mustUser(t, store, "owner")
	alice := mustUser(t, store, "alice")
	bob := mustUser(t, store, "bob")
	group := mustGroup(t, store, owner.ID, "Night Crew")
	aliceMembership := mustMember(t, store, alice.ID, group.ID, false)
	bobMembership := mustMember(t, store, bob.ID, group.ID, false)

	shifts := NewShiftService(store)

	bobShift, err := shifts.Create(ctx, owner.ID, group.ID, bobMembership.ID, hour(17), hour(20))
	if err != nil {
		t.Fatalf("Create for bob failed: %v", err)
	}
	aliceShift, err := shifts.Create(ctx, owner.ID, group.ID, aliceMembership.ID, hour(9), hour(17))
	if err != nil {
		t.Fatalf("Create for alice failed: %v", err)
	}

	updated, err := shifts.Modify(ctx, owner.ID, aliceShift.ID, bobMembership.ID, hour(9), hour(17))
	if err != nil {
		t.Fatalf("Modify failed: %v", err)
	}

	if !updated.StartTime.Equal(hour(9)) || !updated.EndTime.Equal(hour(20)) {
		t.Errorf("merged interval: expected 09:00 to 20:00, got %v to %v", updated.StartTime, updated.EndTime)
	}
	if _, err := store.GetShift(ctx, bobShift.ID); err == nil {
		t.Error("expected bob's old shift to be merged away")
	}
}

func TestDeleteShift(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()
	ctx := context.Background()

	owner := mustUser(t, store, "owner")
	worker := mustUser(t, store, "worker")
	group := mustGroup(t, store, owner.ID, "Night Crew")
	workerMembership := mustMember(t, store, worker.ID, group.ID, false)

	shifts := NewShiftService(store)

	shift, err := shifts.Create(ctx, owner.ID, group.ID, workerMembership.ID, hour(9), hour(17))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := shifts.Delete(ctx, owner.ID, shift.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if _, err := store.GetShift(ctx, shift.ID); err == nil {
		t.Error("expected shift to be deleted")
	}

	// Create + removal notices.
	if msgs := notifications(t, store, worker.ID); len(msgs) != 2 {
		t.Errorf("expected 2 notifications, got %d: %v", len(msgs), msgs)
	}
}

func TestDeleteShift_UnassignedIsSilent(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()
	ctx := context.Background()

	owner := mustUser(t, store, "owner")
	group := mustGroup(t, store, owner.ID, "Night Crew")

	// An ownerless slot, seeded directly.
	slot := unassignedShift(t, store, group.ID)

	shifts := NewShiftService(store)
	if err := shifts.Delete(ctx, owner.ID, slot.ID); err != nil {
		t.Fatalf("Delete of unassigned shift failed: %v", err)
	}

	if msgs := notifications(t, store, owner.ID); len(msgs) != 0 {
		t.Errorf("expected no notifications, got %v", msgs)
	}
}

func TestListShifts_RoleGating(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()
	ctx := context.Background()

	owner := mustUser(t, store, "owner")
	waiting := mustUser(t, store, "waiting")
	group := mustGroup(t, store, owner.ID, "Night Crew")
	mustPending(t, store, waiting.ID, group.ID)

	shifts := NewShiftService(store)

	if _, err := shifts.List(ctx, waiting.ID, group.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden for pending member, got %v", err)
	}
	if _, err := shifts.List(ctx, owner.ID, group.ID); err != nil {
		t.Errorf("expected owner to list shifts, got %v", err)
	}
}
