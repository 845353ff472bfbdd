package service

import (
	"context"
	"errors"
	"testing"

	"github.com/mkale/rosterd/internal/storage"
)

func TestRequestJoin(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()
	ctx := context.Background()
	svc := NewMembershipService(store)

	owner := mustUser(t, store, "owner")
	alice := mustUser(t, store, "alice")
	group := mustGroup(t, store, owner.ID, "Day Crew")

	m, err := svc.RequestJoin(ctx, alice.ID, group.ID)
	if err != nil {
		t.Fatalf("RequestJoin failed: %v", err)
	}
	if m.Approved || m.Admin {
		t.Error("expected a fresh request to be pending and unprivileged")
	}

	t.Run("duplicate request conflicts", func(t *testing.T) {
		if _, err := svc.RequestJoin(ctx, alice.ID, group.ID); !errors.Is(err, ErrConflict) {
			t.Errorf("expected ErrConflict, got %v", err)
		}
	})

	t.Run("existing member conflicts", func(t *testing.T) {
		if _, err := svc.RequestJoin(ctx, owner.ID, group.ID); !errors.Is(err, ErrConflict) {
			t.Errorf("expected ErrConflict, got %v", err)
		}
	})

	t.Run("missing group", func(t *testing.T) {
		if _, err := svc.RequestJoin(ctx, alice.ID, "nonexistent-id"); !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestApproveJoin(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()
	ctx := context.Background()
	svc := NewMembershipService(store)

	owner := mustUser(t, store, "owner")
	alice := mustUser(t, store, "alice")
	group := mustGroup(t, store, owner.ID, "Day Crew")
	pending := mustPending(t, store, alice.ID, group.ID)

	if err := svc.ApproveJoin(ctx, owner.ID, pending.ID); err != nil {
		t.Fatalf("ApproveJoin failed: %v", err)
	}

	m, err := store.GetMembership(ctx, pending.ID)
	if err != nil {
		t.Fatalf("GetMembership failed: %v", err)
	}
	if !m.Approved {
		t.Error("expected the membership to be approved")
	}

	if msgs := notifications(t, store, alice.ID); len(msgs) != 1 {
		t.Errorf("expected 1 notification for alice, got %d: %v", len(msgs), msgs)
	}

	t.Run("re-approval conflicts", func(t *testing.T) {
		if err := svc.ApproveJoin(ctx, owner.ID, pending.ID); !errors.Is(err, ErrConflict) {
			t.Errorf("expected ErrConflict, got %v", err)
		}
	})
}

func TestApproveJoin_RequiresAdmin(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()
	ctx := context.Background()
	svc := NewMembershipService(store)

	owner := mustUser(t, store, "owner")
	alice := mustUser(t, store, "alice")
	bob := mustUser(t, store, "bob")
	group := mustGroup(t, store, owner.ID, "Day Crew")
	mustMember(t, store, bob.ID, group.ID, false)
	pending := mustPending(t, store, alice.ID, group.ID)

	if err := svc.ApproveJoin(ctx, bob.ID, pending.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden for a plain member, got %v", err)
	}
}

func TestDeclineJoin(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()
	ctx := context.Background()
	svc := NewMembershipService(store)

	owner := mustUser(t, store, "owner")
	alice := mustUser(t, store, "alice")
	group := mustGroup(t, store, owner.ID, "Day Crew")
	pending := mustPending(t, store, alice.ID, group.ID)

	if err := svc.DeclineJoin(ctx, owner.ID, pending.ID); err != nil {
		t.Fatalf("DeclineJoin failed: %v", err)
	}

	if _, err := store.GetMembership(ctx, pending.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected the membership to be deleted, got %v", err)
	}
	if msgs := notifications(t, store, alice.ID); len(msgs) != 1 {
		t.Errorf("expected 1 notification for alice, got %d: %v", len(msgs), msgs)
	}

	t.Run("owner membership is protected", func(t *testing.T) {
		admin := mustUser(t, store, "admin")
		mustMember(t, store, admin.ID, group.ID, true)

		ownerMembership, err := store.GetMembershipByUserGroup(ctx, owner.ID, group.ID)
		if err != nil {
			t.Fatalf("GetMembershipByUserGroup failed: %v", err)
		}
		if err := svc.DeclineJoin(ctx, admin.ID, ownerMembership.ID); !errors.Is(err, ErrForbidden) {
			t.Errorf("expected ErrForbidden, got %v", err)
		}
	})
}

func TestSetAdmin(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()
	ctx := context.Background()
	svc := NewMembershipService(store)

	owner := mustUser(t, store, "owner")
	alice := mustUser(t, store, "alice")
	bob := mustUser(t, store, "bob")
	group := mustGroup(t, store, owner.ID, "Day Crew")
	aliceMembership := mustMember(t, store, alice.ID, group.ID, false)
	mustMember(t, store, bob.ID, group.ID, true)

	if err := svc.SetAdmin(ctx, owner.ID, aliceMembership.ID, true); err != nil {
		t.Fatalf("SetAdmin failed: %v", err)
	}
	m, err := store.GetMembership(ctx, aliceMembership.ID)
	if err != nil {
		t.Fatalf("GetMembership failed: %v", err)
	}
	if !m.Admin {
		t.Error("expected alice to be promoted")
	}

	t.Run("revoke", func(t *testing.T) {
		if err := svc.SetAdmin(ctx, owner.ID, aliceMembership.ID, false); err != nil {
			t.Fatalf("SetAdmin failed: %v", err)
		}
		m, err := store.GetMembership(ctx, aliceMembership.ID)
		if err != nil {
			t.Fatalf("GetMembership failed: %v", err)
		}
		if m.Admin {
			t.Error("expected alice to be demoted")
		}
	})

	t.Run("admins cannot promote", func(t *testing.T) {
		if err := svc.SetAdmin(ctx, bob.ID, aliceMembership.ID, true); !errors.Is(err, ErrForbidden) {
			t.Errorf("expected ErrForbidden for a non-owner admin, got %v", err)
		}
	})

	t.Run("owner membership is immutable", func(t *testing.T) {
		ownerMembership, err := store.GetMembershipByUserGroup(ctx, owner.ID, group.ID)
		if err != nil {
			t.Fatalf("GetMembershipByUserGroup failed: %v", err)
		}
		if err := svc.SetAdmin(ctx, owner.ID, ownerMembership.ID, false); !errors.Is(err, ErrForbidden) {
			t.Errorf("expected ErrForbidden, got %v", err)
		}
	})
}
