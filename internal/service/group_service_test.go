package service

import (
	"context"
	"errors"
	"testing"

	"github.com/mkale/rosterd/internal/models"
	"github.com/mkale/rosterd/internal/storage"
)

func TestCreateGroup(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()
	ctx := context.Background()
	svc := NewGroupService(store)

	owner := mustUser(t, store, "owner")

	group, err := svc.Create(ctx, owner.ID, "  Night Crew  ")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if group.Name != "Night Crew" {
		t.Errorf("expected trimmed name, got %q", group.Name)
	}
	if group.OwnerID != owner.ID {
		t.Errorf("owner: expected %s, got %s", owner.ID, group.OwnerID)
	}

	m, err := store.GetMembershipByUserGroup(ctx, owner.ID, group.ID)
	if err != nil {
		t.Fatalf("expected a seeded owner membership: %v", err)
	}
	if !m.Admin || !m.Approved {
		t.Error("expected the owner membership to be admin and approved")
	}

	t.Run("empty name", func(t *testing.T) {
		if _, err := svc.Create(ctx, owner.ID, "   "); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})
}

func TestGetGroup(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()
	ctx := context.Background()
	svc := NewGroupService(store)

	owner := mustUser(t, store, "owner")
	alice := mustUser(t, store, "alice")
	waiting := mustUser(t, store, "waiting")
	group := mustGroup(t, store, owner.ID, "Night Crew")
	mustMember(t, store, alice.ID, group.ID, false)
	mustPending(t, store, waiting.ID, group.ID)

	t.Run("owner sees pending requests", func(t *testing.T) {
		details, err := svc.Get(ctx, owner.ID, group.ID)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if details.Role != models.RoleOwner {
			t.Errorf("role: expected owner, got %v", details.Role)
		}
		if len(details.Members) != 2 {
			t.Errorf("expected 2 approved members, got %d", len(details.Members))
		}
		if len(details.PendingRequests) != 1 {
			t.Errorf("expected 1 pending request, got %d", len(details.PendingRequests))
		}
	})

	t.Run("member does not see pending requests", func(t *testing.T) {
		details, err := svc.Get(ctx, alice.ID, group.ID)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if details.Role != models.RoleMember {
			t.Errorf("role: expected member, got %v", details.Role)
		}
		if len(details.PendingRequests) != 0 {
			t.Errorf("expected no pending requests, got %d", len(details.PendingRequests))
		}
	})

	t.Run("pending member is refused", func(t *testing.T) {
		if _, err := svc.Get(ctx, waiting.ID, group.ID); !errors.Is(err, ErrForbidden) {
			t.Errorf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("non-member is refused", func(t *testing.T) {
		stranger := mustUser(t, store, "stranger")
		if _, err := svc.Get(ctx, stranger.ID, group.ID); !errors.Is(err, ErrForbidden) {
			t.Errorf("expected ErrForbidden, got %v", err)
		}
	})
}

func TestListMine(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()
	ctx := context.Background()
	svc := NewGroupService(store)

	owner := mustUser(t, store, "owner")
	alice := mustUser(t, store, "alice")
	mine := mustGroup(t, store, alice.ID, "Mine")
	other := mustGroup(t, store, owner.ID, "Theirs")
	mustMember(t, store, alice.ID, other.ID, false)

	owned, joined, err := svc.ListMine(ctx, alice.ID)
	if err != nil {
		t.Fatalf("ListMine failed: %v", err)
	}
	if len(owned) != 1 || owned[0].ID != mine.ID {
		t.Errorf("expected [%s] owned, got %v", mine.ID, owned)
	}
	if len(joined) != 1 || joined[0].ID != other.ID {
		t.Errorf("expected [%s] joined, got %v", other.ID, joined)
	}
}

func TestSearchGroups(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()
	ctx := context.Background()
	svc := NewGroupService(store)

	owner := mustUser(t, store, "owner")
	mustGroup(t, store, owner.ID, "Night Crew")
	mustGroup(t, store, owner.ID, "Day Crew")
	mustGroup(t, store, owner.ID, "Warehouse")

	groups, err := svc.Search(ctx, "crew")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(groups) != 2 {
		t.Errorf("expected 2 matches, got %d", len(groups))
	}

	t.Run("blank query", func(t *testing.T) {
		if _, err := svc.Search(ctx, "  "); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})
}

func TestDeleteGroup(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()
	ctx := context.Background()
	svc := NewGroupService(store)
	shifts := NewShiftService(store)

	owner := mustUser(t, store, "owner")
	alice := mustUser(t, store, "alice")
	group := mustGroup(t, store, owner.ID, "Night Crew")
	membership := mustMember(t, store, alice.ID, group.ID, false)

	shift, err := shifts.Create(ctx, owner.ID, group.ID, membership.ID, hour(9), hour(17))
	if err != nil {
		t.Fatalf("failed to seed shift: %v", err)
	}

	t.Run("member cannot delete", func(t *testing.T) {
		if err := svc.Delete(ctx, alice.ID, group.ID); !errors.Is(err, ErrForbidden) {
			t.Errorf("expected ErrForbidden, got %v", err)
		}
	})

	if err := svc.Delete(ctx, owner.ID, group.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if _, err := store.GetGroup(ctx, group.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected the group to be gone, got %v", err)
	}
	if _, err := store.GetShift(ctx, shift.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected shifts to cascade, got %v", err)
	}
	if _, err := store.GetMembership(ctx, membership.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected memberships to cascade, got %v", err)
	}
}
