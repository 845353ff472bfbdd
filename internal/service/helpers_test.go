package service

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/mkale/rosterd/internal/models"
	"github.com/mkale/rosterd/internal/storage"
	"github.com/mkale/rosterd/internal/storage/sqlite"
)

// newTestStore creates a store backed by a temp database file.
func newTestStore(t *testing.T) (storage.Store, func()) {
	t.Helper()

	tmpFile, err := os.CreateTemp("", "rosterd-test-*.db")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	tmpFile.Close()

	store, err := sqlite.New(tmpFile.Name())
	if err != nil {
		os.Remove(tmpFile.Name())
		t.Fatalf("failed to create store: %v", err)
	}

	cleanup := func() {
		store.Close()
		os.Remove(tmpFile.Name())
	}
	return store, cleanup
}

func mustUser(t *testing.T, store storage.Store, username string) *models.User {
	t.Helper()
	user := models.NewUser(username+"@example.com", username, "")
	if err := store.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("failed to create user %s: %v", username, err)
	}
	return user
}

// mustMember adds an approved membership for the user.
func mustMember(t *testing.T, store storage.Store, userID, groupID string, admin bool) *models.Membership {
	t.Helper()
	m := &models.Membership{UserID: userID, GroupID: groupID, Admin: admin, Approved: true}
	if err := store.CreateMembership(context.Background(), m); err != nil {
		t.Fatalf("failed to create membership: %v", err)
	}
	return m
}

// mustPending adds an unapproved membership for the user.
func mustPending(t *testing.T, store storage.Store, userID, groupID string) *models.Membership {
	t.Helper()
	m := &models.Membership{UserID: userID, GroupID: groupID}
	if err := store.CreateMembership(context.Background(), m); err != nil {
		t.Fatalf("failed to create membership: %v", err)
	}
	return m
}

func mustGroup(t *testing.T, store storage.Store, ownerID, name string) *models.Group {
	t.Helper()
	group, err := NewGroupService(store).Create(context.Background(), ownerID, name)
	if err != nil {
		t.Fatalf("failed to create group: %v", err)
	}
	return group
}

// notifications returns the user's notification messages, newest first.
func notifications(t *testing.T, store storage.Store, userID string) []string {
	t.Helper()
	list, err := store.ListNotifications(context.Background(), userID)
	if err != nil {
		t.Fatalf("failed to list notifications: %v", err)
	}
	messages := make([]string, len(list))
	for i, n := range list {
		messages[i] = n.Message
	}
	return messages
}

// unassignedShift seeds an ownerless slot directly in the store.
func unassignedShift(t *testing.T, store storage.Store, groupID string) *models.Shift {
	t.Helper()
	shift := &models.Shift{GroupID: groupID, StartTime: hour(9), EndTime: hour(17)}
	if err := store.CreateShift(context.Background(), shift); err != nil {
		t.Fatalf("failed to create unassigned shift: %v", err)
	}
	return shift
}

// Fixed future schedule day so shifts are always active relative to the
// real clock used by the merge scan.
var testDay = time.Date(2030, 5, 1, 0, 0, 0, 0, time.UTC)

func hour(h int) time.Time {
	return testDay.Add(time.Duration(h) * time.Hour)
}
