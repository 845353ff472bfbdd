// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/mkale/rosterd/internal/models"
)

// ErrNotFound is returned when a referenced record does not exist.
// Implementations must wrap it so callers can test with errors.Is.
var ErrNotFound = errors.New("record not found")

// Store defines the interface for rosterd's persistence operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
//
// A mutating business operation never calls the fine-grained methods on the
// root store directly; it wraps them in InTx so that the overlap scan, the
// deletion of superseded shifts, the shift write and the notification records
// commit together or not at all.
type Store interface {
	// CreateUser persists a new user. ID and CreatedAt are populated if unset.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUser retrieves a user by ID.
	GetUser(ctx context.Context, id string) (*models.User, error)

	// GetUserByEmail retrieves a user by email address.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// CreateGroup persists a new group. ID and CreatedAt are populated if unset.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group by ID.
	GetGroup(ctx context.Context, id string) (*models.Group, error)

	// DeleteGroup removes a group. Its shifts, memberships and swaps are
	// cascade-deleted by the schema.
	DeleteGroup(ctx context.Context, id string) error

	// SearchGroups returns groups whose name contains the given fragment.
	SearchGroups(ctx context.Context, name string) ([]models.Group, error)

	// ListOwnedGroups returns the groups owned by the user.
	ListOwnedGroups(ctx context.Context, userID string) ([]models.Group, error)

	// ListJoinedGroups returns groups where the user holds an approved
	// membership, excluding groups they own.
	ListJoinedGroups(ctx context.Context, userID string) ([]models.Group, error)

	// CreateMembership persists a new membership. ID is populated if unset.
	CreateMembership(ctx context.Context, m *models.Membership) error

	// GetMembership retrieves a membership by ID.
	GetMembership(ctx context.Context, id string) (*models.Membership, error)

	// GetMembershipByUserGroup retrieves the membership for a (user, group)
	// pair. At most one exists.
	GetMembershipByUserGroup(ctx context.Context, userID, groupID string) (*models.Membership, error)

	// UpdateMembership writes the membership's admin/approved flags.
	UpdateMembership(ctx context.Context, m *models.Membership) error

	// DeleteMembership removes a membership by ID.
	DeleteMembership(ctx context.Context, id string) error

	// ListMemberships returns all memberships of a group.
	ListMemberships(ctx context.Context, groupID string) ([]models.Membership, error)

	// ListPendingMemberships returns the group's unapproved join requests.
	ListPendingMemberships(ctx context.Context, groupID string) ([]models.Membership, error)

	// CreateShift persists a new shift. ID is populated if unset.
	CreateShift(ctx context.Context, shift *models.Shift) error

	// GetShift retrieves a shift by ID.
	GetShift(ctx context.Context, id string) (*models.Shift, error)

	// UpdateShift writes the shift's owner and interval.
	UpdateShift(ctx context.Context, shift *models.Shift) error

	// DeleteShift removes a shift by ID. Its swaps are cascade-deleted.
	DeleteShift(ctx context.Context, id string) error

	// ListActiveShifts returns the user's assigned shifts that have not yet
	// ended at the given instant, ordered by start time.
	ListActiveShifts(ctx context.Context, userID string, now time.Time) ([]models.Shift, error)

	// ListGroupShifts returns the group's shifts ending at or after the given
	// cutoff, ordered by start time.
	ListGroupShifts(ctx context.Context, groupID string, cutoff time.Time) ([]models.Shift, error)

	// CreateSwap persists a new swap record. ID is populated if unset.
	CreateSwap(ctx context.Context, swap *models.ShiftSwap) error

	// GetSwap retrieves a swap by ID.
	GetSwap(ctx context.Context, id string) (*models.ShiftSwap, error)

	// UpdateSwap writes the swap's new-owner and approved-by fields.
	UpdateSwap(ctx context.Context, swap *models.ShiftSwap) error

	// DeleteSwap removes a swap record by ID.
	DeleteSwap(ctx context.Context, id string) error

	// GetUnresolvedSwapForShift returns the shift's open or linked swap, if
	// any. Resolved swaps are ignored.
	GetUnresolvedSwapForShift(ctx context.Context, shiftID string) (*models.ShiftSwap, error)

	// CreateNotification persists a notification. ID and CreatedAt are
	// populated if unset.
	CreateNotification(ctx context.Context, n *models.Notification) error

	// ListNotifications returns the user's notifications, newest first.
	ListNotifications(ctx context.Context, userID string) ([]models.Notification, error)

	// MarkAllNotificationsRead flips the read flag on every notification
	// owned by the user.
	MarkAllNotificationsRead(ctx context.Context, userID string) error

	// InTx runs fn against a transactional view of the store. The
	// transaction commits when fn returns nil and rolls back otherwise.
	// Calling InTx on an already-transactional store reuses the enclosing
	// transaction.
	InTx(ctx context.Context, fn func(Store) error) error

	// Close releases any resources held by the store.
	Close() error
}
