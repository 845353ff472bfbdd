package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mkale/rosterd/internal/models"
	"github.com/mkale/rosterd/internal/storage"
)

// GroupService manages scheduling domains. Creating a group makes the caller
// its immutable owner and seeds an approved admin membership for them.
type GroupService struct {
	store storage.Store
}

// NewGroupService creates a new GroupService with the given storage backend.
func NewGroupService(store storage.Store) *GroupService {
	return &GroupService{store: store}
}

// Member describes a group member for roster views.
type Member struct {
	MembershipID string
	UserID       string
	Username     string
	Admin        bool
}

// GroupDetails is a group with its approved roster and, for admins, the
// pending join requests.
type GroupDetails struct {
	Group           *models.Group
	Role            models.Role
	Members         []Member
	PendingRequests []Member
}

// Create makes a new group owned by the caller.
func (s *GroupService) Create(ctx context.Context, callerID, name string) (*models.Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: group name is required", ErrInvalidInput)
	}

	var group *models.Group
	err := s.store.InTx(ctx, func(tx storage.Store) error {
		group = &models.Group{Name: name, OwnerID: callerID}
		if err := tx.CreateGroup(ctx, group); err != nil {
			return err
		}
		// The owner's membership carries admin+approved so roster views
		// include them; their authority still comes from OwnerID.
		return tx.CreateMembership(ctx, &models.Membership{
			UserID:   callerID,
			GroupID:  group.ID,
			Admin:    true,
			Approved: true,
		})
	})
	if err != nil {
		return nil, err
	}

	slog.Info("group created", "group_id", group.ID, "owner_id", callerID)
	return group, nil
}

// Get returns the group with its roster. The caller must be an approved
// member for content access; pending join requests are included only for
// admins.
func (s *GroupService) Get(ctx context.Context, callerID, groupID string) (*GroupDetails, error) {
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

	memberships, err := s.store.ListMemberships(ctx, groupID)
	if err != nil {
		return nil, err
	}

	details := &GroupDetails{Group: group, Role: role}
	for _, m := range memberships {
		member, err := s.member(ctx, m)
		if err != nil {
			return nil, err
		}
		if m.Approved {
			details.Members = append(details.Members, member)
		} else if role.AtLeast(models.RoleAdmin) {
			details.PendingRequests = append(details.PendingRequests, member)
		}
	}
	return details, nil
}

// ListMine returns the groups the caller owns followed by the groups they
// have joined.
func (s *GroupService) ListMine(ctx context.Context, callerID string) (owned, joined []models.Group, err error) {
	owned, err = s.store.ListOwnedGroups(ctx, callerID)
	if err != nil {
		return nil, nil, err
	}
	joined, err = s.store.ListJoinedGroups(ctx, callerID)
	if err != nil {
		return nil, nil, err
	}
	return owned, joined, nil
}

// Search returns groups matching a name fragment.
func (s *GroupService) Search(ctx context.Context, name string) ([]models.Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: search name is required", ErrInvalidInput)
	}
	return s.store.SearchGroups(ctx, name)
}

// Delete removes a group and everything it owns. Owner only.
func (s *GroupService) Delete(ctx context.Context, callerID, groupID string) error {
	err := s.store.InTx(ctx, func(tx storage.Store) error {
		group, err := tx.GetGroup(ctx, groupID)
		if err != nil {
			return notFound(err, "group does not exist")
		}
		if callerID != group.OwnerID {
			return fmt.Errorf("%w: only the group owner can delete the group", ErrForbidden)
		}
		return tx.DeleteGroup(ctx, group.ID)
	})
	if err != nil {
		return err
	}

	slog.Info("group deleted", "group_id", groupID)
	return nil
}

func (s *GroupService) member(ctx context.Context, m models.Membership) (Member, error) {
	user, err := s.store.GetUser(ctx, m.UserID)
	if err != nil {
		return Member{}, notFound(err, "user does not exist")
	}
	return Member{
		MembershipID: m.ID,
		UserID:       m.UserID,
		Username:     user.Username,
		Admin:        m.Admin,
	}, nil
}
