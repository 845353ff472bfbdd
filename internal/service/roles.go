package service

import (
	"context"
	"errors"

	"github.com/mkale/rosterd/internal/models"
	"github.com/mkale/rosterd/internal/storage"
)

// resolveRole is the single authority for a user's standing within a group.
// The group's owner always resolves to RoleOwner regardless of their
// membership row; everyone else resolves from the (user, group) membership.
// Every privileged operation calls this before touching any state.
func resolveRole(ctx context.Context, s storage.Store, userID string, group *models.Group) (models.Role, error) {
	if userID == group.OwnerID {
		return models.RoleOwner, nil
	}

	m, err := s.GetMembershipByUserGroup(ctx, userID, group.ID)
	if errors.Is(err, storage.ErrNotFound) {
		return models.RoleNone, nil
	}
	if err != nil {
		return models.RoleNone, err
	}

	switch {
	case !m.Approved:
		return models.RolePending, nil
	case m.Admin:
		return models.RoleAdmin, nil
	default:
		return models.RoleMember, nil
	}
}
