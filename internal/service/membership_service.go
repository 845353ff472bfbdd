package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mkale/rosterd/internal/models"
	"github.com/mkale/rosterd/internal/storage"
)

// MembershipService manages join requests and membership flags. It is the
// gatekeeper for every privileged operation: roles resolve through a single
// total function, and the group owner's standing can never be edited away.
type MembershipService struct {
	store   storage.Store
	emitter *Emitter
}

// NewMembershipService creates a new MembershipService with the given storage backend.
func NewMembershipService(store storage.Store) *MembershipService {
	return &MembershipService{store: store, emitter: &Emitter{}}
}

// RequestJoin files a join request for the caller. At most one membership may
// exist per (user, group) pair, so a second request, or one from an existing
// member, is a conflict.
func (s *MembershipService) RequestJoin(ctx context.Context, callerID, groupID string) (*models.Membership, error) {
	var m *models.Membership
	err := s.store.InTx(ctx, func(tx storage.Store) error {
		group, err := tx.GetGroup(ctx, groupID)
		if err != nil {
			return notFound(err, "group does not exist")
		}

		_, err = tx.GetMembershipByUserGroup(ctx, callerID, group.ID)
		if err == nil {
			return fmt.Errorf("%w: you have already sent a request to this group", ErrConflict)
		}
		if !errors.Is(err, storage.ErrNotFound) {
			return err
		}

		m = &models.Membership{UserID: callerID, GroupID: group.ID}
		return tx.CreateMembership(ctx, m)
	})
	if err != nil {
		return nil, err
	}

	slog.Info("join requested", "membership_id", m.ID, "group_id", groupID, "user_id", callerID)
	return m, nil
}

// ApproveJoin accepts a pending join request. The caller must be an admin of
// the membership's group; the requester is notified.
func (s *MembershipService) ApproveJoin(ctx context.Context, callerID, membershipID string) error {
	err := s.store.InTx(ctx, func(tx storage.Store) error {
		m, group, err := s.adminTarget(ctx, tx, callerID, membershipID)
		if err != nil {
			return err
		}
		if m.Approved {
			return fmt.Errorf("%w: membership is already approved", ErrConflict)
		}

		m.Approved = true
		if err := tx.UpdateMembership(ctx, m); err != nil {
			return err
		}

		s.emitter.Emit(ctx, tx, m.UserID,
			fmt.Sprintf("Your request to join %s was approved.", group.Name))
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("join approved", "membership_id", membershipID, "approved_by", callerID)
	return nil
}

// DeclineJoin rejects a join request and removes the membership. The caller
// must be an admin; the owner's membership can never be removed this way.
func (s *MembershipService) DeclineJoin(ctx context.Context, callerID, membershipID string) error {
	err := s.store.InTx(ctx, func(tx storage.Store) error {
		m, group, err := s.adminTarget(ctx, tx, callerID, membershipID)
		if err != nil {
			return err
		}
		if m.UserID == group.OwnerID {
			return fmt.Errorf("%w: the group owner's membership cannot be removed", ErrForbidden)
		}

		if err := tx.DeleteMembership(ctx, m.ID); err != nil {
			return err
		}

		s.emitter.Emit(ctx, tx, m.UserID,
			fmt.Sprintf("Your request to join %s was declined.", group.Name))
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("join declined", "membership_id", membershipID, "declined_by", callerID)
	return nil
}

// SetAdmin toggles a membership's admin flag. Only the group owner may call
// this, and the owner's own membership is immutable: ownership is
// authoritative, not delegated.
func (s *MembershipService) SetAdmin(ctx context.Context, callerID, membershipID string, admin bool) error {
	err := s.store.InTx(ctx, func(tx storage.Store) error {
		m, err := tx.GetMembership(ctx, membershipID)
		if err != nil {
			return notFound(err, "membership does not exist")
		}

		group, err := tx.GetGroup(ctx, m.GroupID)
		if err != nil {
			return notFound(err, "group does not exist")
		}

		if callerID != group.OwnerID {
			return fmt.Errorf("%w: only the group owner can change admin status", ErrForbidden)
		}
		if m.UserID == group.OwnerID {
			return fmt.Errorf("%w: the owner's admin status cannot be changed", ErrForbidden)
		}

		m.Admin = admin
		return tx.UpdateMembership(ctx, m)
	})
	if err != nil {
		return err
	}

	slog.Info("admin flag set", "membership_id", membershipID, "admin", admin)
	return nil
}

// adminTarget loads a membership and its group and verifies the caller holds
// admin authority over that group.
func (s *MembershipService) adminTarget(ctx context.Context, tx storage.Store, callerID, membershipID string) (*models.Membership, *models.Group, error) {
	m, err := tx.GetMembership(ctx, membershipID)
	if err != nil {
		return nil, nil, notFound(err, "membership does not exist")
	}

	group, err := tx.GetGroup(ctx, m.GroupID)
	if err != nil {
		return nil, nil, notFound(err, "group does not exist")
	}

	role, err := resolveRole(ctx, tx, callerID, group)
	if err != nil {
		return nil, nil, err
	}
	if !role.AtLeast(models.RoleAdmin) {
		return nil, nil, fmt.Errorf("%w: only group admins can manage join requests", ErrForbidden)
	}
	return m, group, nil
}
