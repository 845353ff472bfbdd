package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mkale/rosterd/internal/models"
	"github.com/mkale/rosterd/internal/storage"
)

// CreateMembership persists a new membership. The composite primary key on
// (user_id, group_id) enforces at most one membership per pair.
func (s *SQLiteStore) CreateMembership(ctx context.Context, m *models.Membership) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}

	_, err := s.q.ExecContext(ctx,
		"INSERT INTO memberships (id, user_id, group_id, admin, approved) VALUES (?, ?, ?, ?, ?)",
		m.ID, m.UserID, m.GroupID, m.Admin, m.Approved,
	)
	if err != nil {
		return fmt.Errorf("failed to insert membership: %w", err)
	}
	return nil
}

// GetMembership retrieves a membership by ID.
func (s *SQLiteStore) GetMembership(ctx context.Context, id string) (*models.Membership, error) {
	return scanMembership(s.q.QueryRowContext(ctx,
		"SELECT id, user_id, group_id, admin, approved FROM memberships WHERE id = ?", id))
}

// GetMembershipByUserGroup retrieves the membership for a (user, group) pair.
func (s *SQLiteStore) GetMembershipByUserGroup(ctx context.Context, userID, groupID string) (*models.Membership, error) {
	return scanMembership(s.q.QueryRowContext(ctx,
		"SELECT id, user_id, group_id, admin, approved FROM memberships WHERE user_id = ? AND group_id = ?",
		userID, groupID))
}

// UpdateMembership writes the membership's admin/approved flags.
func (s *SQLiteStore) UpdateMembership(ctx context.Context, m *models.Membership) error {
	res, err := s.q.ExecContext(ctx,
		"UPDATE memberships SET admin = ?, approved = ? WHERE id = ?",
		m.Admin, m.Approved, m.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update membership: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("membership: %w", storage.ErrNotFound)
	}
	return nil
}

// DeleteMembership removes a membership by ID.
func (s *SQLiteStore) DeleteMembership(ctx context.Context, id string) error {
	res, err := s.q.ExecContext(ctx, "DELETE FROM memberships WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete membership: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("membership: %w", storage.ErrNotFound)
	}
	return nil
}

// ListMemberships returns all memberships of a group.
func (s *SQLiteStore) ListMemberships(ctx context.Context, groupID string) ([]models.Membership, error) {
	rows, err := s.q.QueryContext(ctx,
		"SELECT id, user_id, group_id, admin, approved FROM memberships WHERE group_id = ?",
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list memberships: %w", err)
	}
	return collectMemberships(rows)
}

// ListPendingMemberships returns the group's unapproved join requests.
func (s *SQLiteStore) ListPendingMemberships(ctx context.Context, groupID string) ([]models.Membership, error) {
	rows, err := s.q.QueryContext(ctx,
		"SELECT id, user_id, group_id, admin, approved FROM memberships WHERE group_id = ? AND approved = 0",
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending memberships: %w", err)
	}
	return collectMemberships(rows)
}

func scanMembership(row *sql.Row) (*models.Membership, error) {
	m := &models.Membership{}
	err := row.Scan(&m.ID, &m.UserID, &m.GroupID, &m.Admin, &m.Approved)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("membership: %w", storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get membership: %w", err)
	}
	return m, nil
}

func collectMemberships(rows *sql.Rows) ([]models.Membership, error) {
	defer rows.Close()

	var memberships []models.Membership
	for rows.Next() {
		var m models.Membership
		if err := rows.Scan(&m.ID, &m.UserID, &m.GroupID, &m.Admin, &m.Approved); err != nil {
			return nil, fmt.Errorf("failed to scan membership: %w", err)
		}
		memberships = append(memberships, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate memberships: %w", err)
	}
	return memberships, nil
}
