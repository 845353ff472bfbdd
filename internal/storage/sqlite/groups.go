package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mkale/rosterd/internal/models"
	"github.com/mkale/rosterd/internal/storage"
)

// CreateGroup persists a new group to the database.
func (s *SQLiteStore) CreateGroup(ctx context.Context, group *models.Group) error {
	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	if group.CreatedAt == 0 {
		group.CreatedAt = time.Now().Unix()
	}

	_, err := s.q.ExecContext(ctx,
		"INSERT INTO groups (id, name, owner_id, created_at) VALUES (?, ?, ?, ?)",
		group.ID, group.Name, group.OwnerID, group.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert group: %w", err)
	}
	return nil
}

// GetGroup retrieves a group by ID.
func (s *SQLiteStore) GetGroup(ctx context.Context, id string) (*models.Group, error) {
	group := &models.Group{}
	err := s.q.QueryRowContext(ctx,
		"SELECT id, name, owner_id, created_at FROM groups WHERE id = ?", id,
	).Scan(&group.ID, &group.Name, &group.OwnerID, &group.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("group: %w", storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	return group, nil
}

// DeleteGroup removes a group. Shifts, memberships and swap records go with
// it via the schema's cascade rules.
func (s *SQLiteStore) DeleteGroup(ctx context.Context, id string) error {
	res, err := s.q.ExecContext(ctx, "DELETE FROM groups WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("group: %w", storage.ErrNotFound)
	}
	return nil
}

// SearchGroups returns groups whose name contains the fragment (case-insensitive).
func (s *SQLiteStore) SearchGroups(ctx context.Context, name string) ([]models.Group, error) {
	rows, err := s.q.QueryContext(ctx,
		"SELECT id, name, owner_id, created_at FROM groups WHERE name LIKE ? ORDER BY name",
		"%"+name+"%",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to search groups: %w", err)
	}
	return collectGroups(rows)
}

// ListOwnedGroups returns the groups owned by the user.
func (s *SQLiteStore) ListOwnedGroups(ctx context.Context, userID string) ([]models.Group, error) {
	rows, err := s.q.QueryContext(ctx,
		"SELECT id, name, owner_id, created_at FROM groups WHERE owner_id = ? ORDER BY name",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list owned groups: %w", err)
	}
	return collectGroups(rows)
}

// ListJoinedGroups returns groups the user has joined through an approved
// membership, excluding groups they own.
func (s *SQLiteStore) ListJoinedGroups(ctx context.Context, userID string) ([]models.Group, error) {
	rows, err := s.q.QueryContext(ctx,
		`SELECT g.id, g.name, g.owner_id, g.created_at
		 FROM groups g
		 JOIN memberships m ON m.group_id = g.id
		 WHERE m.user_id = ? AND m.approved = 1 AND g.owner_id != ?
		 ORDER BY g.name`,
		userID, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list joined groups: %w", err)
	}
	return collectGroups(rows)
}

func collectGroups(rows *sql.Rows) ([]models.Group, error) {
	defer rows.Close()

	var groups []models.Group
	for rows.Next() {
		var g models.Group
		if err := rows.Scan(&g.ID, &g.Name, &g.OwnerID, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate groups: %w", err)
	}
	return groups, nil
}
