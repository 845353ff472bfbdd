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

// CreateSwap persists a new swap record.
func (s *SQLiteStore) CreateSwap(ctx context.Context, swap *models.ShiftSwap) error {
	if swap.ID == "" {
		swap.ID = uuid.New().String()
	}

	_, err := s.q.ExecContext(ctx,
		`INSERT INTO shift_swaps (id, shift_id, current_owner_id, new_owner_id, approved_by_admin_id)
		 VALUES (?, ?, ?, NULLIF(?, ''), NULLIF(?, ''))`,
		swap.ID, swap.ShiftID, swap.CurrentOwnerID, swap.NewOwnerID, swap.ApprovedByAdminID,
	)
	if err != nil {
		return fmt.Errorf("failed to insert swap: %w", err)
	}
	return nil
}

// GetSwap retrieves a swap by ID.
func (s *SQLiteStore) GetSwap(ctx context.Context, id string) (*models.ShiftSwap, error) {
	return scanSwap(s.q.QueryRowContext(ctx,
		`SELECT id, shift_id, current_owner_id, COALESCE(new_owner_id, ''), COALESCE(approved_by_admin_id, '')
		 FROM shift_swaps WHERE id = ?`, id))
}

// UpdateSwap writes the swap's new-owner and approved-by fields.
func (s *SQLiteStore) UpdateSwap(ctx context.Context, swap *models.ShiftSwap) error {
	res, err := s.q.ExecContext(ctx,
		"UPDATE shift_swaps SET new_owner_id = NULLIF(?, ''), approved_by_admin_id = NULLIF(?, '') WHERE id = ?",
		swap.NewOwnerID, swap.ApprovedByAdminID, swap.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update swap: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("swap: %w", storage.ErrNotFound)
	}
	return nil
}

// DeleteSwap removes a swap record by ID.
func (s *SQLiteStore) DeleteSwap(ctx context.Context, id string) error {
	res, err := s.q.ExecContext(ctx, "DELETE FROM shift_swaps WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete swap: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("swap: %w", storage.ErrNotFound)
	}
	return nil
}

// GetUnresolvedSwapForShift returns the shift's open or linked swap, if any.
func (s *SQLiteStore) GetUnresolvedSwapForShift(ctx context.Context, shiftID string) (*models.ShiftSwap, error) {
	return scanSwap(s.q.QueryRowContext(ctx,
		`SELECT id, shift_id, current_owner_id, COALESCE(new_owner_id, ''), COALESCE(approved_by_admin_id, '')
		 FROM shift_swaps WHERE shift_id = ? AND approved_by_admin_id IS NULL LIMIT 1`, shiftID))
}

func scanSwap(row *sql.Row) (*models.ShiftSwap, error) {
	swap := &models.ShiftSwap{}
	err := row.Scan(&swap.ID, &swap.ShiftID, &swap.CurrentOwnerID, &swap.NewOwnerID, &swap.ApprovedByAdminID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("swap: %w", storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get swap: %w", err)
	}
	return swap, nil
}
