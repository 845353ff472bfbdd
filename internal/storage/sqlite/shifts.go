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

// Shift intervals are stored as Unix seconds. An unassigned shift is stored
// with user_id NULL (the model uses ""); NULLIF/COALESCE translate at the
// boundary so the foreign key on user_id stays intact.

// CreateShift persists a new shift to the database.
func (s *SQLiteStore) CreateShift(ctx context.Context, shift *models.Shift) error {
	if shift.ID == "" {
		shift.ID = uuid.New().String()
	}

	_, err := s.q.ExecContext(ctx,
		"INSERT INTO shifts (id, group_id, user_id, start_time, end_time) VALUES (?, ?, NULLIF(?, ''), ?, ?)",
		shift.ID, shift.GroupID, shift.UserID, shift.StartTime.Unix(), shift.EndTime.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert shift: %w", err)
	}
	return nil
}

// GetShift retrieves a shift by ID.
func (s *SQLiteStore) GetShift(ctx context.Context, id string) (*models.Shift, error) {
	shift := &models.Shift{}
	var start, end int64
	err := s.q.QueryRowContext(ctx,
		"SELECT id, group_id, COALESCE(user_id, ''), start_time, end_time FROM shifts WHERE id = ?", id,
	).Scan(&shift.ID, &shift.GroupID, &shift.UserID, &start, &end)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("shift: %w", storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get shift: %w", err)
	}
	shift.StartTime = time.Unix(start, 0).UTC()
	shift.EndTime = time.Unix(end, 0).UTC()
	return shift, nil
}

// UpdateShift writes the shift's owner and interval.
func (s *SQLiteStore) UpdateShift(ctx context.Context, shift *models.Shift) error {
	res, err := s.q.ExecContext(ctx,
		"UPDATE shifts SET user_id = NULLIF(?, ''), start_time = ?, end_time = ? WHERE id = ?",
		shift.UserID, shift.StartTime.Unix(), shift.EndTime.Unix(), shift.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update shift: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("shift: %w", storage.ErrNotFound)
	}
	return nil
}

// DeleteShift removes a shift by ID. Swap records cascade with it.
func (s *SQLiteStore) DeleteShift(ctx context.Context, id string) error {
	res, err := s.q.ExecContext(ctx, "DELETE FROM shifts WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete shift: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("shift: %w", storage.ErrNotFound)
	}
	return nil
}

// ListActiveShifts returns the user's assigned shifts that have not yet ended.
func (s *SQLiteStore) ListActiveShifts(ctx context.Context, userID string, now time.Time) ([]models.Shift, error) {
	rows, err := s.q.QueryContext(ctx,
		`SELECT id, group_id, COALESCE(user_id, ''), start_time, end_time
		 FROM shifts WHERE user_id = ? AND end_time >= ? ORDER BY start_time`,
		userID, now.Unix(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list active shifts: %w", err)
	}
	return collectShifts(rows)
}

// ListGroupShifts returns the group's shifts ending at or after the cutoff.
func (s *SQLiteStore) ListGroupShifts(ctx context.Context, groupID string, cutoff time.Time) ([]models.Shift, error) {
	rows, err := s.q.QueryContext(ctx,
		`SELECT id, group_id, COALESCE(user_id, ''), start_time, end_time
		 FROM shifts WHERE group_id = ? AND end_time >= ? ORDER BY start_time`,
		groupID, cutoff.Unix(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list group shifts: %w", err)
	}
	return collectShifts(rows)
}

func collectShifts(rows *sql.Rows) ([]models.Shift, error) {
	defer rows.Close()

	var shifts []models.Shift
	for rows.Next() {
		var sh models.Shift
		var start, end int64
		if err := rows.Scan(&sh.ID, &sh.GroupID, &sh.UserID, &start, &end); err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		sh.StartTime = time.Unix(start, 0).UTC()
		sh.EndTime = time.Unix(end, 0).UTC()
		shifts = append(shifts, sh)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shifts: %w", err)
	}
	return shifts, nil
}
