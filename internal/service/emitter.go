package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mkale/rosterd/internal/models"
	"github.com/mkale/rosterd/internal/storage"
)

// Emitter records user-facing notification messages as a side effect of
// schedule mutations. It is not a delivery system: records are append-only
// rows the recipient reads later.
//
// Notifications are best-effort relative to the schedule mutation they
// accompany: an empty recipient (an ownerless slot) is a silent no-op, and a
// failed write is logged and swallowed rather than aborting the enclosing
// transaction.
type Emitter struct{}

// Emit records a notification for the user through the given store, which is
// expected to be the caller's transactional view so the record commits with
// the mutation it describes.
func (e *Emitter) Emit(ctx context.Context, s storage.Store, userID, message string) {
	if userID == "" {
		return
	}

	n := &models.Notification{UserID: userID, Message: message}
	if err := s.CreateNotification(ctx, n); err != nil {
		slog.Warn("notification emit failed", "user_id", userID, "error", err)
	}
}

// timeRange renders a shift interval for notification text.
func timeRange(start, end time.Time) string {
	return fmt.Sprintf("%s to %s", start.Format("Mon Jan 2 15:04"), end.Format("Mon Jan 2 15:04"))
}
