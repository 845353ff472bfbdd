package service

import (
	"context"

	"github.com/mkale/rosterd/internal/models"
	"github.com/mkale/rosterd/internal/storage"
)

// NotificationService exposes a user's notification feed. Notifications are
// only ever created by the scheduling services; end users can read and mark
// them, nothing else.
type NotificationService struct {
	store storage.Store
}

// NewNotificationService creates a new NotificationService with the given storage backend.
func NewNotificationService(store storage.Store) *NotificationService {
	return &NotificationService{store: store}
}

// List returns the caller's notifications, newest first.
func (s *NotificationService) List(ctx context.Context, callerID string) ([]models.Notification, error) {
	return s.store.ListNotifications(ctx, callerID)
}

// MarkAllRead flips the read flag on all of the caller's notifications.
func (s *NotificationService) MarkAllRead(ctx context.Context, callerID string) error {
	return s.store.MarkAllNotificationsRead(ctx, callerID)
}
