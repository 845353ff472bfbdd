package models

// Notification is an immutable-once-created message owned by one user.
// Notifications are created only as side effects of schedule mutations,
// never directly by end users.
type Notification struct {
	// ID is the unique identifier for the notification (UUID format).
	ID string

	// UserID references the recipient.
	UserID string

	// Message is the human-readable notification text.
	Message string

	// Read is flipped by the recipient; defaults to false.
	Read bool

	// CreatedAt is the Unix timestamp when the notification was emitted.
	CreatedAt int64
}
