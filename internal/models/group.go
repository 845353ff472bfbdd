package models

// Group is a named scheduling domain. Every group has exactly one owner,
// fixed at creation; the owner is always treated as an approved admin even
// though their authority comes from OwnerID, not a membership row.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (e.g., "Night Shift Crew").
	Name string

	// OwnerID references the owning User. Immutable after creation.
	OwnerID string

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}

// Membership links a User to a Group. At most one membership may exist per
// (user, group) pair.
type Membership struct {
	// ID is the unique identifier for the membership (UUID format).
	ID string

	// UserID references the member.
	UserID string

	// GroupID references the group.
	GroupID string

	// Admin grants the member scheduling authority within the group.
	Admin bool

	// Approved is false while the join request is pending. An unapproved
	// membership grants no access.
	Approved bool
}
