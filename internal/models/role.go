package models

// Role is a user's resolved standing within a group. It is a closed
// enumeration; every authorization decision is made against a Role, never
// against raw membership flags scattered through the call sites.
type Role int

const (
	// RoleNone: no membership exists for the (user, group) pair.
	RoleNone Role = iota

	// RolePending: a membership exists but is not yet approved. Grants no
	// access beyond existence checks.
	RolePending

	// RoleMember: an approved, non-admin member.
	RoleMember

	// RoleAdmin: an approved member with scheduling authority.
	RoleAdmin

	// RoleOwner: the group's owner. Always outranks Admin.
	RoleOwner
)

// AtLeast reports whether r carries at least the authority of min.
func (r Role) AtLeast(min Role) bool { return r >= min }

// Approved reports whether the role grants content access to the group.
func (r Role) Approved() bool { return r >= RoleMember }

func (r Role) String() string {
	switch r {
	case RolePending:
		return "pending"
	case RoleMember:
		return "member"
	case RoleAdmin:
		return "admin"
	case RoleOwner:
		return "owner"
	default:
		return "none"
	}
}
