// Package models defines the core domain models for rosterd.
//
// # Entities
//
//   - User: a registered account; owns groups, holds memberships, receives notifications
//   - Group: a scheduling domain with exactly one immutable owner
//   - Membership: a user's relationship to a group (admin/approved flags)
//   - Shift: a half-open time interval assigned to at most one user within a group
//   - ShiftSwap: a negotiation to transfer a shift between members
//   - Notification: an append-only message to a single user
//
// # Design Principles
//
//  1. **No object graphs**: relationships are ID strings resolved through storage
//     lookups, never embedded pointers. This avoids ownership cycles between
//     User, Group, Membership, Shift and ShiftSwap.
//  2. **Ownership is authoritative**: a group's owner is fixed at creation; the
//     owner's membership can never lose its admin flag or be removed by admin
//     edits.
//  3. **Intervals are half-open**: a Shift covers [StartTime, EndTime). Within one
//     user's assigned shifts no two intervals may intersect; the schedule package
//     enforces this by merging, not by rejecting.
package models
