// Package schedule implements interval merging for shift assignments.
//
// A person cannot hold two overlapping shift records: rather than rejecting
// an overlapping assignment, newly scheduled time simply extends the block.
// Whenever a shift is created or reassigned, the candidate interval is merged
// with every active shift of the target owner that it touches, producing one
// continuous interval and a list of superseded shift IDs.
package schedule

import (
	"time"

	"github.com/mkale/rosterd/internal/models"
)

// Window is a half-open time interval [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

// Valid reports whether the window is well-formed (End strictly after Start).
func (w Window) Valid() bool {
	return w.End.After(w.Start)
}

// Touches reports whether the window intersects or is adjacent to the shift's
// interval. Adjacent blocks (one ending exactly where the other starts)
// coalesce into a single continuous block.
func (w Window) Touches(s *models.Shift) bool {
	return !w.End.Before(s.StartTime) && !s.EndTime.Before(w.Start)
}

// Merge widens the candidate window over every existing shift it touches and
// returns the final window together with the IDs of the shifts it superseded.
// Shifts that ended before now are never merged; shifts that do not touch the
// candidate are left alone.
//
// The existing shifts are assumed to belong to a single owner. Because every
// assignment passes through Merge, the owner's active shifts are pairwise
// disjoint on entry and remain so once the superseded records are deleted.
func Merge(candidate Window, existing []models.Shift, now time.Time) (Window, []string) {
	final := candidate
	var superseded []string
	taken := make(map[string]bool)

	// Widening the window can bring previously-adjacent blocks into range,
	// so sweep until a full pass absorbs nothing new.
	for {
		grew := false
		for i := range existing {
			s := &existing[i]
			if taken[s.ID] || !s.Active(now) || !final.Touches(s) {
				continue
			}
			if s.StartTime.Before(final.Start) {
				final.Start = s.StartTime
			}
			if s.EndTime.After(final.End) {
				final.End = s.EndTime
			}
			taken[s.ID] = true
			superseded = append(superseded, s.ID)
			grew = true
		}
		if !grew {
			break
		}
	}

	return final, superseded
}
