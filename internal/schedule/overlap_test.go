package schedule

import (
	"testing"
	"time"

	"github.com/mkale/rosterd/internal/models"
)

var day = time.Date(2030, 5, 1, 0, 0, 0, 0, time.UTC)

func at(hour int) time.Time {
	return day.Add(time.Duration(hour) * time.Hour)
}

func shift(id string, startHour, endHour int) models.Shift {
	return models.Shift{ID: id, StartTime: at(startHour), EndTime: at(endHour)}
}

func TestMerge(t *testing.T) {
	now := day

	tests := []struct {
		name       string
		candidate  Window
		existing   []models.Shift
		wantStart  time.Time
		wantEnd    time.Time
		superseded []string
	}{
		{
			name:      "no existing shifts",
			candidate: Window{Start: at(9), End: at(17)},
			wantStart: at(9),
			wantEnd:   at(17),
		},
		{
			name:      "disjoint shifts untouched",
			candidate: Window{Start: at(9), End: at(11)},
			existing:  []models.Shift{shift("a", 12, 14)},
			wantStart: at(9),
			wantEnd:   at(11),
		},
		{
			name:       "tail overlap widens end",
			candidate:  Window{Start: at(9), End: at(17)},
			existing:   []models.Shift{shift("a", 15, 20)},
			wantStart:  at(9),
			wantEnd:    at(20),
			superseded: []string{"a"},
		},
		{
			name:       "head overlap widens start",
			candidate:  Window{Start: at(15), End: at(20)},
			existing:   []models.Shift{shift("a", 9, 17)},
			wantStart:  at(9),
			wantEnd:    at(20),
			superseded: []string{"a"},
		},
		{
			name:       "contained shift is swept",
			candidate:  Window{Start: at(8), End: at(20)},
			existing:   []models.Shift{shift("a", 10, 12)},
			wantStart:  at(8),
			wantEnd:    at(20),
			superseded: []string{"a"},
		},
		{
			name:       "candidate inside existing block",
			candidate:  Window{Start: at(10), End: at(12)},
			existing:   []models.Shift{shift("a", 8, 20)},
			wantStart:  at(8),
			wantEnd:    at(20),
			superseded: []string{"a"},
		},
		{
			name:       "adjacent blocks coalesce",
			candidate:  Window{Start: at(12), End: at(15)},
			existing:   []models.Shift{shift("a", 9, 12), shift("b", 15, 18)},
			wantStart:  at(9),
			wantEnd:    at(18),
			superseded: []string{"a", "b"},
		},
		{
			name:      "chain absorbed through widening",
			candidate: Window{Start: at(11), End: at(12)},
			existing:  []models.Shift{shift("far", 14, 16), shift("near", 12, 14)},
			wantStart: at(11),
			wantEnd:   at(16),
			// "far" only touches after "near" widened the window.
			superseded: []string{"near", "far"},
		},
		{
			name:      "ended shifts are ignored",
			candidate: Window{Start: at(9), End: at(17)},
			existing: []models.Shift{
				{ID: "old", StartTime: day.Add(-48 * time.Hour), EndTime: day.Add(-40 * time.Hour)},
			},
			wantStart: at(9),
			wantEnd:   at(17),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			final, superseded := Merge(tt.candidate, tt.existing, now)

			if !final.Start.Equal(tt.wantStart) {
				t.Errorf("start: expected %v, got %v", tt.wantStart, final.Start)
			}
			if !final.End.Equal(tt.wantEnd) {
				t.Errorf("end: expected %v, got %v", tt.wantEnd, final.End)
			}

			if len(superseded) != len(tt.superseded) {
				t.Fatalf("superseded: expected %v, got %v", tt.superseded, superseded)
			}
			got := make(map[string]bool, len(superseded))
			for _, id := range superseded {
				got[id] = true
			}
			for _, id := range tt.superseded {
				if !got[id] {
					t.Errorf("expected shift %q to be superseded, got %v", id, superseded)
				}
			}
		})
	}
}

func TestWindowValid(t *testing.T) {
	if (Window{Start: at(9), End: at(17)}).Valid() != true {
		t.Error("expected forward window to be valid")
	}
	if (Window{Start: at(17), End: at(9)}).Valid() {
		t.Error("expected reversed window to be invalid")
	}
	if (Window{Start: at(9), End: at(9)}).Valid() {
		t.Error("expected empty window to be invalid")
	}
}
