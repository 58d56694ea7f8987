package schedule

import (
	"testing"
	"time"

	"github.com/fairwaylab/studio_scheduler/internal/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWeekStart(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{"monday maps to itself", date(2026, 3, 2), date(2026, 3, 2)},
		{"wednesday maps back to monday", date(2026, 3, 4), date(2026, 3, 2)},
		{"sunday maps back six days", date(2026, 3, 8), date(2026, 3, 2)},
		{"time of day is dropped", time.Date(2026, 3, 4, 23, 15, 0, 0, time.UTC), date(2026, 3, 2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WeekStart(tt.in)
			if !got.Equal(tt.want) {
				t.Fatalf("WeekStart(%s) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestExpandWindowBounds(t *testing.T) {
	// Thursday; window must still start on Monday of the same week.
	now := date(2026, 3, 5)
	occs := Expand(WeeklyTable, nil, now)

	if len(occs) != 2*len(WeeklyTable) {
		t.Fatalf("expected %d occurrences over two weeks, got %d", 2*len(WeeklyTable), len(occs))
	}

	first, last := occs[0].Date, occs[0].Date
	for _, o := range occs {
		if o.Date.Before(first) {
			first = o.Date
		}
		if o.Date.After(last) {
			last = o.Date
		}
	}
	// Monday 2026-03-02 .. Sunday 2026-03-15, both weeks fully covered.
	if wantFirst := date(2026, 3, 2); !first.Equal(wantFirst) {
		t.Errorf("first occurrence date = %s, want %s", first, wantFirst)
	}
	if wantLast := date(2026, 3, 14); !last.Equal(wantLast) {
		// Saturday is the studio's last scheduled day.
		t.Errorf("last occurrence date = %s, want %s", last, wantLast)
	}

	seen := map[string]bool{}
	for _, o := range occs {
		if seen[o.ID] {
			t.Fatalf("duplicate occurrence id %s", o.ID)
		}
		seen[o.ID] = true
	}
}

func TestExpandAtWeekBoundary(t *testing.T) {
	// Sunday: the window must anchor on the Monday six days earlier, and the
	// current day itself must still be present in week 0.
	now := date(2026, 3, 8)
	occs := Expand(WeeklyTable, nil, now)

	if len(occs) != 2*len(WeeklyTable) {
		t.Fatalf("expected %d occurrences, got %d", 2*len(WeeklyTable), len(occs))
	}
	for _, o := range occs {
		if o.Date.Before(date(2026, 3, 2)) || o.Date.After(date(2026, 3, 15)) {
			t.Fatalf("occurrence %s at %s escapes the window", o.ID, o.Date)
		}
	}
}

func TestExpandCountsBookingsPerOccurrence(t *testing.T) {
	now := date(2026, 3, 2) // Monday
	monday := date(2026, 3, 2)
	nextMonday := date(2026, 3, 9)

	bookings := []*model.Booking{
		{ID: "a", MemberID: "m1", ClassDate: monday, Weekday: 1, Hour: 12},
		{ID: "b", MemberID: "m2", ClassDate: monday, Weekday: 1, Hour: 12},
		// Same weekday and hour but the following week: must not leak into week 0.
		{ID: "c", MemberID: "m3", ClassDate: nextMonday, Weekday: 1, Hour: 12},
	}

	occs := Expand(WeeklyTable, bookings, now)
	counts := map[string]int{}
	for _, o := range occs {
		counts[o.ID] = o.CurrentBookings
	}

	if got := counts["w0-d0-h12"]; got != 2 {
		t.Errorf("week 0 Monday 12:00 count = %d, want 2", got)
	}
	if got := counts["w1-d0-h12"]; got != 1 {
		t.Errorf("week 1 Monday 12:00 count = %d, want 1", got)
	}
	if got := counts["w0-d0-h10"]; got != 0 {
		t.Errorf("untouched occurrence count = %d, want 0", got)
	}
}

func TestOccurrenceAt(t *testing.T) {
	now := date(2026, 3, 4)

	occ, err := OccurrenceAt(WeeklyTable, nil, now, 0, 0, 12)
	if err != nil {
		t.Fatalf("OccurrenceAt: %v", err)
	}
	if occ.ClassName != ClassStrength || occ.Tier != model.TierPro {
		t.Errorf("resolved %s/%s, want %s/%s", occ.ClassName, occ.Tier, ClassStrength, model.TierPro)
	}
	if !occ.Date.Equal(date(2026, 3, 2)) {
		t.Errorf("date = %s, want 2026-03-02", occ.Date)
	}

	if _, err := OccurrenceAt(WeeklyTable, nil, now, 2, 0, 12); err == nil {
		t.Error("expected error for week offset outside window")
	}
	if _, err := OccurrenceAt(WeeklyTable, nil, now, 0, 0, 3); err == nil {
		t.Error("expected error for hour with no scheduled class")
	}
}
