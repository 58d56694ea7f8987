package quota

import (
	"testing"
	"time"

	"github.com/fairwaylab/studio_scheduler/internal/model"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPeriodFor(t *testing.T) {
	anchor := day(2026, 1, 5)

	tests := []struct {
		name      string
		now       time.Time
		wantStart time.Time
	}{
		{"now at anchor", day(2026, 1, 5), day(2026, 1, 5)},
		{"now inside first period", day(2026, 1, 20), day(2026, 1, 5)},
		{"now on period end rolls over", day(2026, 2, 2), day(2026, 2, 2)},
		{"now several periods ahead", day(2026, 4, 1), day(2026, 3, 30)},
		{"now before anchor walks backward", day(2025, 12, 20), day(2025, 12, 8)},
		{"intraday now stays in period", time.Date(2026, 2, 1, 23, 59, 0, 0, time.UTC), day(2026, 1, 5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := PeriodFor(anchor, tt.now)
			if !start.Equal(tt.wantStart) {
				t.Fatalf("start = %s, want %s", start, tt.wantStart)
			}
			if want := tt.wantStart.Add(PeriodLength); !end.Equal(want) {
				t.Fatalf("end = %s, want %s", end, want)
			}
			if tt.now.Before(start) || !tt.now.Before(end) {
				t.Fatalf("now %s not inside [%s, %s)", tt.now, start, end)
			}
		})
	}
}

func TestCalculate(t *testing.T) {
	quotas := Quotas{model.TierPro: 12, model.TierAmateur: 8}
	member := &model.Member{ID: "m1", PlanTier: model.TierAmateur, PlanAnchor: day(2026, 1, 5)}
	now := day(2026, 1, 20)

	mk := func(memberID string, d time.Time) *model.Booking {
		return &model.Booking{MemberID: memberID, ClassDate: d}
	}

	t.Run("counts only this member inside the period", func(t *testing.T) {
		bookings := []*model.Booking{
			mk("m1", day(2026, 1, 6)),
			mk("m1", day(2026, 1, 19)),
			mk("m1", day(2026, 2, 2)),  // period end, exclusive
			mk("m1", day(2025, 12, 30)), // previous period
			mk("m2", day(2026, 1, 10)), // someone else
		}

		info := Calculate(quotas, member, bookings, now)
		if info == nil {
			t.Fatal("expected limit info")
		}
		if info.Used != 2 || info.Remaining != 6 || info.AtLimit {
			t.Fatalf("got used=%d remaining=%d atLimit=%v, want 2/6/false", info.Used, info.Remaining, info.AtLimit)
		}
		if !info.PeriodStart.Equal(day(2026, 1, 5)) || !info.PeriodEnd.Equal(day(2026, 2, 2)) {
			t.Fatalf("period [%s, %s), want [2026-01-05, 2026-02-02)", info.PeriodStart, info.PeriodEnd)
		}
	})

	t.Run("period start is inclusive", func(t *testing.T) {
		info := Calculate(quotas, member, []*model.Booking{mk("m1", day(2026, 1, 5))}, now)
		if info.Used != 1 {
			t.Fatalf("used = %d, want 1", info.Used)
		}
	})

	t.Run("at limit when used equals quota", func(t *testing.T) {
		var bookings []*model.Booking
		for i := 0; i < 8; i++ {
			bookings = append(bookings, mk("m1", day(2026, 1, 6+i)))
		}
		info := Calculate(quotas, member, bookings, now)
		if !info.AtLimit || info.Remaining != 0 {
			t.Fatalf("got atLimit=%v remaining=%d, want true/0", info.AtLimit, info.Remaining)
		}
	})

	t.Run("remaining never negative", func(t *testing.T) {
		var bookings []*model.Booking
		for i := 0; i < 10; i++ {
			bookings = append(bookings, mk("m1", day(2026, 1, 6).AddDate(0, 0, i)))
		}
		info := Calculate(quotas, member, bookings, now)
		if info.Remaining != 0 || info.Used != 10 {
			t.Fatalf("got used=%d remaining=%d, want 10/0", info.Used, info.Remaining)
		}
	})

	t.Run("nil member yields no limit", func(t *testing.T) {
		if info := Calculate(quotas, nil, nil, now); info != nil {
			t.Fatalf("expected nil, got %+v", info)
		}
	})

	t.Run("unknown tier yields no limit", func(t *testing.T) {
		odd := &model.Member{ID: "m3", PlanTier: model.Tier("trial"), PlanAnchor: day(2026, 1, 5)}
		if info := Calculate(quotas, odd, nil, now); info != nil {
			t.Fatalf("expected nil, got %+v", info)
		}
	})
}
