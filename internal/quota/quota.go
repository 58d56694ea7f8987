// Package quota implements rolling-period session accounting. A member's
// plan grants a fixed number of sessions per 28-day accounting period; the
// period chain is anchored at the member's plan anchor date.
package quota

import (
	"time"

	"github.com/fairwaylab/studio_scheduler/internal/model"
)

// PeriodLength is the accounting period: four calendar weeks.
const PeriodLength = 28 * 24 * time.Hour

// Quotas maps plan tiers to sessions allowed per accounting period.
// Read from configuration at startup; the calculator does not own it.
type Quotas map[model.Tier]int

// LimitInfo reports a member's standing against their plan quota for the
// accounting period containing "now". Derived, never persisted.
type LimitInfo struct {
	Total       int       `json:"total"`
	Used        int       `json:"used"`
	Remaining   int       `json:"remaining"`
	PeriodStart time.Time `json:"period_start"` // inclusive
	PeriodEnd   time.Time `json:"period_end"`   // exclusive
	AtLimit     bool      `json:"at_limit"`
}

// PeriodFor locates the unique accounting period containing now by walking
// 28-day steps from the anchor until start <= now < start+28d. The interval
// is half-open: a booking on the period's end boundary belongs to the next
// period.
func PeriodFor(anchor, now time.Time) (start, end time.Time) {
	start = truncateDay(anchor)
	now = now.UTC()

	for now.Before(start) {
		start = start.Add(-PeriodLength)
	}
	for !now.Before(start.Add(PeriodLength)) {
		start = start.Add(PeriodLength)
	}
	return start, start.Add(PeriodLength)
}

// Calculate derives a member's limit info from their plan and booking set.
// Returns nil when member is nil or its tier has no quota entry: no
// applicable limit, not a fault.
func Calculate(q Quotas, member *model.Member, bookings []*model.Booking, now time.Time) *LimitInfo {
	if member == nil {
		return nil
	}
	total, ok := q[member.PlanTier]
	if !ok {
		return nil
	}

	start, end := PeriodFor(member.PlanAnchor, now)

	used := 0
	for _, b := range bookings {
		if b.MemberID != member.ID {
			continue
		}
		d := truncateDay(b.ClassDate)
		if !d.Before(start) && d.Before(end) {
			used++
		}
	}

	remaining := total - used
	if remaining < 0 {
		remaining = 0
	}

	return &LimitInfo{
		Total:       total,
		Used:        used,
		Remaining:   remaining,
		PeriodStart: start,
		PeriodEnd:   end,
		AtLimit:     used >= total,
	}
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
