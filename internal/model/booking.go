package model

import "time"

// Tier classifies a session. Capacity and quota rules are independent per tier.
type Tier string

const (
	TierPro     Tier = "pro"
	TierAmateur Tier = "amateur"
)

// Valid reports whether t is one of the known tiers.
func (t Tier) Valid() bool {
	return t == TierPro || t == TierAmateur
}

// Booking is a member's reservation of one concrete class occurrence.
// The class name and tier are denormalized at booking time so the record
// stays meaningful if the weekly table changes later.
type Booking struct {
	ID        string    `json:"id"`
	MemberID  string    `json:"member_id"`
	ClassDate time.Time `json:"class_date"` // day-truncated, UTC
	Weekday   int       `json:"weekday"`    // 0 = Sunday .. 6 = Saturday
	Hour      int       `json:"hour"`       // 0-23
	ClassName string    `json:"class_name"`
	Tier      Tier      `json:"tier"`
	CreatedAt time.Time `json:"created_at"`
}

// SameSlot reports whether the booking occupies the identical
// (date, hour, weekday) slot.
func (b *Booking) SameSlot(date time.Time, weekday, hour int) bool {
	return b.Weekday == weekday && b.Hour == hour && SameDay(b.ClassDate, date)
}

// SameDay compares two timestamps by UTC calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
