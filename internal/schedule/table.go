package schedule

import "github.com/fairwaylab/studio_scheduler/internal/model"

// Class names used by the studio's weekly program. Localized labels live in
// the i18n catalog; these are the canonical identifiers stored on bookings.
const (
	ClassStrength  = "STRENGTH"
	ClassSwing     = "SWING MECHANICS"
	ClassMobility  = "MOBILITY"
	ClassShortGame = "SHORT GAME"
)

// Entry is one recurring weekly slot in the studio's standing program.
// Client-side sessions are a fixed one hour.
type Entry struct {
	Weekday         int // 0 = Sunday .. 6 = Saturday
	Hour            int // 0-23
	ClassName       string
	Tier            model.Tier
	MaxParticipants int
}

// WeeklyTable is the studio's standing weekly program. It is the single
// source the availability expander projects onto calendar dates.
var WeeklyTable = []Entry{
	// Monday
	{Weekday: 1, Hour: 10, ClassName: ClassMobility, Tier: model.TierAmateur, MaxParticipants: 6},
	{Weekday: 1, Hour: 12, ClassName: ClassStrength, Tier: model.TierPro, MaxParticipants: 4},
	{Weekday: 1, Hour: 19, ClassName: ClassSwing, Tier: model.TierAmateur, MaxParticipants: 6},
	// Tuesday
	{Weekday: 2, Hour: 9, ClassName: ClassSwing, Tier: model.TierPro, MaxParticipants: 4},
	{Weekday: 2, Hour: 18, ClassName: ClassStrength, Tier: model.TierAmateur, MaxParticipants: 8},
	// Wednesday
	{Weekday: 3, Hour: 10, ClassName: ClassShortGame, Tier: model.TierAmateur, MaxParticipants: 6},
	{Weekday: 3, Hour: 12, ClassName: ClassStrength, Tier: model.TierPro, MaxParticipants: 4},
	{Weekday: 3, Hour: 19, ClassName: ClassMobility, Tier: model.TierAmateur, MaxParticipants: 8},
	// Thursday
	{Weekday: 4, Hour: 9, ClassName: ClassSwing, Tier: model.TierAmateur, MaxParticipants: 6},
	{Weekday: 4, Hour: 18, ClassName: ClassShortGame, Tier: model.TierPro, MaxParticipants: 4},
	// Friday
	{Weekday: 5, Hour: 10, ClassName: ClassStrength, Tier: model.TierAmateur, MaxParticipants: 8},
	{Weekday: 5, Hour: 12, ClassName: ClassSwing, Tier: model.TierPro, MaxParticipants: 4},
	// Saturday
	{Weekday: 6, Hour: 9, ClassName: ClassStrength, Tier: model.TierPro, MaxParticipants: 4},
	{Weekday: 6, Hour: 10, ClassName: ClassSwing, Tier: model.TierAmateur, MaxParticipants: 8},
	{Weekday: 6, Hour: 14, ClassName: ClassShortGame, Tier: model.TierAmateur, MaxParticipants: 6},
}

// EntriesFor returns the standing entries for one weekday, in table order.
func EntriesFor(table []Entry, weekday int) []Entry {
	var out []Entry
	for _, e := range table {
		if e.Weekday == weekday {
			out = append(out, e)
		}
	}
	return out
}

// Lookup finds the standing entry for a (weekday, hour) slot.
func Lookup(table []Entry, weekday, hour int) (Entry, bool) {
	for _, e := range table {
		if e.Weekday == weekday && e.Hour == hour {
			return e, true
		}
	}
	return Entry{}, false
}
