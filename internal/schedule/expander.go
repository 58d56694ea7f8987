package schedule

import (
	"fmt"
	"time"

	"github.com/fairwaylab/studio_scheduler/internal/model"
)

// WindowDays is the length of the visible booking window.
const WindowDays = 14

// Occurrence is a standing entry projected onto one concrete calendar date
// within the visible window. It is recomputed on every read, never stored.
type Occurrence struct {
	ID              string     `json:"id"` // "w<week>-d<day>-h<hour>"
	WeekOffset      int        `json:"week_offset"`
	DayOffset       int        `json:"day_offset"`
	Weekday         int        `json:"weekday"`
	Hour            int        `json:"hour"`
	Date            time.Time  `json:"date"`
	ClassName       string     `json:"class_name"`
	Tier            model.Tier `json:"tier"`
	MaxParticipants int        `json:"max_participants"`
	CurrentBookings int        `json:"current_bookings"`
}

// Full reports whether the occurrence has no remaining capacity.
func (o *Occurrence) Full() bool {
	return o.CurrentBookings >= o.MaxParticipants
}

// WeekStart returns the Monday of the week containing t, day-truncated in UTC.
func WeekStart(t time.Time) time.Time {
	t = t.UTC()
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	// Monday-based offset: Monday=0 .. Sunday=6.
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// Expand projects the weekly table onto the 14-day window starting at the
// Monday of the week containing now. Both the window's first and last day are
// included. CurrentBookings on each occurrence is the count of bookings
// sharing its (date, hour, weekday).
func Expand(table []Entry, bookings []*model.Booking, now time.Time) []Occurrence {
	start := WeekStart(now)

	var out []Occurrence
	for week := 0; week < WindowDays/7; week++ {
		for day := 0; day < 7; day++ {
			date := start.AddDate(0, 0, week*7+day)
			weekday := int(date.Weekday())
			for _, e := range EntriesFor(table, weekday) {
				occ := Occurrence{
					ID:              fmt.Sprintf("w%d-d%d-h%d", week, day, e.Hour),
					WeekOffset:      week,
					DayOffset:       day,
					Weekday:         weekday,
					Hour:            e.Hour,
					Date:            date,
					ClassName:       e.ClassName,
					Tier:            e.Tier,
					MaxParticipants: e.MaxParticipants,
					CurrentBookings: countBookings(bookings, date, weekday, e.Hour),
				}
				out = append(out, occ)
			}
		}
	}
	return out
}

// OccurrenceAt resolves a single occurrence by window coordinates.
func OccurrenceAt(table []Entry, bookings []*model.Booking, now time.Time, weekOffset, dayOffset, hour int) (Occurrence, error) {
	if weekOffset < 0 || weekOffset >= WindowDays/7 {
		return Occurrence{}, fmt.Errorf("week offset %d outside booking window", weekOffset)
	}
	if dayOffset < 0 || dayOffset > 6 {
		return Occurrence{}, fmt.Errorf("day offset %d outside week", dayOffset)
	}

	date := WeekStart(now).AddDate(0, 0, weekOffset*7+dayOffset)
	weekday := int(date.Weekday())
	e, ok := Lookup(table, weekday, hour)
	if !ok {
		return Occurrence{}, fmt.Errorf("no class scheduled at weekday %d hour %d", weekday, hour)
	}

	return Occurrence{
		ID:              fmt.Sprintf("w%d-d%d-h%d", weekOffset, dayOffset, hour),
		WeekOffset:      weekOffset,
		DayOffset:       dayOffset,
		Weekday:         weekday,
		Hour:            hour,
		Date:            date,
		ClassName:       e.ClassName,
		Tier:            e.Tier,
		MaxParticipants: e.MaxParticipants,
		CurrentBookings: countBookings(bookings, date, weekday, hour),
	}, nil
}

func countBookings(bookings []*model.Booking, date time.Time, weekday, hour int) int {
	n := 0
	for _, b := range bookings {
		if b.SameSlot(date, weekday, hour) {
			n++
		}
	}
	return n
}
